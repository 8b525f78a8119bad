package moneycodec

import "fmt"

// Strategy names an at-rest encoding scheme.
type Strategy string

const (
	StrategyFactor Strategy = "factor"
	StrategyAES    Strategy = "aes"
)

// New builds the codec for the configured strategy. factor is used by
// StrategyFactor, secret by StrategyAES.
func New(strategy Strategy, factor float64, secret string) (Codec, error) {
	switch strategy {
	case StrategyFactor:
		return NewFactorCodec(factor)
	case StrategyAES:
		return NewAESCodec(secret)
	default:
		return nil, fmt.Errorf("unknown amount codec strategy %q", strategy)
	}
}
