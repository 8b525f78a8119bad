package moneycodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// storedPartSeparator delimits the iv, auth tag, and ciphertext segments of
// an encrypted stored value.
const storedPartSeparator = ":"

// AESCodec encrypts the decimal amount string with AES-256-GCM. Stored values
// have the form hex(iv):hex(tag):hex(ciphertext). Undelimited stored values
// are treated as legacy plain numerics and parsed directly, so rows written
// before the encryption rollout stay readable.
type AESCodec struct {
	key []byte
}

// NewAESCodec derives a 256-bit key from the configured secret.
func NewAESCodec(secret string) (*AESCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("amount encryption key is required")
	}
	key := sha256.Sum256([]byte(secret))
	return &AESCodec{key: key[:]}, nil
}

// Encode encrypts the amount's decimal representation under a fresh nonce.
func (c *AESCodec) Encode(amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %v", amount)
	}

	gcm, err := c.newGCM()
	if err != nil {
		return "", err
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(formatAmount(amount)), nil)
	tagStart := len(sealed) - gcm.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	}, storedPartSeparator), nil
}

// Decode decrypts a stored value. Values without delimiters fall back to a
// direct numeric parse; any decryption or parse failure yields 0 so one
// corrupt row cannot take down a whole listing.
func (c *AESCodec) Decode(stored string) float64 {
	stored = strings.TrimSpace(stored)
	if !strings.Contains(stored, storedPartSeparator) {
		v, err := strconv.ParseFloat(stored, 64)
		if err != nil {
			return 0
		}
		return v
	}

	parts := strings.Split(stored, storedPartSeparator)
	if len(parts) != 3 {
		return 0
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return 0
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return 0
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return 0
	}

	gcm, err := c.newGCM()
	if err != nil {
		return 0
	}
	if len(iv) != gcm.NonceSize() {
		return 0
	}

	plain, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(string(plain), 64)
	if err != nil {
		return 0
	}
	return v
}

func (c *AESCodec) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
