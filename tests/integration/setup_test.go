package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hearth/internal/handlers"
	"hearth/internal/logger"
	"hearth/internal/middleware"
	"hearth/internal/models"
	"hearth/internal/moneycodec"
	"hearth/internal/services"
	"hearth/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Codec  moneycodec.Codec
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Home{},
		&models.HomeMember{},
		&models.FinanceRecord{},
		&models.FinanceVisibility{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	codec, err := moneycodec.New(moneycodec.StrategyFactor, 245.975, "")
	if err != nil {
		t.Fatalf("failed to build amount codec: %v", err)
	}

	// Services
	userService := services.NewUserService(db)
	homeService := services.NewHomeService(db)
	financeService := services.NewFinanceService(db, homeService, codec)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	homeHandler := handlers.NewHomeHandler(homeService, auditService)
	financeHandler := handlers.NewFinanceHandler(financeService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	homes := protected.Group("/homes")
	homes.POST("", homeHandler.CreateHome)
	homes.GET("", homeHandler.GetUserHomes)
	homes.POST("/:id/members", homeHandler.InviteMember)
	homes.POST("/:id/members/respond", homeHandler.RespondToInvite)
	homes.POST("/:id/finances", financeHandler.CreateFinanceRecord)
	homes.GET("/:id/finances", financeHandler.ListFinanceRecords)
	homes.GET("/:id/finances/balance", financeHandler.GetMonthlyBalance)

	finances := protected.Group("/finances")
	finances.PUT("/:id", financeHandler.UpdateFinanceRecord)
	finances.DELETE("/:id", financeHandler.DeleteFinanceRecord)

	return &testApp{DB: db, Codec: codec, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// createHome creates a home and returns its ID.
func (app *testApp) createHome(t *testing.T, token, name string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/homes", fmt.Sprintf(`{"name":%q,"currency":"USD"}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create home failed: %d %s", rec.Code, rec.Body.String())
	}
	home := parseJSON(t, rec)["home"].(map[string]interface{})
	return home["id"].(float64)
}

// addAcceptedMember invites a user into a home and accepts the invitation.
func (app *testApp) addAcceptedMember(t *testing.T, ownerToken, memberToken string, homeID, memberID float64) {
	t.Helper()
	rec := app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members", homeID),
		fmt.Sprintf(`{"user_id":%.0f}`, memberID), ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("invite failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", fmt.Sprintf("/api/v1/homes/%.0f/members/respond", homeID),
		`{"response":"accepted"}`, memberToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept invite failed: %d %s", rec.Code, rec.Body.String())
	}
}
