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
	gormlogger "gorm.io/gorm/logger"

	"budgetbook/internal/handlers"
	"budgetbook/internal/logger"
	"budgetbook/internal/middleware"
	"budgetbook/internal/models"
	"budgetbook/internal/services"
	"budgetbook/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
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
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
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

	// Services
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

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

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/export", categoryHandler.ExportCategoriesCSV)
	categories.PUT("", categoryHandler.BatchUpdateCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetHistory)
	transactions.GET("/export", transactionHandler.ExportTransactionsCSV)
	transactions.PUT("", transactionHandler.BatchUpdateTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/spent", budgetHandler.GetSpentPerCategory)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	return &testApp{DB: db, Router: router}
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

// registerUser registers a new user and returns the auth token and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, token, name, categoryType string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"category_name":%q,"category_type":%q}`, name, categoryType)
	rec := app.request("POST", "/api/v1/categories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	category := parseJSON(t, rec)["category"].(map[string]interface{})
	return category["id"].(float64)
}

// createTransaction records a transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token string, categoryID float64, amount float64, date, note string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%.0f,"amount":%g,"transaction_date":%q,"note":%q}`,
		categoryID, amount, date, note)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(float64)
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no error object: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
