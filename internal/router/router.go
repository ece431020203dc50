// Package router assembles the gin engine serving the budget API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "kukkaro/internal/docs" // Import swagger docs
	"kukkaro/internal/events"
	"kukkaro/internal/handlers"
	"kukkaro/internal/middleware"
	"kukkaro/internal/models"
	"kukkaro/internal/services"
)

// Options controls environment dependent behaviour of the router.
type Options struct {
	// ExposeErrorDetails adds the internal error text to 500 responses.
	ExposeErrorDetails bool
	CORSOrigin         string
}

// New wires services, handlers and middleware on top of db and returns the engine.
func New(db *gorm.DB, publisher events.Publisher, opts Options) *gin.Engine {
	if publisher == nil {
		publisher = events.Nop{}
	}

	// Services
	transactionService := services.NewTransactionService(db, publisher)
	categoryService := services.NewCategoryService(db, publisher)
	settingsService := services.NewSettingsService(db, publisher)

	// Handlers
	expenseHandler := handlers.NewTransactionHandler(transactionService, models.KindExpense)
	incomeHandler := handlers.NewTransactionHandler(transactionService, models.KindIncome)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(opts.CORSOrigin))
	router.Use(middleware.ErrorHandler(opts.ExposeErrorDetails))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.ListTransactions)
	expenses.POST("", expenseHandler.CreateTransaction)
	expenses.GET("/:id", expenseHandler.GetTransaction)
	expenses.PUT("/:id", expenseHandler.UpdateTransaction)
	expenses.DELETE("/:id", expenseHandler.DeleteTransaction)

	incomes := api.Group("/incomes")
	incomes.GET("", incomeHandler.ListTransactions)
	incomes.POST("", incomeHandler.CreateTransaction)
	incomes.GET("/:id", incomeHandler.GetTransaction)
	incomes.PUT("/:id", incomeHandler.UpdateTransaction)
	incomes.DELETE("/:id", incomeHandler.DeleteTransaction)

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:type", categoryHandler.ListCategoriesByType)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	settings := api.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	return router
}
