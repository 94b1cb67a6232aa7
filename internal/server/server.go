package server

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"keepup-api/internal/client/aws"
	stripeclient "keepup-api/internal/client/stripe"
	"keepup-api/internal/config"
	"keepup-api/internal/db"
	"keepup-api/internal/handlers"
	"keepup-api/internal/logger"
	"keepup-api/internal/middleware"
	"keepup-api/internal/services"
)

// Handler Definitions
var (
	healthHandler  *handlers.HealthHandler
	billingHandler *handlers.BillingHandler
	webhookHandler *handlers.StripeWebhookHandler

	// Database
	dbQueries *db.Queries
)

func InitializeHandlers() {
	// Get database connection string from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	// Create a connection pool using pgxpool
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		logger.Fatal("Unable to parse database connection string", zap.Error(err))
	}

	// Configure the connection pool
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	// Create the connection pool
	connPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}

	// Create queries instance with the connection pool
	dbQueries = db.New(connPool)

	// Stripe credentials come from Secrets Manager, with env fallback for
	// local development.
	secretsClient, err := aws.NewSecretsManagerClient(context.Background())
	if err != nil {
		logger.Fatal("Unable to create secrets manager client", zap.Error(err))
	}

	billingConfig, err := config.LoadBillingConfig(context.Background(), secretsClient)
	if err != nil {
		logger.Fatal("Unable to load billing configuration", zap.Error(err))
	}

	stripeService := stripeclient.NewStripeService(billingConfig.SecretKey, billingConfig.WebhookSecret, logger.Log)
	if err := stripeService.CheckConnection(context.Background()); err != nil {
		logger.Fatal("Unable to reach Stripe with the configured key", zap.Error(err))
	}

	// Billing service graph
	state := services.NewBillingStateService(dbQueries)
	usage := services.NewUsageService(dbQueries)
	customers := services.NewStripeCustomerService(stripeService, state)
	paymentMethods := services.NewPaymentMethodService(stripeService, state)
	events := services.NewWebhookEventService(dbQueries)
	syncService := services.NewBillingSyncService(dbQueries, stripeService, usage, customers, paymentMethods, state, billingConfig)
	checkoutService := services.NewCheckoutService(dbQueries, stripeService, usage, customers, billingConfig)
	processor := services.NewStripeEventProcessor(dbQueries, stripeService, events, state, paymentMethods, syncService)

	healthHandler = handlers.NewHealthHandler()
	billingHandler = handlers.NewBillingHandler(dbQueries, syncService, checkoutService, state)
	webhookHandler = handlers.NewStripeWebhookHandler(stripeService, processor)
}

func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Health check
	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Stripe calls this endpoint; authentication is the delivery
		// signature, verified inside the handler.
		webhookLimiter := middleware.NewRateLimiter(50, 100)
		v1.POST("/stripe/webhook", webhookLimiter.Middleware(), webhookHandler.HandleStripeWebhook)

		// Admin-only billing routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminKeyAuth())
		{
			companies := admin.Group("/companies/:company_id")
			{
				companies.POST("/billing/sync", billingHandler.SyncCompanyBilling)
				companies.GET("/billing/summary", billingHandler.GetBillingSummary)
				companies.GET("/billing/events", billingHandler.ListBillingEvents)
				companies.POST("/billing/checkout-session", billingHandler.CreateCheckoutSession)
				companies.POST("/billing/setup-session", billingHandler.CreateSetupSession)
				companies.POST("/billing/portal-session", billingHandler.CreatePortalSession)
			}
		}
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "Stripe-Signature"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
