package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/handlers"
	"github.com/ohcnetwork/care_odoo_bridge/middlewares"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
	"github.com/ohcnetwork/care_odoo_bridge/resources"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
	"github.com/ohcnetwork/care_odoo_bridge/workflow"
)

const defaultPort = "8080"

func setupRouter(h *handlers.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(h.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middlewares.AuthMiddleware(h.DB))

	r.GET("/ping", handlers.Ping)

	r.GET("/sponsor", h.ListSponsors)
	r.GET("/insurance-company", h.ListInsuranceCompanies)
	r.GET("/payment-method", h.SearchPaymentMethods)
	r.GET("/payment-method-line", h.ListPaymentMethodLines)
	r.GET("/payment-method-line/:id", h.GetPaymentMethodLine)

	account := r.Group("/account/:account_external_id")
	{
		account.POST("/set-odoo-payment-method", h.SetAccountPaymentMethod)
		account.GET("/get-odoo-payment-method", h.GetAccountPaymentMethod)
	}

	facility := r.Group("/facility/:facility_external_id")
	{
		session := facility.Group("/cash-session")
		{
			session.POST("", h.OpenCashSession)
			session.GET("", h.ListCashSessions)
			session.PUT("/close", h.CloseCashSession)
			session.POST("/current", h.CurrentCashSession)
			session.GET("/counters", h.ListCashCounters)
		}
		transfer := facility.Group("/cash-transfer")
		{
			transfer.GET("", h.ListCashTransfers)
			transfer.POST("", h.CreateCashTransfer)
			transfer.GET("/pending", h.PendingCashTransfers)
			transfer.PUT("/:transfer_id/accept", h.AcceptCashTransfer)
			transfer.PUT("/:transfer_id/reject", h.RejectCashTransfer)
			transfer.PUT("/:transfer_id/cancel", h.CancelCashTransfer)
		}
	}

	return r
}

func main() {
	logger := config.GetLogger()

	settings := config.LoadSettings()
	utils.ErrorPanic(settings.Validate())

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	utils.ErrorPanic(models.Migrate(db))
	models.SetBaseDB(db)

	config.ConnectRedisWithRetry()

	connector := odoo.NewConnector(settings, logger)

	deps := resources.Deps{
		Odoo:     connector,
		Settings: settings,
		Logger:   logger,
	}
	resources.RegisterSyncHooks(deps)

	h := &handlers.Handlers{
		DB:       db,
		Odoo:     connector,
		Settings: settings,
		Logger:   logger,
	}
	router := setupRouter(h)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	processorCtx, stopProcessor := context.WithCancel(context.Background())
	processor := NewReconciliationProcessor(db, logger,
		workflow.GormJobDeps(db, connector, settings, logger))
	go processor.Run(processorCtx)

	go func() {
		logger.Info("listening on :" + port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.LogError(logger, "server.go", "main", "ListenAndServe", nil, err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	stopProcessor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "server.go", "main", "Shutdown", nil, err)
	}
}
