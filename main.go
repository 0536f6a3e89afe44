package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barbershop/config"
	"barbershop/cron"
	"barbershop/database"
	"barbershop/database/kv"
	appointmentRepo "barbershop/database/repository/appointment"
	catalogRepo "barbershop/database/repository/catalog"
	chatRepo "barbershop/database/repository/chat"
	draftRepo "barbershop/database/repository/draft"
	ownerRepo "barbershop/database/repository/owner"
	shopRepo "barbershop/database/repository/shop"
	"barbershop/handlers"
	"barbershop/metrics"
	"barbershop/middleware"
	"barbershop/routes"
	"barbershop/services/auth"
	"barbershop/services/booking"
	"barbershop/services/catalog"
	"barbershop/services/payment"
	"barbershop/services/reports"
	"barbershop/services/shop"
	"barbershop/services/support"
	"barbershop/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	utils.SetJWTSecret(config.AppConfig.JWTSecret)
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.InitRedis()
	store := kv.NewRedisStore(utils.GetRedisClient())

	// Appointments live in the key-value namespace unless Mongo is selected.
	var (
		appts       appointmentRepo.AppointmentRepository
		mongoClient *mongo.Client
	)
	if config.UseMongoAppointments() {
		database.InitDB()
		mongoClient = database.MongoClient
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := appointmentRepo.EnsureIndexes(ctx, database.Database()); err != nil {
			logger.Sugar().Fatalf("main: failed to create appointment indexes: %v", err)
		}
		cancel()
		appts = appointmentRepo.NewMongoAppointmentRepo(database.Database())
	} else {
		appts = appointmentRepo.NewKVAppointmentRepo(store)
	}

	// Card payments go through Stripe when a key is configured.
	var card payment.CardProcessor
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		card = payment.NewStripeCardProcessor()
	} else {
		logger.Warn("STRIPE_KEY not set; card payments are simulated")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	// repositories.
	shops := shopRepo.NewKVShopRepo(store)
	drafts := draftRepo.NewKVDraftRepo(store, config.AppConfig.DraftTTL)
	catalogs := catalogRepo.NewKVCatalogRepo(store)
	chats := chatRepo.NewKVChatRepo(store)
	owners := ownerRepo.NewKVOwnerRepo(store)

	// services.
	shopService := shop.NewShopService(shops, config.AppConfig.DefaultCurrency, logger.Named("shop"))
	catalogService := catalog.NewCatalogService(catalogs, logger.Named("catalog"))
	bookingService := &booking.DefaultBookingSessionService{
		DraftRepo:       drafts,
		AppointmentRepo: appts,
		Catalog:         catalogService,
		Shop:            shopService,
		Payments:        payment.NewPaymentHandler(logger.Named("payment"), card),
		Metrics:         bookingMetrics,
		Logger:          logger.Named("booking"),
	}
	chatService := support.NewChatService(chats, bookingMetrics, logger.Named("support"))
	authService := auth.NewAuthService(owners, shopService, config.AppConfig.TokenTTL, logger.Named("auth"))
	reportService := reports.NewReportService(appts)

	handlerBundle := &handlers.HandlerBundle{
		Auth:      handlers.NewAuthHandler(authService),
		Booking:   handlers.NewBookingHandler(bookingService, catalogService, shopService),
		Shop:      handlers.NewShopHandler(shopService, catalogService, bookingService),
		Employees: handlers.NewEmployeeHandler(catalogService),
		Reports:   handlers.NewReportHandler(reportService),
		Support:   handlers.NewSupportHandler(chatService, config.AppConfig.ChatPollInterval),
		Health: func() (bool, any) {
			status := utils.GetHealthStatus()
			return status.Healthy(), status
		},
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(bgCtx, utils.GetRedisClient(), mongoClient)

	reminders, err := cron.StartReminderWorker(config.AppConfig.ReminderSchedule, &cron.ReminderWorker{
		Shops:        shopService,
		Marker:       shops,
		Appointments: appts,
		Metrics:      bookingMetrics,
		Logger:       logger.Named("reminders"),
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder worker: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(httpMetrics))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, reg)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	<-reminders.Stop().Done()
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if mongoClient != nil {
		if err := database.CloseDB(ctx); err != nil {
			logger.Warn("main: failed to close mongo", zap.Error(err))
		}
	}
	if err := utils.CloseRedis(); err != nil {
		logger.Warn("main: failed to close redis", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
