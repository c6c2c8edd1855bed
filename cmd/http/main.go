package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/delivery/http/controllers"
	"referral-portal-service/internal/app/delivery/http/middlewares"
	"referral-portal-service/internal/app/delivery/http/routers"
	"referral-portal-service/internal/app/drivers/database"
	"referral-portal-service/internal/app/drivers/logger"
	"referral-portal-service/internal/app/drivers/messaging"
	"referral-portal-service/internal/app/drivers/metrics"
	"referral-portal-service/internal/app/drivers/rbac"
	"referral-portal-service/internal/app/drivers/scheduler"
	"referral-portal-service/internal/app/drivers/storage"
	"referral-portal-service/internal/app/services/backend"
	"referral-portal-service/internal/app/services/core/auth"
	"referral-portal-service/internal/app/services/core/dashboard"
	"referral-portal-service/internal/app/services/core/patients"
	"referral-portal-service/internal/app/services/core/pharmacies"
	"referral-portal-service/internal/app/services/core/priorauth"
	"referral-portal-service/internal/app/services/core/referrals"
	"referral-portal-service/internal/app/services/core/reminders"
	"referral-portal-service/internal/app/services/core/roles"
	"referral-portal-service/internal/app/services/core/session"
	"referral-portal-service/internal/app/services/core/users"
	"referral-portal-service/internal/app/services/shared/audit"
	"referral-portal-service/internal/app/services/shared/events"
	"referral-portal-service/internal/app/services/shared/jwtmanager"
	"referral-portal-service/internal/app/services/shared/locker"
	"referral-portal-service/internal/app/services/shared/ratelimiter"
	"referral-portal-service/internal/app/services/shared/redis"
	sharedStorage "referral-portal-service/internal/app/services/shared/storage"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/reqseq"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	if err := internalConfig.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		MongoDB:        database.NewMongoDB(driverConfig),
		Minio:          storage.NewMinio(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Scheduler:      scheduler.NewScheduler(internalConfig.App.Timezone),
		Metrics:        metrics.NewPrometheusRegistry(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}
	bootstrap.Scheduler.StartAsync()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to release drivers", zap.Error(err))
	}

	fmt.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	cfg := bootstrap.InternalConfig
	clk := clock.New()
	collectors := metrics.NewCollectors(bootstrap.Metrics)

	// Driver preparation
	prepareCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureMongoIndexes(prepareCtx, bootstrap.MongoDB, cfg); err != nil {
		log.Warn("Failed to ensure mongo indexes", zap.Error(err))
	}
	if err := storage.EnsureBucket(prepareCtx, bootstrap.Minio, cfg.Minio.LetterBucketName); err != nil {
		return err
	}
	if err := messaging.DeclareQueues(bootstrap.RabbitMQ, cfg.RabbitMQ.EventsQueue, cfg.RabbitMQ.RemindersQueue); err != nil {
		return err
	}

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	objectStorage := sharedStorage.NewMinioStorage(bootstrap.Minio, log)
	publisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, log)
	if err != nil {
		return err
	}
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, cfg.MongoDB.DBName, cfg.MongoDB.AuditCollection)
	recorder := audit.NewRecorder(auditRepository, publisher, cfg.RabbitMQ.EventsQueue, clk, log)

	// Backend clients
	transport := backend.NewTransport(cfg, log)
	transport.Requests = collectors.BackendRequestTotals
	clinicReferralClient := backend.NewClinicReferralClient(transport, log)
	adminReferralClient := backend.NewAdminReferralClient(transport, log)
	pharmacyClient := backend.NewPharmacyClient(transport, log)
	patientClient := backend.NewPatientClient(transport, log)

	// Auth
	enforcer := rbac.NewCasbinEnforcer(cfg.App.RBACModelPath, cfg.App.RBACPolicyPath)
	authorizer := roles.NewCasbinAuthorizer(enforcer)
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB, cfg.MongoDB.DBName, cfg.MongoDB.UsersCollection)
	loginLimiter := ratelimiter.NewLoginLimiter(
		ratelimiter.NewResourceLimiter(redisRepository, clk, log),
		cfg.Login.MaxAttempts,
		cfg.Login.WindowInSeconds,
	)
	authUsecase := auth.NewAuthUsecase(
		userRepository,
		session.NewSessionService(redisRepository),
		jwtmanager.NewJWTManager(cfg, clk, log),
		loginLimiter,
		authorizer,
		recorder,
		cfg,
		clk,
		log,
	)

	// Referrals
	listViewRepository := referrals.NewListViewRedisRepository(redisRepository, time.Duration(cfg.ListView.ExpiredTimeInHours)*time.Hour)
	clinicReferralUsecase := referrals.NewClinicReferralUsecase(clinicReferralClient, listViewRepository, recorder, clk, log)
	adminReferralUsecase := referrals.NewAdminReferralUsecase(adminReferralClient, pharmacyClient, auditRepository, listViewRepository, recorder, clk, log)

	// Prior authorization
	workflowRepository := priorauth.NewPAWorkflowRedisRepository(redisRepository, time.Duration(cfg.PAWorkflow.DraftExpiredTimeInHours)*time.Hour)
	priorAuthUsecase := priorauth.NewPriorAuthUsecase(adminReferralClient, workflowRepository, lockService, objectStorage, recorder, reqseq.New(), cfg, clk, log)

	// Directory
	pharmacyUsecase := pharmacies.NewPharmacyUsecase(pharmacyClient, recorder, log)
	patientDirectory := patients.NewPatientDirectory(cfg.Patients.DirectorySource, patientClient, clinicReferralClient, clk, cfg.Patients.ExpiringWindowDays, log)
	patientUsecase := patients.NewPatientUsecase(patientDirectory, clinicReferralClient, clk, log)
	dashboardUsecase := dashboard.NewDashboardUsecase(clinicReferralClient, adminReferralClient, patientDirectory, cfg, clk, log)

	// Reminders
	if cfg.Reminders.Enabled {
		reminderUsecase := reminders.NewReminderUsecase(
			adminReferralClient,
			publisher,
			redisRepository,
			collectors.PAExpiringReferrals,
			collectors.PAReminderPublished,
			cfg,
			clk,
			log,
		)
		if _, err := reminders.Schedule(bootstrap.Scheduler, reminderUsecase, cfg.Reminders.At, cfg.Reminders.SweepTimeout, log); err != nil {
			return err
		}
	}

	// HTTP
	middlewares := middlewares.NewMiddlewares(log, authUsecase, authorizer, collectors, cfg)
	routers.SetupRoutes(bootstrap.Router, cfg, middlewares, bootstrap.Metrics, &routers.Controllers{
		Auth:           controllers.NewAuthController(log, authUsecase),
		User:           controllers.NewUserController(log, authUsecase),
		ClinicReferral: controllers.NewClinicReferralController(log, clinicReferralUsecase),
		AdminReferral:  controllers.NewAdminReferralController(log, adminReferralUsecase),
		PriorAuth:      controllers.NewPriorAuthController(log, priorAuthUsecase, cfg),
		Pharmacy:       controllers.NewPharmacyController(log, pharmacyUsecase),
		Patient:        controllers.NewPatientController(log, patientUsecase),
		Dashboard:      controllers.NewDashboardController(log, dashboardUsecase),
	})
	return nil
}
