package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/app"
	"storefront/internal/cache"
	"storefront/internal/config"
	mydb "storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/imagestore"
	"storefront/internal/jobs"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/tracing"
)

func setupLogger(level string) {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	// log.Ctx без логгера в контексте пишет в глобальный
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	conf := config.Load()
	setupLogger(conf.LogLevel)
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := mydb.MustOpen(conf.DBDSN)
	if err := mydb.Migrate(db); err != nil {
		log.Fatal().Err(err).Str("component", "main").Msg("migration failed")
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// image host: без ключей сервер поднимается, а загрузки отвечают 500
	var store imagestore.Store = imagestore.Disabled{}
	folder := conf.Cloudinary.Folder
	cld, err := imagestore.NewCloudinary(conf.Cloudinary)
	if err != nil {
		log.Warn().Err(err).Str("component", "main").Msg("image uploads disabled")
	} else {
		store = cld
		folder = cld.Folder()
	}

	// cache
	var productCache cache.ProductCache = cache.Noop{}
	if conf.Redis.Addr != "" {
		client, err := cache.NewRedisClient(conf.Redis)
		if err != nil {
			log.Warn().Err(err).Str("component", "main").Msg("redis unavailable, product cache disabled")
		} else {
			defer client.Close()
			productCache = cache.NewRedisCache(client, conf.Redis.TTL)
		}
	}

	// events
	var publisher events.Publisher = events.Noop{}
	if conf.Kafka.BrokerAddress != "" {
		publisher = events.NewKafkaPublisher(conf.Kafka)
	}
	defer publisher.Close()

	// tracing
	var tracer trace.Tracer
	if conf.Tracing.CollectorHost != "" {
		tp, err := tracing.InitTracing(conf.Tracing)
		if err != nil {
			log.Error().Err(err).Str("component", "main").Msg("Failed to initialize tracing")
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					log.Error().Err(err).Msg("Failed to shutdown tracing")
				}
			}()
			tracer = tp.Tracer(conf.Tracing.ServiceName)
		}
	}

	productRepo := repository.NewProductRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	pendingRepo := repository.NewPendingDeletionRepository(db)

	// без Cloudinary свипер не запускается, очередь повторов не нужна
	var retryQueue repository.PendingDeletionRepository
	if cld != nil {
		retryQueue = pendingRepo
	}

	reconciler := service.NewReconciler(productRepo, store, retryQueue, folder)
	productSvc := service.NewProductService(productRepo, reconciler, productCache, publisher)
	settingSvc := service.NewSettingService(settingRepo, publisher)
	uploadSvc := service.NewUploadService(store)
	authSvc := service.NewAuthService(adminRepo)
	storefrontSvc := service.NewStorefrontService(productSvc, settingSvc, conf.SiteURL)

	if conf.Admin.Email != "" && conf.Admin.Password != "" {
		if err := authSvc.EnsureAdmin(context.Background(), conf.Admin.Email, conf.Admin.Password); err != nil {
			log.Fatal().Err(err).Str("component", "main").Msg("admin seed failed")
		}
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Str("component", "main").Msg("scheduler")
	}
	if cld != nil {
		if err := jobs.NewSweeper(pendingRepo, store).Start(scheduler, conf.CleanupInterval); err != nil {
			log.Fatal().Err(err).Str("component", "main").Msg("schedule sweeper")
		}
	}
	scheduler.Start()

	// sessions
	sessionStore := cookie.NewStore([]byte(conf.Session.Secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   conf.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	router := app.NewRouter(app.Deps{
		SessionName:  conf.Session.Name,
		SessionStore: sessionStore,
		Tracer:       tracer,
		Ping:         sqlDB.PingContext,
		Products:     productSvc,
		Settings:     settingSvc,
		Uploads:      uploadSvc,
		Auth:         authSvc,
		Storefront:   storefrontSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", conf.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("component", "main").Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("component", "main").Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Str("component", "main").Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Str("component", "main").Msg("forced shutdown")
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Str("component", "main").Msg("scheduler shutdown")
	}
}
