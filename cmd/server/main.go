package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	httpadapter "github.com/communitybook/listing-service/internal/adapter/http"
	"github.com/communitybook/listing-service/internal/adapter/messaging/nats"
	"github.com/communitybook/listing-service/internal/adapter/repository/cache"
	"github.com/communitybook/listing-service/internal/adapter/repository/mongodb"
	"github.com/communitybook/listing-service/internal/adapter/storage/s3"
	"github.com/communitybook/listing-service/internal/config"
	"github.com/communitybook/listing-service/internal/listing/usecase"
	"github.com/communitybook/listing-service/internal/mailer"
	"github.com/communitybook/listing-service/internal/platform/logger"
	"github.com/communitybook/listing-service/internal/platform/tracer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("main: failed to load config", "error", err.Error())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.InitTracer("listing-service")
	if err != nil {
		log.Warn("main: tracing disabled", "error", err.Error())
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("main: tracer shutdown failed", "error", err.Error())
			}
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("main: failed to connect to MongoDB", "uri", cfg.MongoURI, "error", err.Error())
		return
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn("main: MongoDB disconnect failed", "error", err.Error())
		}
	}()
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Error("main: MongoDB unreachable", "uri", cfg.MongoURI, "error", err.Error())
		return
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo := mongodb.NewListingRepository(db)

	// Cache, archive, events and mail are optional: the service degrades to
	// store-only operation when any of them is unreachable at boot.
	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		log.Warn("main: running without cache", "address", cfg.RedisAddress, "error", err.Error())
		listingCache = nil
	}

	photoArchive, err := s3.NewPhotoArchive(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
	if err != nil {
		log.Warn("main: running without photo archive", "endpoint", cfg.MinIOEndpoint, "error", err.Error())
		photoArchive = nil
	}

	var publisher httpadapter.EventPublisher
	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Warn("main: running without event publishing", "url", cfg.NATSURL, "error", err.Error())
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	var mail httpadapter.Mailer
	if cfg.SMTPEmail != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	} else {
		log.Info("main: SMTP_EMAIL not set, owner notifications disabled")
	}

	listingUC := usecase.NewListingUsecase(listingRepo, log)
	var photoUC *usecase.PhotoUsecase
	if photoArchive != nil {
		photoUC = usecase.NewPhotoUsecase(listingRepo, photoArchive, log)
	} else {
		photoUC = usecase.NewPhotoUsecase(listingRepo, nil, log)
	}

	handler := httpadapter.NewHandler(listingUC, photoUC, publisher, listingCache, mail, log)
	router := httpadapter.NewRouter(handler, log, cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("main: HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("main: HTTP server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("main: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("main: graceful shutdown failed", "error", err.Error())
	}
	log.Info("main: stopped")
}
