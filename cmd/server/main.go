package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	configs "studyboard/config"
	"studyboard/internal/cache"
	"studyboard/internal/extractor"
	"studyboard/internal/handler"
	"studyboard/internal/middleware"
	"studyboard/internal/repository"
	"studyboard/internal/service"
	"studyboard/pkg/db"
	"studyboard/pkg/kafka"
	"studyboard/pkg/logger"
	"studyboard/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()
	defer log.Sync()

	ctxLogger := logging.New(log.ZapLogger)

	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("cannot load config", zap.Error(err))
	}

	postgres, err := db.NewPostgres(db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		log.Fatal("cannot connect to database", zap.Error(err))
	}
	defer postgres.Close()

	syllabusRepo := repository.NewSyllabusRepository(postgres.DB())
	assignmentRepo := repository.NewAssignmentRepository(postgres.DB())

	var events service.EventProducer
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
		if err != nil {
			log.Fatal("cannot create kafka producer", zap.Error(err))
		}
		defer producer.Close()
		events = producer
	} else {
		log.Info("kafka brokers not configured, event publishing disabled")
	}

	var boardCache handler.Cache
	if cfg.Redis.Address != "" {
		redisConn := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		defer redisConn.Close()
		boardCache = cache.NewRedisCache(redisConn)
	} else {
		log.Info("redis not configured, response caching disabled")
	}

	gemini := extractor.NewGemini(extractor.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})

	syllabusService := service.NewSyllabusService(syllabusRepo, gemini, log)
	boardService := service.NewBoardService(syllabusRepo, assignmentRepo, events, cfg.Kafka.StatusTopic, log)

	syllabusHandler := handler.NewSyllabusHandler(syllabusService, boardCache)
	boardHandler := handler.NewBoardHandler(boardService, boardCache, cfg.Redis.CacheTTL)

	r := chi.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(ctxLogger))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 10<<20) // 10 MB
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	syllabusHandler.RegisterRoutes(r)
	boardHandler.RegisterRoutes(r)

	if producer != nil {
		worker := NewReminderWorker(assignmentRepo, producer, log, cfg.Kafka.ReminderTopic, cfg.Kafka.ReminderInterval)
		go worker.Start(ctx)
	}

	log.Info("starting server", zap.String("address", cfg.HTTP.Address))

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("cannot start http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
