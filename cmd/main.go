// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go_5_teach_board/internal/config"
	"go_5_teach_board/internal/handlers"
	"go_5_teach_board/internal/middleware"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/repository"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/store"
	"go_5_teach_board/internal/webutil"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const changeChannel = "teachboard:changes"

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 教師アカウント用のリレーショナルDB (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := db.AutoMigrate(&model.Teacher{}); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. 教材ドキュメントストア (MongoDB、未設定時はインメモリで代替)
	deckCol, quizCol, closeStore := newDocumentStore(ctx, logger)
	defer closeStore()

	// 3. Redis (任意): セッション失効リストと変更通知の共有
	var revoker service.SessionRevoker
	if config.Cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.Cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("Error connecting to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		revoker = service.NewRedisRevoker(rdb)

		bridge := store.NewBridge(rdb, changeChannel, logger)
		deckCol.SetPublisher(bridge)
		quizCol.SetPublisher(bridge)
		go bridge.Run(ctx, map[string]store.Refresher{
			config.CollectionFlashcards: deckCol,
			config.CollectionQuizzes:    quizCol,
		})
		slog.Info("Redis connected", slog.String("addr", config.Cfg.Redis.Addr))
	} else {
		slog.Warn("Redis address not set, using in-memory session revocation")
		revoker = service.NewMemoryRevoker()
	}

	// 4. Dependency Injection
	teacherRepo := repository.NewGormTeacherRepository()

	authService := service.NewAuthService(db, teacherRepo, revoker, &config.Cfg)
	deckService := service.NewDeckService(deckCol)
	quizService := service.NewQuizService(quizCol)

	deckDrafts := handlers.NewDeckDraftRegistry(config.Cfg.DraftTTL())
	quizDrafts := handlers.NewQuizDraftRegistry(config.Cfg.DraftTTL())
	deckDrafts.StartSweeper(ctx, time.Minute, logger)
	quizDrafts.StartSweeper(ctx, time.Minute, logger)

	authHandler := handlers.NewAuthHandler(authService, &config.Cfg, logger)
	deckHandler := handlers.NewDeckHandler(deckService, logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger)
	draftHandler := handlers.NewDraftHandler(deckService, quizService, deckDrafts, quizDrafts, logger)
	watchHandler := handlers.NewWatchHandler(deckService, quizService, logger)
	consumerHandler := handlers.NewConsumerHandler(logger)

	// 5. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/session", authHandler.Session)
		r.Post("/auth/logout", authHandler.Logout)
		r.Post("/consumer", consumerHandler.Consume)

		// --- Protected routes (セッションクッキー必須) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionGate(config.Cfg.Auth.CookieName, authService))

			r.Route("/flashcards", func(r chi.Router) {
				r.Get("/", deckHandler.GetDecks)
				r.Post("/", deckHandler.PostDeck)
				r.Get("/watch", watchHandler.WatchDecks)
				r.Route("/{deck_id}", func(r chi.Router) {
					r.Get("/", deckHandler.GetDeck)
					r.Put("/", deckHandler.PutDeck)
					r.Delete("/", deckHandler.DeleteDeck)
				})
			})

			r.Route("/quizzes", func(r chi.Router) {
				r.Get("/", quizHandler.GetQuizzes)
				r.Post("/", quizHandler.PostQuiz)
				r.Get("/watch", watchHandler.WatchQuizzes)
				r.Route("/{quiz_id}", func(r chi.Router) {
					r.Get("/", quizHandler.GetQuiz)
					r.Put("/", quizHandler.PutQuiz)
					r.Delete("/", quizHandler.DeleteQuiz)
				})
			})

			r.Route("/drafts", func(r chi.Router) {
				r.Route("/decks", func(r chi.Router) {
					r.Post("/", draftHandler.CreateDeckDraft)
					r.Route("/{draft_id}", func(r chi.Router) {
						r.Get("/", draftHandler.GetDeckDraft)
						r.Delete("/", draftHandler.DeleteDeckDraft)
						r.Put("/header", draftHandler.PutDeckDraftHeader)
						r.Post("/questions", draftHandler.PostDeckDraftQuestion)
						r.Put("/questions/{index}", draftHandler.PutDeckDraftQuestion)
						r.Delete("/questions/{index}", draftHandler.DeleteDeckDraftQuestion)
						r.Post("/submit", draftHandler.SubmitDeckDraft)
					})
				})
				r.Route("/quizzes", func(r chi.Router) {
					r.Post("/", draftHandler.CreateQuizDraft)
					r.Route("/{draft_id}", func(r chi.Router) {
						r.Get("/", draftHandler.GetQuizDraft)
						r.Delete("/", draftHandler.DeleteQuizDraft)
						r.Put("/header", draftHandler.PutQuizDraftHeader)
						r.Post("/questions", draftHandler.PostQuizDraftQuestion)
						r.Put("/questions/{index}", draftHandler.PutQuizDraftQuestion)
						r.Delete("/questions/{index}", draftHandler.DeleteQuizDraftQuestion)
						r.Post("/submit", draftHandler.SubmitQuizDraft)
					})
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	// 6. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    config.Cfg.Server.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received, draining connections...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

// documentCollection は main が扱うコレクションの共通部分です。
// 実体はMongoDBかインメモリのどちらかになります。
type documentCollection[T store.Document] interface {
	store.Collection[T]
	SetPublisher(pub store.ChangePublisher)
}

// newDocumentStore は教材ドキュメントストアを初期化します。
// MongoDBのURIが未設定、または接続できない場合はインメモリ実装に
// フォールバックします（再起動でデータは消えます）。
func newDocumentStore(ctx context.Context, logger *slog.Logger) (documentCollection[*model.FlashcardDeck], documentCollection[*model.Quiz], func()) {
	validDeck := func(d *model.FlashcardDeck) bool {
		return webutil.Validator.Struct(d) == nil
	}
	validQuiz := func(q *model.Quiz) bool {
		return webutil.Validator.Struct(q) == nil
	}

	if config.Cfg.Mongo.URI == "" {
		slog.Warn("Mongo URI not set, using in-memory document store")
		return store.NewMemoryCollection(config.CollectionFlashcards, validDeck),
			store.NewMemoryCollection(config.CollectionQuizzes, validQuiz),
			func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.Cfg.Mongo.URI))
	if err == nil {
		err = client.Ping(connectCtx, nil)
	}
	if err != nil {
		slog.Warn("Failed to connect to MongoDB, using in-memory document store", slog.Any("error", err))
		return store.NewMemoryCollection(config.CollectionFlashcards, validDeck),
			store.NewMemoryCollection(config.CollectionQuizzes, validQuiz),
			func() {}
	}

	slog.Info("MongoDB connected", slog.String("database", config.Cfg.Mongo.Database))
	database := client.Database(config.Cfg.Mongo.Database)

	deckCol := store.NewMongoCollection(
		database.Collection(config.CollectionFlashcards),
		func() *model.FlashcardDeck { return &model.FlashcardDeck{} },
		validDeck,
		logger,
	)
	quizCol := store.NewMongoCollection(
		database.Collection(config.CollectionQuizzes),
		func() *model.Quiz { return &model.Quiz{} },
		validQuiz,
		logger,
	)

	closer := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			slog.Error("Error disconnecting from MongoDB", slog.Any("error", err))
		} else {
			slog.Info("MongoDB connection closed.")
		}
	}
	return deckCol, quizCol, closer
}
