package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "instauto/docs"
	"instauto/internal/adapter/http/handlers"
	"instauto/internal/adapter/persistence/repository"
	"instauto/internal/config"
	"instauto/internal/infrastructure/cache"
	"instauto/internal/infrastructure/database"
	"instauto/internal/infrastructure/logger"
	"instauto/internal/infrastructure/storage"
	"instauto/internal/usecase"
	"instauto/internal/usecase/interfaces"
)

// Handlers groups everything the router needs.
type Handlers struct {
	QuoteRequests *handlers.QuoteRequestHandler
	Attachments   *handlers.AttachmentHandler
}

// Run wires the application from cfg and serves until the listener fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	h, closeFn, err := Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	router := NewRouter(cfg, log, h)
	log.Info("[http] listening", zap.String("port", cfg.ServerPort), zap.String("quote_store", cfg.QuoteStore))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with middlewares and every route.
func NewRouter(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg, log)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, cfg.Auth.JWTSecret, h)
	return router
}

// Build connects the configured stores and assembles the handlers. The
// returned func releases the connections.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (Handlers, func(), error) {
	log = logger.OrNop(log)
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (Handlers, func(), error) {
		closeAll()
		return Handlers{}, func() {}, err
	}

	quoteRepo, closeQuotes, err := openQuoteStore(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeQuotes)

	pool, err := database.ConnectPostgres(ctx, cfg.Database.URL)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, pool.Close)

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		// The cache is optional; run straight against Postgres.
		log.Warn("[http] redis unavailable, workshop cache disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	profiles := repository.NewWorkshopProfilePostgresRepository(pool)
	recipients := repository.NewCachedWorkshopProfileRepository(profiles, redisClient, cfg.Redis.WorkshopTTL, log)
	sink := repository.NewNotificationPostgresSink(pool)

	var attachments interfaces.IAttachmentStorage
	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO, log)
	if err != nil {
		log.Warn("[http] minio unavailable, attachments disabled", zap.Error(err))
	} else if minioStorage != nil {
		attachments = minioStorage
	}

	return assemble(cfg, log, quoteRepo, profiles, recipients, sink, attachments), closeAll, nil
}

// assemble builds the handlers from opened stores. Eligibility and ownership
// checks read profiles, which must reflect current state; recipients only
// addresses notifications and may be served from the cache.
func assemble(
	cfg *config.Config,
	log *zap.Logger,
	quotes interfaces.IQuoteRequestRepository,
	profiles interfaces.IWorkshopProfileRepository,
	recipients interfaces.IWorkshopProfileRepository,
	sink interfaces.INotificationSink,
	attachments interfaces.IAttachmentStorage,
) Handlers {
	dispatcher := usecase.NewNotificationDispatcher(sink, recipients, log, cfg.NotificationTimeout)
	quoteUseCase := usecase.NewQuoteRequestUseCase(quotes, profiles, dispatcher, log)
	attachmentUseCase := usecase.NewAttachmentUseCase(attachments, log)

	return Handlers{
		QuoteRequests: handlers.NewQuoteRequestHandler(quoteUseCase),
		Attachments:   handlers.NewAttachmentHandler(attachmentUseCase),
	}
}

func openQuoteStore(ctx context.Context, cfg *config.Config) (interfaces.IQuoteRequestRepository, func(), error) {
	switch cfg.QuoteStore {
	case config.QuoteStoreSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewQuoteRequestSQLiteRepository(db), func() { _ = db.Close() }, nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewQuoteRequestDynamoRepository(ddb, cfg.AWS.QuoteRequestsTable), func() {}, nil
	}
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	router.Use(logger.GinMiddleware(log))
	corsCfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if allowsAnyOrigin(cfg.CORSAllowedOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AllowCredentials = true
	}
	router.Use(cors.New(corsCfg))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.OrNop(log).Error("[http] recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
