package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/features/auth"
	"catalog-api/internal/features/categories"
	"catalog-api/internal/features/products"
	custommiddleware "catalog-api/internal/middleware"
	"catalog-api/internal/pipeline"
	"catalog-api/internal/repository"
	"catalog-api/internal/storage"
	"catalog-api/internal/transport"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const readCacheMaxAge = time.Minute

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires the mediator pipeline, repositories and HTTP surface.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *sql.DB,
	redisClient *redis.Client,
	files *storage.LocalStorage,
) (*Server, error) {
	store := repository.NewPostgresStore(db)
	tokens := auth.NewTokenService(cfg.JWT.Secret)

	if err := registerMediator(store, tokens, files, logger); err != nil {
		return nil, fmt.Errorf("failed to register request handlers: %w", err)
	}

	errorWriter := transport.NewErrorWriter(logger, cfg.Server.IsDevelopment())

	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(custommiddleware.CorrelationID)
	router.Use(custommiddleware.Recovery(logger))
	router.Use(custommiddleware.SecurityHeaders)
	router.Use(custommiddleware.CORS(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))
	router.Use(custommiddleware.RequestLogging(logger))
	router.Use(custommiddleware.RateLimit(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "ratelimit",
	}, logger))
	router.Use(middleware.Compress(5))

	cache := custommiddleware.CacheControl(readCacheMaxAge)
	authenticate := custommiddleware.Authenticate(tokens, logger)
	requireEditor := custommiddleware.RequireRole(logger, "editor", "admin")
	requireAdmin := custommiddleware.RequireRole(logger, "admin")

	transport.NewHealthHandler(db, redisClient, files, logger).RegisterRoutes(router)
	transport.NewAuthHandler(errorWriter, logger).RegisterRoutes(router)
	transport.NewProductHandler(errorWriter, logger).RegisterRoutes(router, cache, authenticate, requireAdmin)
	transport.NewCategoryHandler(errorWriter, logger).RegisterRoutes(router, cache, authenticate, requireEditor, requireAdmin)

	// Serve uploaded images from local storage.
	router.Handle("/images/products/*", http.StripPrefix("/images/products/", http.FileServer(http.Dir(cfg.Storage.Path))))

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}, nil
}

// registerMediator attaches the pipeline behaviors, every request handler
// and the per-feature validation rules. Validation runs before the
// performance log so rejected requests never reach a handler.
func registerMediator(
	store repository.Store,
	tokens *auth.TokenService,
	files *storage.LocalStorage,
	logger *zap.Logger,
) error {
	mediator.RegisterPipelineBehavior(&pipeline.ValidationBehavior{})
	mediator.RegisterPipelineBehavior(&pipeline.PerformanceBehavior{Logger: logger})

	auth.RegisterValidation()
	categories.RegisterValidation(store)
	products.RegisterValidation(store)

	registrations := []func() error{
		func() error {
			return mediator.RegisterRequestHandler[auth.RegisterCommand, auth.AuthResult](auth.NewRegisterHandler(store, tokens))
		},
		func() error {
			return mediator.RegisterRequestHandler[auth.LoginCommand, auth.AuthResult](auth.NewLoginHandler(store, tokens))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.CreateProductCommand, uuid.UUID](products.NewCreateProductHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.CreateProductWithImageCommand, uuid.UUID](products.NewCreateProductWithImageHandler(store, files))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.UpdateProductCommand, pipeline.Unit](products.NewUpdateProductHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.UpdateProductImageCommand, string](products.NewUpdateProductImageHandler(store, files))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.DeleteProductCommand, pipeline.Unit](products.NewDeleteProductHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.GetProductQuery, products.ProductDTO](products.NewGetProductHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[products.ListProductsQuery, products.PagedResponse[products.ProductDTO]](products.NewListProductsHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[categories.CreateCategoryCommand, uuid.UUID](categories.NewCreateCategoryHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[categories.UpdateCategoryCommand, pipeline.Unit](categories.NewUpdateCategoryHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[categories.DeleteCategoryCommand, pipeline.Unit](categories.NewDeleteCategoryHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[categories.GetCategoryQuery, categories.CategoryDTO](categories.NewGetCategoryHandler(store))
		},
		func() error {
			return mediator.RegisterRequestHandler[categories.ListCategoriesQuery, []categories.CategoryDTO](categories.NewListCategoriesHandler(store))
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Server) Close() error {
	s.logger.Info("closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database connection", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
