package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/config"
	"github.com/innovation-atlas/internal/delivery/http/handler"
	"github.com/innovation-atlas/internal/delivery/http/middleware"
	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"

	_ "github.com/innovation-atlas/docs/swagger"
)

// Handlers - обработчики, которые регистрирует сервер
type Handlers struct {
	Object     *handler.ObjectHandler
	Dictionary *handler.DictionaryHandler
	Auth       *handler.AuthHandler
	Health     *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	tokens   middleware.AccessTokenValidator
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	tokens middleware.AccessTokenValidator,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Innovation Atlas API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    2 * 1024 * 1024,
		ErrorHandler: errorHandler(logger, cfg.IsDevelopment()),
		// c.IP() берётся из ProxyHeader; с TrustedProxies только для запросов от этих адресов
		ProxyHeader:             cfg.Server.ProxyHeader,
		EnableTrustedProxyCheck: len(cfg.Server.TrustedProxies) > 0,
		TrustedProxies:          cfg.Server.TrustedProxies,
		EnableIPValidation:      true,
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		tokens:   tokens,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение, нужен тестам
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	rl := s.config.RateLimit
	api := s.app.Group("/api", middleware.RateLimit(rl.APIMax, rl.APIWindow))

	auth := middleware.Auth(s.tokens, s.logger)
	canEdit := middleware.RequireCapability(domain.CapabilityEditObjects)
	canManageDictionaries := middleware.RequireCapability(domain.CapabilityManageDictionaries)

	api.Get("/health", s.handlers.Health.Health)
	api.Get("/version", s.handlers.Health.Version)

	objects := api.Group("/objects")
	objects.Get("/", s.handlers.Object.List)
	// export и bulk регистрируются раньше /:id
	objects.Get("/export", auth, canEdit, s.handlers.Object.Export)
	objects.Post("/bulk", auth, canEdit, s.handlers.Object.Bulk)
	objects.Get("/:id", s.handlers.Object.GetByID)
	objects.Post("/", auth, canEdit, s.handlers.Object.Create)
	objects.Put("/:id", auth, canEdit, s.handlers.Object.Update)
	objects.Delete("/:id", auth, canEdit, s.handlers.Object.Delete)

	dictionaries := api.Group("/dictionaries")
	dictionaries.Get("/infrastructure-types", s.handlers.Dictionary.InfrastructureTypes)
	dictionaries.Get("/regions", s.handlers.Dictionary.Regions)
	dictionaries.Get("/priority-directions", s.handlers.Dictionary.PriorityDirections)
	dictionaries.Get("/search", s.handlers.Dictionary.Search)
	dictionaries.Post("/priority-directions", auth, canManageDictionaries, s.handlers.Dictionary.FindOrCreatePriorityDirection)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", middleware.RateLimit(rl.LoginMax, rl.LoginWindow), s.handlers.Auth.Login)
	authGroup.Post("/refresh", s.handlers.Auth.Refresh)
	authGroup.Post("/logout", auth, s.handlers.Auth.Logout)
	authGroup.Get("/me", auth, s.handlers.Auth.Me)

	s.app.Use(func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.ErrRouteNotFound)
	})
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// errorHandler отдаёт ошибки, не обработанные в хендлерах, в общем формате ответа.
// Текст внутренней ошибки виден клиенту только в development.
func errorHandler(logger *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		message := errors.ErrInternalServer.Message
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("Unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			if development {
				message = err.Error()
			} else {
				message = errors.ErrInternalServer.Message
			}
		}

		resp := utils.Response{
			Success: false,
			Error:   message,
			Code:    errorCode(code),
		}
		return c.Status(code).JSON(resp)
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return errors.ErrRouteNotFound.Code
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return errors.ErrTooManyRequests.Code
	default:
		if status < fiber.StatusInternalServerError {
			return errors.ErrInvalidRequest.Code
		}
		return errors.ErrInternalServer.Code
	}
}
