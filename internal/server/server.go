package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/doafacil/doafacil/internal/config"
	pkgmdw "github.com/doafacil/doafacil/internal/server/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	log *zap.Logger,
	validate *validator.Validate,
	handler Controller,
) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgmdw.NewValidator(validate)
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(log)

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("PANIC RECOVER", zap.Error(err), zap.ByteString("stack", stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)

	auth := pkgmdw.BearerAuth(conf.Auth.JWTSecret)

	api := e.Group("/api/v1")
	products := api.Group("/products")
	products.GET("", handler.Index)
	products.GET("/:id", handler.Show)
	products.POST("", handler.Create, auth)
	products.PATCH("/:id", handler.Update, auth)
	products.DELETE("/:id", handler.Delete, auth)
	products.GET("/mine", handler.Mine, auth)
	products.GET("/scheduled", handler.Scheduled, auth)
	products.POST("/:id/schedule", handler.Schedule, auth)
	products.PATCH("/:id/donate", handler.ConcludeDonation, auth)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", conf.Server.Addr))
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
