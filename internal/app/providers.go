package app

import (
	"context"
	"time"

	"github.com/doafacil/doafacil/internal/config"
	"github.com/doafacil/doafacil/internal/repo/mongodb"
	"github.com/doafacil/doafacil/internal/server/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongodb.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Ping(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return db, nil
}

func newValidate() *validator.Validate {
	return middleware.NewValidate()
}
