package app

import (
	"github.com/doafacil/doafacil/internal/config"
	"github.com/doafacil/doafacil/internal/kafka"
	"github.com/doafacil/doafacil/internal/repo/mongodb"
	"github.com/doafacil/doafacil/internal/server"
	"github.com/doafacil/doafacil/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	conf := config.MustLoad()
	log := newLogger()

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Supply(conf, log),
		fx.Provide(
			newMongoDB,
			newValidate,

			mongodb.NewProductRepository,
			mongodb.NewUserRepository,

			kafka.NewPublisher,

			usecase.NewUserUsecase,
			usecase.NewProductUsecase,

			server.NewController,
		),
		fx.Invoke(funcs...),
	)
}

func newLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}
