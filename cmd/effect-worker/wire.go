//go:build wireinject
// +build wireinject

package main

import (
	"Petly/config"
	"Petly/dao"
	"Petly/dao/cache"
	"Petly/internal/effect"
	"Petly/pkg/client"
	"Petly/pkg/database"
	"Petly/pkg/email"
	"Petly/service"
	"Petly/worker"

	"github.com/google/wire"
)

func InitWorker(cfg *config.Config) (*worker.App, func(), error) {
	wire.Build(
		config.ProvideRocketMQConfig,
		config.ProvideSmtpConfig,
		config.ProvideWorkerConfig,

		client.NewRedisClient,
		database.NewDB,
		email.NewSender,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		effect.ProviderSet,
		wire.Bind(new(effect.Mailer), new(*email.Sender)),
		wire.Bind(new(effect.NotificationSink), new(*service.NotificationService)),
		wire.Bind(new(effect.Deduper), new(*cache.IntentDedupe)),
		wire.Bind(new(worker.Executor), new(*effect.Executor)),

		wire.Struct(new(worker.Consumer), "*"),
		wire.Struct(new(worker.Scheduler), "*"),
		wire.Struct(new(worker.App), "*"),
	)
	return nil, nil, nil
}
