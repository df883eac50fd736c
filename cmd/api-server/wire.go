//go:build wireinject
// +build wireinject

package main

import (
	"Petly/config"
	"Petly/dao"
	"Petly/dao/cache"
	"Petly/handler"
	"Petly/internal/effect"
	"Petly/pkg/client"
	"Petly/pkg/database"
	"Petly/pkg/email"
	"Petly/pkg/oss"
	"Petly/pkg/server"
	"Petly/pkg/utils"
	"Petly/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		config.ProvideOssConfig,
		config.ProvideRocketMQConfig,
		config.ProvideSmtpConfig,
		config.ProvideWorkerConfig,

		client.NewRedisClient,
		database.NewDB,
		oss.NewBucket,
		email.NewSender,
		utils.ProvideHasher,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		effect.ProviderSet,
		wire.Bind(new(effect.Mailer), new(*email.Sender)),
		wire.Bind(new(effect.NotificationSink), new(*service.NotificationService)),
		wire.Bind(new(effect.Deduper), new(*cache.IntentDedupe)),

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Pet), "*"),
		wire.Struct(new(handler.Business), "*"),
		wire.Struct(new(handler.Appointment), "*"),
		wire.Struct(new(handler.Point), "*"),
		wire.Struct(new(handler.Referral), "*"),
		wire.Struct(new(handler.Notification), "*"),
		wire.Struct(new(handler.Upload), "*"),
		wire.Struct(new(handler.Admin), "*"),

		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil, nil
}
