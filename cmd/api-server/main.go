package main

import (
	"Petly/config"
	"Petly/pkg/log"
	"Petly/pkg/server"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cliApp := &cli.App{
		Name: "api-server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				EnvVars: []string{"PETLY_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					cfg := config.New(ctx.String("config"))
					app, cleanup, err := InitServer(cfg)
					if err != nil {
						return err
					}
					defer cleanup()
					return server.Run(ctx, "api-server", cfg.Server.Http, app.Engine)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
