package main

import (
	"Petly/config"
	"Petly/pkg/log"
	"Petly/pkg/server"
	"Petly/worker"
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
		Name: "effect-worker",
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
				Usage: "consume side effects and run scheduled jobs",
				Action: func(ctx *cli.Context) error {
					cfg := config.New(ctx.String("config"))
					app, cleanup, err := InitWorker(cfg)
					if err != nil {
						return err
					}
					defer cleanup()
					return server.Run(ctx, "effect-worker", cfg.Server.Worker, worker.NewEngine(),
						app.Consumer.Run,
						app.Scheduler.Run,
					)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start worker", zap.Error(err))
	}
}
