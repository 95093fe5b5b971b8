package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/m3rciful/fitbot/core/cmd"
	"github.com/m3rciful/fitbot/internal/app"
	"github.com/m3rciful/fitbot/internal/config"
)

func main() {
	// .env is optional; real deployments set variables in the
	// environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return app.New(carrier.(*config.Config))
		},
	})
	if err != nil {
		log.Fatalf("fitbot: %v", err)
	}
}
