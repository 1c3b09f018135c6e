package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"newswire/bot"
	"newswire/logger"
)

func main() {
	godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		logger.Log.Error("BOT_TOKEN environment variable is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := bot.New(token).Run(ctx); err != nil && err != context.Canceled {
		logger.Log.Errorf("bot stopped: %v", err)
		os.Exit(1)
	}
}
