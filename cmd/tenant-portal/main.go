package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Simatwa/house-rental-management-system/internal/cli"
	"github.com/Simatwa/house-rental-management-system/internal/config"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

func main() {
	appName := config.AppName
	if appName == "" {
		appName = config.DefaultAppName
	}
	utils.InitLogger(appName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCommand(cli.DefaultAppFactory))
	stop()

	os.Exit(code)
}
