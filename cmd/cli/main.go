package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/citizenportal/internal/buildinfo"
	"github.com/dmitrijs2005/citizenportal/internal/client/cli"
	"github.com/dmitrijs2005/citizenportal/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()

	// In embedded mode stdout belongs to the parent process.
	if cfg.Embedded {
		buildinfo.PrintBuildData(os.Stderr)
	} else {
		buildinfo.PrintBuildData(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
