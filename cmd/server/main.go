package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/citizenportal/internal/buildinfo"
	"github.com/dmitrijs2005/citizenportal/internal/server"
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// App.Run handles termination signals itself.
	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
