package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/familyaccount/internal/buildinfo"
	"github.com/dmitrijs2005/familyaccount/internal/client/cli"
	"github.com/dmitrijs2005/familyaccount/internal/client/config"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
