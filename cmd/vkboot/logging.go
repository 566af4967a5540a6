package main

import (
	"github.com/urfave/cli"

	"github.com/andewx/vkboot"
	"github.com/andewx/vkboot/log"
)

var logger = log.New("vkboot-cli")

func setupLogging(ctx *cli.Context) {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}
	log.SetVerbosity(verbosity)
}

func loadConfig(ctx *cli.Context) (vkboot.Config, error) {
	path := ctx.GlobalString("config")
	if path == "" {
		return vkboot.DefaultConfig(), nil
	}
	logger.Infof("loading configuration from %s", path)
	return vkboot.LoadConfig(path)
}

// exitError turns a library error into an error urfave/cli exits with.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	return cli.NewExitError(err.Error(), vkboot.ExitCode(err))
}
