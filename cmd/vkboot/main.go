package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

func init() {
	// GLFW and the Vulkan loader must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "vkboot"
	app.Usage = "bring up a vulkan instance, surface and logical device"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from an HCL file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open a window and initialize the renderer",
			Description: `
Create a window, initialize the instance, debug callback, surface and logical
device, then wait until the window is closed or Escape is pressed.

The exit status identifies the stage that failed, if any.`,
			Action: Run,
		},
		{
			Name:   "list-devices",
			Usage:  "list physical devices and the one that would be selected",
			Action: ListDevices,
		},
		{
			Name:   "layers",
			Usage:  "list available instance layers",
			Action: ListLayers,
		},
		{
			Name:   "extensions",
			Usage:  "list available instance extensions",
			Action: ListExtensions,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
