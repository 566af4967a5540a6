package main

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli"
	"github.com/xlab/closer"

	"github.com/andewx/vkboot"
)

// Run opens the window, initializes the renderer and services window events
// until the user closes it.
func Run(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return exitError(err)
	}

	if err := glfw.Init(); err != nil {
		return cli.NewExitError(errors.Wrap(err, "glfw: init").Error(), 1)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return cli.NewExitError("glfw: vulkan loader not found", 1)
	}

	window, err := openWindow(cfg.Window)
	if err != nil {
		glfw.Terminate()
		return cli.NewExitError(err.Error(), 1)
	}

	// Teardown runs on the main thread. A signal only stops the loop and
	// waits for done, which closes after the last glfw call.
	var renderer *vkboot.Renderer
	done := make(chan struct{})
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			if renderer != nil {
				renderer.Cleanup()
			}
			window.Destroy()
			glfw.Terminate()
			close(done)
		})
	}
	defer shutdown()
	closer.Bind(func() {
		select {
		case <-done:
			return
		default:
		}
		window.SetShouldClose(true)
		glfw.PostEmptyEvent()
		<-done
	})

	driver, err := vkboot.NewVulkanDriver(glfw.GetVulkanGetInstanceProcAddress())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	renderer = vkboot.NewRenderer(driver, cfg)
	if err := renderer.Init(window); err != nil {
		return exitError(err)
	}

	for window.keepOpen() {
		glfw.WaitEventsTimeout(0.01)
	}
	logger.Infof("window closed")
	return nil
}
