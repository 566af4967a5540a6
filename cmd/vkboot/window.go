package main

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"github.com/andewx/vkboot"
)

// glfwWindow adapts a GLFW window to vkboot.Window.
type glfwWindow struct {
	*glfw.Window
}

func openWindow(cfg vkboot.WindowConfig) (*glfwWindow, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw: create window")
	}
	return &glfwWindow{Window: window}, nil
}

func (w *glfwWindow) RequiredInstanceExtensions() []string {
	return w.GetRequiredInstanceExtensions()
}

func (w *glfwWindow) CreateSurface(instance vkboot.Instance) (vkboot.Surface, error) {
	ptr, err := w.CreateWindowSurface(instance.(vk.Instance), nil)
	if err != nil {
		return nil, err
	}
	return vk.SurfaceFromPointer(ptr), nil
}

// keepOpen reports whether the event loop should continue.
func (w *glfwWindow) keepOpen() bool {
	return !w.ShouldClose() && w.GetKey(glfw.KeyEscape) != glfw.Press
}
