package vkboot

import (
	"github.com/cockroachdb/errors"
)

// ExecutionContext is a logical device and the queues retrieved from it.
type ExecutionContext struct {
	Device        Device
	GraphicsQueue Queue
	// PresentQueue is nil when presentation was not required and equal to
	// GraphicsQueue when both share a family.
	PresentQueue Queue
	Indices      QueueFamilyIndices
	Accelerator  *Accelerator

	driver Driver
}

func (c *ExecutionContext) destroy() {
	if c == nil || c.Device == nil {
		return
	}
	if err := c.driver.DeviceWaitIdle(c.Device); err != nil {
		logger.Warningf("device did not go idle before destruction: %v", err)
	}
	c.driver.DestroyDevice(c.Device)
	c.Device = nil
	c.GraphicsQueue = nil
	c.PresentQueue = nil
}

// ContextFactory opens logical devices.
type ContextFactory struct {
	Driver Driver
}

// QueueRequests builds one single-queue, unit-priority request per distinct
// family in indices.
func QueueRequests(indices QueueFamilyIndices) []QueueRequest {
	families := indices.Families()
	requests := make([]QueueRequest, 0, len(families))
	for _, family := range families {
		requests = append(requests, QueueRequest{
			Family:     family,
			Priorities: []float32{1.0},
		})
	}
	return requests
}

// CreateExecutionContext opens a device on a with no optional features, no
// device extensions and no device layers, then retrieves the graphics queue
// and, when required, the present queue.
func (f ContextFactory) CreateExecutionContext(a *Accelerator, indices QueueFamilyIndices) (*ExecutionContext, error) {
	if a == nil || !indices.IsValid() {
		return nil, errors.Wrapf(ErrLogicalDeviceCreationFailed, "queue families %s are incomplete", indices)
	}

	device, err := f.Driver.CreateDevice(a.Handle, DeviceInfo{Queues: QueueRequests(indices)})
	if err != nil {
		return nil, markf(err, ErrLogicalDeviceCreationFailed, "create device on %q", a.Properties.Name)
	}
	if device == nil {
		return nil, errors.Wrap(ErrLogicalDeviceCreationFailed, "driver returned a null device")
	}

	ctx := &ExecutionContext{
		Device:      device,
		Indices:     indices,
		Accelerator: a,
		driver:      f.Driver,
	}
	ctx.GraphicsQueue = f.Driver.DeviceQueue(device, indices.Graphics, 0)
	if indices.RequirePresent {
		if indices.HasSeparatePresentQueue() {
			ctx.PresentQueue = f.Driver.DeviceQueue(device, indices.Present, 0)
		} else {
			ctx.PresentQueue = ctx.GraphicsQueue
		}
	}

	logger.Infof("logical device created with %d queue families", len(indices.Families()))
	return ctx, nil
}

// Destroy releases the device; queues go with it.
func (f ContextFactory) Destroy(ctx *ExecutionContext) {
	ctx.destroy()
}
