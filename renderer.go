// Package vkboot brings up a Vulkan instance, an optional validation callback,
// a window surface and a logical device with its graphics and present queues,
// and tears them down again in reverse order.
package vkboot

import (
	"github.com/cockroachdb/errors"

	"github.com/andewx/vkboot/log"
)

var logger = log.New("vkboot")

// Renderer owns every object created during initialization. It is not safe
// for concurrent use; Init and Cleanup run on the thread that owns the window.
type Renderer struct {
	driver Driver
	config Config
	state  State
	ledger Ledger

	session      *Session
	debug        *DebugReport
	presentation *Presentation
	accelerator  *Accelerator
	context      *ExecutionContext
}

// NewRenderer returns an uninitialized renderer.
func NewRenderer(driver Driver, cfg Config) *Renderer {
	return &Renderer{driver: driver, config: cfg}
}

func (r *Renderer) State() State { return r.state }
func (r *Renderer) Config() Config { return r.config }
func (r *Renderer) Session() *Session { return r.session }
func (r *Renderer) DebugReport() *DebugReport { return r.debug }
func (r *Renderer) Presentation() *Presentation { return r.presentation }
func (r *Renderer) Accelerator() *Accelerator { return r.accelerator }
func (r *Renderer) ExecutionContext() *ExecutionContext { return r.context }

// Init runs the bootstrap stages in order: instance, debug callback, surface,
// device selection, logical device. window may be nil for headless use, in
// which case no surface is created and no present queue is required.
//
// When a stage fails, everything acquired so far is released in reverse
// order, the renderer ends Terminated and the error is returned. The error
// carries one of the stage sentinels; ExitCode maps it to a process status.
func (r *Renderer) Init(window Window) error {
	if r.state != StateUninitialized {
		return errors.Wrapf(ErrInvalidState, "init called in state %s", r.state)
	}

	if err := r.init(window); err != nil {
		report(err)
		r.release()
		return err
	}

	r.state = StateRunning
	logger.Noticef("renderer running on %s", r.accelerator.Properties.Name)
	return nil
}

func (r *Renderer) init(window Window) error {
	var extensions []string
	if window != nil {
		extensions = window.RequiredInstanceExtensions()
	}

	session, err := SessionFactory{Driver: r.driver, Config: r.config}.
		CreateSession(extensions, r.config.ValidationLayers, r.config.Diagnostics)
	if err != nil {
		return err
	}
	r.session = session
	r.ledger.Push("instance", session.Destroy)
	r.state = StateSessionReady

	debug, err := DiagnosticsBridge{Driver: r.driver}.Attach(session, r.config.Diagnostics)
	if err != nil {
		return err
	}
	if debug != nil {
		r.debug = debug
		r.ledger.Push("debug report callback", func() { debug.destroy(session) })
	}
	r.state = StateDiagnosticsAttached

	var surface Surface
	if window != nil {
		presentation, err := SurfaceBinder{Driver: r.driver}.CreateSurface(session, window)
		if err != nil {
			return err
		}
		r.presentation = presentation
		r.ledger.Push("surface", func() { presentation.destroy(session) })
		surface = presentation.Surface
	}
	r.state = StateSurfaceBound

	selector := DeviceSelector{
		Driver:  r.driver,
		Policy:  r.config.Policy,
		Exclude: r.config.ExcludeDevices,
	}
	accelerator, indices, err := selector.SelectDevice(session, surface)
	if err != nil {
		return err
	}
	r.accelerator = accelerator
	r.state = StateDeviceSelected

	ctx, err := ContextFactory{Driver: r.driver}.CreateExecutionContext(accelerator, indices)
	if err != nil {
		return err
	}
	r.context = ctx
	r.ledger.Push("logical device", ctx.destroy)
	return nil
}

// Cleanup destroys everything Init created, most recent first. It may be
// called more than once; calls on a renderer that is not initialized or
// already terminated do nothing.
func (r *Renderer) Cleanup() {
	if r.state != StateRunning && !r.state.initializing() {
		logger.Debugf("cleanup skipped in state %s", r.state)
		return
	}
	r.release()
	logger.Infof("renderer shut down")
}

func (r *Renderer) release() {
	r.state = StateShuttingDown
	r.ledger.Release()
	r.session = nil
	r.debug = nil
	r.presentation = nil
	r.accelerator = nil
	r.context = nil
	r.state = StateTerminated
}

// report logs exactly one line for a failed Init.
func report(err error) {
	switch KindOf(err) {
	case ErrUnsupportedCapability:
		logger.Errorf("required instance extension or validation layer is not available: %v", err)
	case ErrSessionCreationFailed:
		logger.Errorf("failed to create instance: %v", err)
	case ErrDiagnosticsFailed:
		logger.Errorf("failed to set up debug callback: %v", err)
	case ErrSurfaceCreationFailed:
		logger.Errorf("failed to create window surface: %v", err)
	case ErrNoAcceleratorFound:
		logger.Errorf("failed to find GPUs with Vulkan support: %v", err)
	case ErrNoSuitableAccelerator:
		logger.Errorf("failed to find a suitable GPU: %v", err)
	case ErrLogicalDeviceCreationFailed:
		logger.Errorf("failed to create logical device: %v", err)
	default:
		logger.Errorf("initialization failed: %v", err)
	}
}
