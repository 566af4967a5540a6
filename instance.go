package vkboot

import (
	"github.com/cockroachdb/errors"
)

// Session is a live Vulkan instance together with the names it was created with.
type Session struct {
	Instance   Instance
	Extensions []string
	Layers     []string

	driver Driver
}

// Destroy releases the instance. Every object created from it must already be gone.
func (s *Session) Destroy() {
	if s == nil || s.Instance == nil {
		return
	}
	s.driver.DestroyInstance(s.Instance)
	s.Instance = nil
}

// SessionFactory creates instances after checking that everything they need is on offer.
type SessionFactory struct {
	Driver Driver
	Config Config
}

// CreateSession merges the caller's extensions with the debug report
// extension when diagnostics are enabled, verifies extensions and layers
// against the probe and creates the instance. Nothing is created unless every
// name is available.
func (f SessionFactory) CreateSession(requiredExtensions, requiredLayers []string, diagnosticsEnabled bool) (*Session, error) {
	extensions := appendUnique(nil, requiredExtensions...)
	var layers []string
	if diagnosticsEnabled {
		extensions = appendUnique(extensions, DebugReportExtension)
		layers = appendUnique(nil, requiredLayers...)
	}

	probe := Probe{Driver: f.Driver}
	available, err := probe.InstanceExtensions()
	if err != nil {
		return nil, markf(err, ErrSessionCreationFailed, "query instance extensions")
	}
	if ok, missing := (Requirement{Required: extensions, Actual: available}).HasRequired(); !ok {
		return nil, errors.Wrapf(ErrUnsupportedCapability, "missing instance extensions %v", missing)
	}

	if len(layers) > 0 {
		availableLayers, err := probe.InstanceLayers()
		if err != nil {
			return nil, markf(err, ErrSessionCreationFailed, "query instance layers")
		}
		if ok, missing := (Requirement{Required: layers, Actual: availableLayers}).HasRequired(); !ok {
			return nil, errors.Wrapf(ErrUnsupportedCapability, "missing validation layers %v", missing)
		}
	}

	// Portability drivers are only enumerated when asked for; the extension is
	// optional so its absence is not an error.
	portability := false
	if PlatformOS == "darwin" && available.Has(PortabilityEnumerationExtension) {
		extensions = appendUnique(extensions, PortabilityEnumerationExtension)
		portability = true
	}

	cfg := f.Config
	instance, err := f.Driver.CreateInstance(InstanceInfo{
		AppName:       cfg.AppName,
		AppVersion:    cfg.AppVersion,
		EngineName:    cfg.EngineName,
		EngineVersion: cfg.EngineVersion,
		APIVersion:    cfg.APIVersion,
		Extensions:    extensions,
		Layers:        layers,
		Portability:   portability,
	})
	if err != nil {
		return nil, markf(err, ErrSessionCreationFailed, "create instance")
	}
	if instance == nil {
		return nil, errors.Wrap(ErrSessionCreationFailed, "driver returned a null instance")
	}

	logger.Infof("instance created with %d extensions and %d layers", len(extensions), len(layers))
	logger.Debugf("instance extensions %v, layers %v", extensions, layers)

	return &Session{
		Instance:   instance,
		Extensions: extensions,
		Layers:     layers,
		driver:     f.Driver,
	}, nil
}
