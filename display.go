package vkboot

import (
	"github.com/cockroachdb/errors"
)

// Window is the windowing collaborator: it knows which instance extensions
// presenting to it needs and how to create a surface for itself.
type Window interface {
	RequiredInstanceExtensions() []string
	CreateSurface(instance Instance) (Surface, error)
}

// Presentation is a surface bound to one window for the life of a session.
type Presentation struct {
	Surface Surface
	Window  Window

	driver Driver
}

func (p *Presentation) destroy(session *Session) {
	if p == nil || p.Surface == nil || session == nil || session.Instance == nil {
		return
	}
	p.driver.DestroySurface(session.Instance, p.Surface)
	p.Surface = nil
}

// SurfaceBinder creates the presentation surface device selection is checked against.
type SurfaceBinder struct {
	Driver Driver
}

// CreateSurface binds window to the session.
func (b SurfaceBinder) CreateSurface(session *Session, window Window) (*Presentation, error) {
	if window == nil {
		return nil, errors.Wrap(ErrSurfaceCreationFailed, "no window to bind")
	}
	surface, err := window.CreateSurface(session.Instance)
	if err != nil {
		return nil, markf(err, ErrSurfaceCreationFailed, "create window surface")
	}
	if surface == nil {
		return nil, errors.Wrap(ErrSurfaceCreationFailed, "window returned a null surface")
	}
	logger.Infof("window surface created")
	return &Presentation{Surface: surface, Window: window, driver: b.Driver}, nil
}

// Destroy releases the surface; it must run before the session is destroyed.
func (b SurfaceBinder) Destroy(session *Session, p *Presentation) {
	p.destroy(session)
}
