package vkboot

// State is the position of a Renderer in its lifecycle. Init moves forward
// through the states in declaration order; Cleanup finishes the walk.
type State int

const (
	StateUninitialized State = iota
	StateSessionReady
	StateDiagnosticsAttached
	StateSurfaceBound
	StateDeviceSelected
	StateRunning
	StateShuttingDown
	StateTerminated
)

var stateNames = [...]string{
	StateUninitialized:       "Uninitialized",
	StateSessionReady:        "SessionReady",
	StateDiagnosticsAttached: "DiagnosticsAttached",
	StateSurfaceBound:        "SurfaceBound",
	StateDeviceSelected:      "DeviceSelected",
	StateRunning:             "Running",
	StateShuttingDown:        "ShuttingDown",
	StateTerminated:          "Terminated",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// initializing reports whether s lies between Uninitialized and Running, exclusive.
func (s State) initializing() bool {
	return s > StateUninitialized && s < StateRunning
}
