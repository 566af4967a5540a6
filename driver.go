package vkboot

import "fmt"

// Opaque driver objects. A value is created and interpreted only by the Driver
// that returned it. A nil value was never acquired.
type (
	Instance       interface{}
	PhysicalDevice interface{}
	Device         interface{}
	Queue          interface{}
	Surface        interface{}
	DebugCallback  interface{}
)

// Driver is the set of native entry points the bootstrap sequence is built on.
// VulkanDriver is the production implementation.
type Driver interface {
	// InstanceExtensions lists the instance extensions the loader exposes.
	InstanceExtensions() ([]string, error)
	// InstanceLayers lists the instance layers the loader exposes.
	InstanceLayers() ([]string, error)
	CreateInstance(info InstanceInfo) (Instance, error)
	DestroyInstance(instance Instance)

	CreateDebugCallback(instance Instance, flags DebugFlags, handler DebugHandler) (DebugCallback, error)
	DestroyDebugCallback(instance Instance, callback DebugCallback)

	DestroySurface(instance Instance, surface Surface)

	PhysicalDevices(instance Instance) ([]PhysicalDevice, error)
	DeviceProperties(gpu PhysicalDevice) DeviceProperties
	QueueFamilies(gpu PhysicalDevice) []QueueFamily
	// SurfaceSupport reports whether family can present to surface.
	SurfaceSupport(gpu PhysicalDevice, family int, surface Surface) (bool, error)

	CreateDevice(gpu PhysicalDevice, info DeviceInfo) (Device, error)
	DeviceQueue(device Device, family int, index int) Queue
	DeviceWaitIdle(device Device) error
	DestroyDevice(device Device)
}

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// InstanceInfo carries everything needed to create an instance.
type InstanceInfo struct {
	AppName       string
	AppVersion    Version
	EngineName    string
	EngineVersion Version
	APIVersion    Version

	Extensions []string
	Layers     []string

	// Portability sets the enumerate-portability create flag (MoltenVK).
	Portability bool
}

// QueueFlags mirrors the native queue capability bits.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// QueueFamily describes one queue family of a physical device.
type QueueFamily struct {
	Index int
	Flags QueueFlags
	Count uint32
}

func (q QueueFamily) IsGraphics() bool {
	return q.Count > 0 && q.Flags&QueueGraphics == QueueGraphics
}

func (q QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Count: %d Graphics: %v Compute: %v Transfer: %v }",
		q.Index, q.Count, q.Flags&QueueGraphics != 0, q.Flags&QueueCompute != 0, q.Flags&QueueTransfer != 0)
}

// DeviceType is the device class reported by the driver.
type DeviceType int

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated"
	case DeviceTypeDiscreteGPU:
		return "discrete"
	case DeviceTypeVirtualGPU:
		return "virtual"
	case DeviceTypeCPU:
		return "cpu"
	}
	return "other"
}

// DeviceProperties is the subset of physical device properties used for selection and reporting.
type DeviceProperties struct {
	Name          string
	Type          DeviceType
	VendorID      uint32
	DeviceID      uint32
	APIVersion    Version
	DriverVersion uint32
}

// QueueRequest asks for len(Priorities) queues from one family.
type QueueRequest struct {
	Family     int
	Priorities []float32
}

// DeviceInfo carries everything needed to create a logical device.
type DeviceInfo struct {
	Queues     []QueueRequest
	Extensions []string
	Layers     []string
}

// DebugFlags mirrors the native debug report bits.
type DebugFlags uint32

const (
	DebugInformation DebugFlags = 1 << iota
	DebugWarning
	DebugPerformanceWarning
	DebugError
	DebugDebug
)

// DebugMessage is one validation event delivered by the driver.
type DebugMessage struct {
	Flags       DebugFlags
	LayerPrefix string
	Code        int32
	Text        string
}

// DebugHandler receives validation events. Returning true asks the driver to
// abort the call that triggered the event.
type DebugHandler func(msg DebugMessage) bool
