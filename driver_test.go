package vkboot

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type fakeGPU struct {
	name     string
	kind     DeviceType
	families []QueueFamily
	// present lists the families that can present to any surface.
	present map[int]bool
	// surfaceErr fails every surface support query on this device.
	surfaceErr error
}

// fakeDriver is an in-memory Driver. Handles are strings; every create and
// destroy call is appended to calls in the order it happened.
type fakeDriver struct {
	extensions []string
	layers     []string
	gpus       []fakeGPU

	extensionsErr error
	layersErr     error
	instanceErr   error
	debugErr      error
	devicesErr    error
	surfaceErr    error
	deviceErr     error

	calls        []string
	instanceInfo *InstanceInfo
	deviceInfo   *DeviceInfo
	handlerFlags DebugFlags
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface", DebugReportExtension},
		layers:     []string{"VK_LAYER_KHRONOS_validation"},
		gpus: []fakeGPU{
			{
				name:     "Fake Discrete",
				kind:     DeviceTypeDiscreteGPU,
				families: []QueueFamily{{Index: 0, Flags: QueueGraphics | QueueCompute | QueueTransfer, Count: 16}},
				present:  map[int]bool{0: true},
			},
		},
	}
}

func (d *fakeDriver) record(format string, args ...interface{}) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDriver) count(prefix string) int {
	n := 0
	for _, c := range d.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (d *fakeDriver) InstanceExtensions() ([]string, error) {
	return d.extensions, d.extensionsErr
}

func (d *fakeDriver) InstanceLayers() ([]string, error) {
	return d.layers, d.layersErr
}

func (d *fakeDriver) CreateInstance(info InstanceInfo) (Instance, error) {
	d.record("create instance")
	d.instanceInfo = &info
	if d.instanceErr != nil {
		return nil, d.instanceErr
	}
	return "instance", nil
}

func (d *fakeDriver) DestroyInstance(instance Instance) {
	d.record("destroy %v", instance)
}

func (d *fakeDriver) CreateDebugCallback(instance Instance, flags DebugFlags, handler DebugHandler) (DebugCallback, error) {
	d.record("create debug")
	d.handlerFlags = flags
	if d.debugErr != nil {
		return nil, d.debugErr
	}
	return "debug", nil
}

func (d *fakeDriver) DestroyDebugCallback(instance Instance, callback DebugCallback) {
	d.record("destroy %v", callback)
}

func (d *fakeDriver) DestroySurface(instance Instance, surface Surface) {
	d.record("destroy %v", surface)
}

func (d *fakeDriver) PhysicalDevices(instance Instance) ([]PhysicalDevice, error) {
	if d.devicesErr != nil {
		return nil, d.devicesErr
	}
	gpus := make([]PhysicalDevice, 0, len(d.gpus))
	for i := range d.gpus {
		gpus = append(gpus, i)
	}
	return gpus, nil
}

func (d *fakeDriver) DeviceProperties(gpu PhysicalDevice) DeviceProperties {
	g := d.gpus[gpu.(int)]
	return DeviceProperties{Name: g.name, Type: g.kind, APIVersion: Version{1, 3, 0}}
}

func (d *fakeDriver) QueueFamilies(gpu PhysicalDevice) []QueueFamily {
	return d.gpus[gpu.(int)].families
}

func (d *fakeDriver) SurfaceSupport(gpu PhysicalDevice, family int, surface Surface) (bool, error) {
	if d.surfaceErr != nil {
		return false, d.surfaceErr
	}
	g := d.gpus[gpu.(int)]
	if g.surfaceErr != nil {
		return false, g.surfaceErr
	}
	return g.present[family], nil
}

func (d *fakeDriver) CreateDevice(gpu PhysicalDevice, info DeviceInfo) (Device, error) {
	d.record("create device on %d", gpu)
	d.deviceInfo = &info
	if d.deviceErr != nil {
		return nil, d.deviceErr
	}
	return "device", nil
}

func (d *fakeDriver) DeviceQueue(device Device, family int, index int) Queue {
	return fmt.Sprintf("queue %d/%d", family, index)
}

func (d *fakeDriver) DeviceWaitIdle(device Device) error {
	d.record("wait %v", device)
	return nil
}

func (d *fakeDriver) DestroyDevice(device Device) {
	d.record("destroy %v", device)
}

// fakeWindow is a Window whose surface is the string "surface".
type fakeWindow struct {
	driver     *fakeDriver
	extensions []string
	err        error
}

func (w *fakeWindow) RequiredInstanceExtensions() []string {
	return w.extensions
}

func (w *fakeWindow) CreateSurface(instance Instance) (Surface, error) {
	w.driver.record("create surface")
	if w.err != nil {
		return nil, w.err
	}
	return "surface", nil
}

var errFakeDriver = errors.New("fake driver failure")
