package vkboot

import (
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// PlatformOS is the host operating system as reported by the Go runtime.
var PlatformOS = runtime.GOOS

// portabilityEnumerateBit is VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR.
const portabilityEnumerateBit = 0x00000001

// VulkanDriver implements Driver on top of the vulkan-go bindings. Every
// structure handed to the loader is a vulkan-go type, so layouts follow the
// native ABI exactly.
type VulkanDriver struct{}

// NewVulkanDriver loads the Vulkan entry points. procAddr is the loader's
// vkGetInstanceProcAddr (for example glfw.GetVulkanGetInstanceProcAddress());
// when nil the default system loader is used.
func NewVulkanDriver(procAddr unsafe.Pointer) (*VulkanDriver, error) {
	if procAddr != nil {
		vk.SetGetInstanceProcAddr(procAddr)
	} else if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, errors.Wrap(err, "vulkan: could not locate loader")
	}
	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vulkan: loader init failed")
	}
	return &VulkanDriver{}, nil
}

func (d *VulkanDriver) InstanceExtensions() (names []string, err error) {
	var count uint32
	if ret := vk.EnumerateInstanceExtensionProperties("", &count, nil); isError(ret) {
		return nil, NewError(ret)
	}
	list := make([]vk.ExtensionProperties, count)
	if ret := vk.EnumerateInstanceExtensionProperties("", &count, list); isError(ret) {
		return nil, NewError(ret)
	}
	for _, ext := range list[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

func (d *VulkanDriver) InstanceLayers() (names []string, err error) {
	var count uint32
	if ret := vk.EnumerateInstanceLayerProperties(&count, nil); isError(ret) {
		return nil, NewError(ret)
	}
	list := make([]vk.LayerProperties, count)
	if ret := vk.EnumerateInstanceLayerProperties(&count, list); isError(ret) {
		return nil, NewError(ret)
	}
	for _, layer := range list[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

func (d *VulkanDriver) CreateInstance(info InstanceInfo) (Instance, error) {
	var flags vk.InstanceCreateFlags
	if info.Portability {
		flags = vk.InstanceCreateFlags(portabilityEnumerateBit)
	}

	extensions := safeStrings(info.Extensions)
	layers := safeStrings(info.Layers)

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         makeVersion(info.APIVersion),
			ApplicationVersion: makeVersion(info.AppVersion),
			PApplicationName:   safeString(info.AppName),
			EngineVersion:      makeVersion(info.EngineVersion),
			PEngineName:        safeString(info.EngineName),
		},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
		Flags:                   flags,
	}, nil, &instance)
	if isError(ret) {
		return nil, NewError(ret)
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vulkan: instance function load failed")
	}
	return instance, nil
}

func (d *VulkanDriver) DestroyInstance(instance Instance) {
	vk.DestroyInstance(instance.(vk.Instance), nil)
}

func (d *VulkanDriver) CreateDebugCallback(instance Instance, flags DebugFlags, handler DebugHandler) (DebugCallback, error) {
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(instance.(vk.Instance), &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(flags),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
			object uint64, location uint, messageCode int32, pLayerPrefix string,
			pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

			abort := handler(DebugMessage{
				Flags:       DebugFlags(flags),
				LayerPrefix: pLayerPrefix,
				Code:        messageCode,
				Text:        pMessage,
			})
			if abort {
				return vk.Bool32(vk.True)
			}
			return vk.Bool32(vk.False)
		},
	}, nil, &callback)
	if isError(ret) {
		return nil, NewError(ret)
	}
	return callback, nil
}

func (d *VulkanDriver) DestroyDebugCallback(instance Instance, callback DebugCallback) {
	vk.DestroyDebugReportCallback(instance.(vk.Instance), callback.(vk.DebugReportCallback), nil)
}

func (d *VulkanDriver) DestroySurface(instance Instance, surface Surface) {
	vk.DestroySurface(instance.(vk.Instance), surface.(vk.Surface), nil)
}

func (d *VulkanDriver) PhysicalDevices(instance Instance) ([]PhysicalDevice, error) {
	var count uint32
	if ret := vk.EnumeratePhysicalDevices(instance.(vk.Instance), &count, nil); isError(ret) {
		return nil, NewError(ret)
	}
	if count == 0 {
		return nil, nil
	}
	gpus := make([]vk.PhysicalDevice, count)
	if ret := vk.EnumeratePhysicalDevices(instance.(vk.Instance), &count, gpus); isError(ret) {
		return nil, NewError(ret)
	}
	devices := make([]PhysicalDevice, 0, count)
	for _, gpu := range gpus[:count] {
		devices = append(devices, gpu)
	}
	return devices, nil
}

func (d *VulkanDriver) DeviceProperties(gpu PhysicalDevice) DeviceProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(gpu.(vk.PhysicalDevice), &props)
	props.Deref()
	return DeviceProperties{
		Name:          vk.ToString(props.DeviceName[:]),
		Type:          deviceType(props.DeviceType),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		APIVersion:    splitVersion(props.ApiVersion),
		DriverVersion: props.DriverVersion,
	}
}

func (d *VulkanDriver) QueueFamilies(gpu PhysicalDevice) []QueueFamily {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu.(vk.PhysicalDevice), &count, nil)
	if count == 0 {
		return nil
	}
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu.(vk.PhysicalDevice), &count, props)

	families := make([]QueueFamily, 0, count)
	for i := range props[:count] {
		props[i].Deref()
		families = append(families, QueueFamily{
			Index: i,
			Flags: QueueFlags(props[i].QueueFlags),
			Count: props[i].QueueCount,
		})
	}
	return families
}

func (d *VulkanDriver) SurfaceSupport(gpu PhysicalDevice, family int, surface Surface) (bool, error) {
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(gpu.(vk.PhysicalDevice), uint32(family), surface.(vk.Surface), &supported)
	if isError(ret) {
		return false, NewError(ret)
	}
	return supported == vk.True, nil
}

func (d *VulkanDriver) CreateDevice(gpu PhysicalDevice, info DeviceInfo) (Device, error) {
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(info.Queues))
	for _, q := range info.Queues {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Family),
			QueueCount:       uint32(len(q.Priorities)),
			PQueuePriorities: q.Priorities,
		})
	}

	extensions := safeStrings(info.Extensions)
	layers := safeStrings(info.Layers)

	var device vk.Device
	ret := vk.CreateDevice(gpu.(vk.PhysicalDevice), &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}, nil, &device)
	if isError(ret) {
		return nil, NewError(ret)
	}
	return device, nil
}

func (d *VulkanDriver) DeviceQueue(device Device, family int, index int) Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(device.(vk.Device), uint32(family), uint32(index), &queue)
	return queue
}

func (d *VulkanDriver) DeviceWaitIdle(device Device) error {
	return NewError(vk.DeviceWaitIdle(device.(vk.Device)))
}

func (d *VulkanDriver) DestroyDevice(device Device) {
	vk.DestroyDevice(device.(vk.Device), nil)
}

func makeVersion(v Version) uint32 {
	return uint32(vk.MakeVersion(v.Major, v.Minor, v.Patch))
}

func splitVersion(v uint32) Version {
	return Version{
		Major: int(v >> 22),
		Minor: int((v >> 12) & 0x3ff),
		Patch: int(v & 0xfff),
	}
}

func deviceType(t vk.PhysicalDeviceType) DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return DeviceTypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return DeviceTypeCPU
	}
	return DeviceTypeOther
}
