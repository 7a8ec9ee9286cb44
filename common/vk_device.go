package common

import (
	"errors"
	"fmt"

	"GPU_vertex_layout/layout"
	vk "github.com/goki/vulkan"
)

const ENGINE_NAME = "No Engine"
const APP_MAJOR, APP_MINOR, APP_PATCH = 1, 0, 0

// Vulkan spec go bindings = v1.0.7, as per: https://github.com/goki/vulkan = 1.3.239
// Buffers only need 1.0.
const VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH = 1, 0, 0

var DefaultValidationLayers = []string{
	"VK_LAYER_KHRONOS_validation",
}

var ErrNoDevice = errors.New("no suitable physical device")

// Config selects how the headless device is brought up.
type Config struct {
	AppName          string
	Validation       bool
	ValidationLayers []string
}

// Device bundles the vulkan instance, the selected hardware and the logical device. There is no window
// or surface: the device only hands out buffers the host can map.
type Device struct {
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	PdProps        vk.PhysicalDeviceProperties
	PdMemoryProps  vk.PhysicalDeviceMemoryProperties
	QFamilies      QueueFamilyIndices

	Device    vk.Device
	GraphicsQ vk.Queue
}

// NewHeadlessDevice loads the system vulkan loader and creates an instance and a logical device on the
// first physical device with a graphics queue, preferring discrete GPUs.
func NewHeadlessDevice(cfg Config) (*Device, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("find vulkan loader: %w", err)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("initialize vulkan API: %w", err)
	}

	layers, err := validationLayers(cfg)
	if err != nil {
		return nil, err
	}
	dc := &Device{}
	if err := dc.createInstance(cfg.AppName, layers); err != nil {
		return nil, err
	}
	if err := dc.selectPhysicalDevice(); err != nil {
		vk.DestroyInstance(dc.Instance, nil)
		return nil, err
	}
	if err := dc.createLogicalDevice(layers); err != nil {
		vk.DestroyInstance(dc.Instance, nil)
		return nil, err
	}
	return dc, nil
}

// Destroy tears down the logical device and the instance. Buffers must be destroyed before.
func (dc *Device) Destroy() {
	vk.DeviceWaitIdle(dc.Device)
	vk.DestroyDevice(dc.Device, nil)
	vk.DestroyInstance(dc.Instance, nil)
}

func validationLayers(cfg Config) ([]string, error) {
	if !cfg.Validation {
		return nil, nil
	}
	required := cfg.ValidationLayers
	if len(required) == 0 {
		required = DefaultValidationLayers
	}
	supported, err := ReadInstanceLayerPropertyNames()
	if err != nil {
		return nil, err
	}
	layout.Logger().Debug("instance layers", "required", required, "supported", supported)
	if missing := MissingOfAinB(required, supported); len(missing) > 0 {
		return nil, fmt.Errorf("validation layers not supported: %v", missing)
	}
	return required, nil
}

func (dc *Device) createInstance(appName string, layers []string) error {
	applicationInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PNext:              nil,
		PApplicationName:   TerminatedStr(appName),
		ApplicationVersion: vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
		PEngineName:        TerminatedStr(ENGINE_NAME),
		EngineVersion:      vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
		ApiVersion:         vk.MakeVersion(VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH),
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		PApplicationInfo:        applicationInfo,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     TerminatedStrs(layers),
		EnabledExtensionCount:   0,
		PpEnabledExtensionNames: nil,
	}
	ins, err := VkCreateInstance(createInfo, nil)
	if err != nil {
		return fmt.Errorf("create vk instance: %w", err)
	}
	dc.Instance = ins
	return nil
}

func (dc *Device) selectPhysicalDevice() error {
	availableDevices, err := ReadPhysicalDevices(dc.Instance)
	if err != nil {
		return err
	}
	var pd vk.PhysicalDevice
	var qf *QueueFamilyIndices
	for i := range availableDevices {
		props := ReadPhysicalDeviceProperties(availableDevices[i])
		indices, err := findQueueFamilies(availableDevices[i])
		if err != nil {
			layout.Logger().Debug("skipping physical device", "device", toStringPhysicalDeviceProps(props), "err", err)
			continue
		}
		if pd == nil || props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
			pd, qf = availableDevices[i], indices
		}
		if props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
			break
		}
	}
	if pd == nil {
		return ErrNoDevice
	}
	dc.PhysicalDevice = pd
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(pd)
	dc.PdMemoryProps = ReadDeviceMemoryProperties(pd)
	layout.Logger().Info("selected physical device", "device", toStringPhysicalDeviceProps(dc.PdProps))
	return nil
}

func (dc *Device) createLogicalDevice(layers []string) error {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceCreateInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     TerminatedStrs(layers),
		EnabledExtensionCount:   0,
		PpEnabledExtensionNames: nil,
	}

	var err error
	dc.Device, err = VkCreateDevice(dc.PhysicalDevice, deviceCreateInfo, nil)
	if err != nil {
		return fmt.Errorf("create logical device: %w", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.Device, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		vk.DestroyDevice(dc.Device, nil)
		return fmt.Errorf("get graphics device queue: %w", err)
	}
	layout.Logger().Debug("logical device created", "queueFamily", *dc.QFamilies.GraphicsFamily,
		"flags", toStringQueueFlags(ReadQueueFamilies(dc.PhysicalDevice)[*dc.QFamilies.GraphicsFamily].QueueFlags))
	return nil
}
