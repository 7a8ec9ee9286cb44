package common

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

func asVendorName(v uint32) string {
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

// asDriverVersion decodes the packed driver version. Only NVIDIA deviates from the vulkan version encoding.
func asDriverVersion(vendor uint32, raw uint32) string {
	if vendor == 0x10DE {
		return fmt.Sprintf("%d.%d.%d.%d", (raw>>22)&0x3ff, (raw>>14)&0x0ff, (raw>>6)&0x0ff, raw&0x003f)
	}
	return vk.Version(raw).String()
}

func toStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func toStringPhysicalDeviceProps(pdProps vk.PhysicalDeviceProperties) string {
	return fmt.Sprintf("%s (api: %s, driver: %s, vendor: %s, type: %s)",
		vk.ToString(pdProps.DeviceName[:]),
		vk.Version(pdProps.ApiVersion).String(),
		asDriverVersion(pdProps.VendorID, pdProps.DriverVersion),
		asVendorName(pdProps.VendorID),
		toStringDeviceType(pdProps.DeviceType),
	)
}

func toStringMemoryType(mt vk.MemoryType) string {
	return fmt.Sprintf("MemoryType(Flags:%032b, HeapIdx:%d)", mt.PropertyFlags, mt.HeapIndex)
}

func toStringQueueFlags(bits vk.QueueFlags) []string {
	var properties []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		properties = append(properties, "VK_QUEUE_GRAPHICS_BIT")
	}
	if flags&vk.QueueComputeBit > 0 {
		properties = append(properties, "VK_QUEUE_COMPUTE_BIT")
	}
	if flags&vk.QueueTransferBit > 0 {
		properties = append(properties, "VK_QUEUE_TRANSFER_BIT")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		properties = append(properties, "VK_QUEUE_SPARSE_BINDING_BIT")
	}
	return properties
}
