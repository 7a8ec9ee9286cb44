package common

import (
	"errors"

	vk "github.com/goki/vulkan"
)

// QueueFamilyIndices only tracks a graphics family. Without a surface there is nothing to present to.
type QueueFamilyIndices struct {
	GraphicsFamily *uint32
}

func findQueueFamilies(pd vk.PhysicalDevice) (*QueueFamilyIndices, error) {
	indices := &QueueFamilyIndices{}
	qFamilies := ReadQueueFamilies(pd)
	for i := range qFamilies {
		if isBitSet(qFamilies[i], vk.QueueGraphicsBit) {
			indices.GraphicsFamily = new(uint32)
			*indices.GraphicsFamily = uint32(i)
			break
		}
	}
	if indices.GraphicsFamily == nil {
		return nil, errors.New("unable to find graphics capable queue family")
	}
	return indices, nil
}

func isBitSet(qFamily vk.QueueFamilyProperties, bit vk.QueueFlagBits) bool {
	return vk.QueueFlagBits(qFamily.QueueFlags)&bit > 0
}

func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	return []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		PNext:            nil,
		Flags:            0,
		QueueFamilyIndex: *q.GraphicsFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}
}
