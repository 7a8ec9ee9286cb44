package layout

import (
	vk "github.com/goki/vulkan"
	"github.com/gogpu/gputypes"
)

// Shader input locations of the two attributes.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// VulkanBindingDescription describes a vertex buffer of []Vertex bound at the
// given binding index, advancing once per vertex.
func VulkanBindingDescription(binding uint32) vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   binding,
		Stride:    Stride,
		InputRate: vk.VertexInputRateVertex,
	}
}

// VulkanAttributeDescriptions describes position and color inside a vertex of
// the given binding.
func VulkanAttributeDescriptions(binding uint32) []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Location: PositionLocation,
			Binding:  binding,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   PositionOffset,
		},
		{
			Location: ColorLocation,
			Binding:  binding,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   ColorOffset,
		},
	}
}

// WebGPUBufferLayout is the WebGPU equivalent of the Vulkan descriptions.
func WebGPUBufferLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: Stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: PositionOffset, ShaderLocation: PositionLocation},
			{Format: gputypes.VertexFormatFloat32x3, Offset: ColorOffset, ShaderLocation: ColorLocation},
		},
	}
}
