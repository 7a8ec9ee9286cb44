package common

import (
	"errors"
	"fmt"
	"unsafe"

	"GPU_vertex_layout/layout"
	vk "github.com/goki/vulkan"
)

// This Code section contains allocation helper functions. It aims to simplify the allocation of buffers
// on the selected device.

var ErrNotHostVisible = errors.New("buffer memory is not host visible and coherent")

// HostVisible is the memory a buffer needs to be mapped and written without explicit flushes.
const HostVisible = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

// Buffer is a vulkan buffer bound to its own allocation. When allocated HostVisible it satisfies the
// model.DeviceMemory contract.
type Buffer struct {
	Handle    vk.Buffer
	DeviceMem vk.DeviceMemory
	Usage     vk.BufferUsageFlags

	dc    *Device
	size  vk.DeviceSize
	props vk.MemoryPropertyFlags
}

// CreateVertexBuffer allocates a host visible buffer usable as a vertex buffer.
func CreateVertexBuffer(dc *Device, size uint64) (*Buffer, error) {
	usage := vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit | vk.BufferUsageTransferSrcBit | vk.BufferUsageTransferDstBit)
	return CreateBuffer(dc, vk.DeviceSize(size), usage, HostVisible)
}

func CreateBuffer(dc *Device, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	if size == 0 {
		return nil, errors.New("cannot create 0-sized buffer")
	}
	// Buffer Handle of fitting Size
	bufferInfo := vk.BufferCreateInfo{
		SType:                 vk.StructureTypeBufferCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Size:                  size,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
	}
	buf, err := VkCreateBuffer(dc.Device, &bufferInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("create buffer: %w", err)
	}

	bufRequirements := ReadBufferMemoryRequirements(dc.Device, buf)
	memType, err := findMemoryType(dc, bufRequirements.MemoryTypeBits, props)
	if err != nil {
		vk.DestroyBuffer(dc.Device, buf, nil)
		return nil, err
	}

	// Allocate device memory
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  bufRequirements.Size,
		MemoryTypeIndex: memType,
	}
	deviceMem, err := VkAllocateMemory(dc.Device, &allocInfo, nil)
	if err != nil {
		vk.DestroyBuffer(dc.Device, buf, nil)
		return nil, fmt.Errorf("allocate %d bytes of buffer memory: %w", bufRequirements.Size, err)
	}

	// Associate allocated memory with buffer Handle
	err = VkBindBufferMemory(dc.Device, buf, deviceMem, 0)
	if err != nil {
		vk.DestroyBuffer(dc.Device, buf, nil)
		vk.FreeMemory(dc.Device, deviceMem, nil)
		return nil, fmt.Errorf("bind device memory to buffer handle: %w", err)
	}
	layout.Logger().Debug("buffer created", "bytes", size, "allocated", bufRequirements.Size, "memoryType", memType)

	return &Buffer{
		Handle:    buf,
		DeviceMem: deviceMem,
		Usage:     usage,
		dc:        dc,
		size:      size,
		props:     props,
	}, nil
}

func (b *Buffer) Size() uint64 {
	return uint64(b.size)
}

// Write maps the buffer, copies payload over and unmaps it again. Only a "full buffer" worth of payload
// starting at offset = 0 is accepted.
func (b *Buffer) Write(payload []byte) error {
	if b.props&HostVisible != HostVisible {
		return ErrNotHostVisible
	}
	if b.size != vk.DeviceSize(len(payload)) {
		return fmt.Errorf("buffer is %d bytes, payload %d", b.size, len(payload))
	}
	pData, err := VkMapMemory(b.dc.Device, b.DeviceMem, 0, b.size, 0)
	if err != nil {
		return fmt.Errorf("map device memory: %w", err)
	}
	bCopied := vk.Memcopy(pData, payload)
	vk.UnmapMemory(b.dc.Device, b.DeviceMem)
	layout.Logger().Debug("copied to device", "bytes", bCopied)
	return nil
}

// Read maps the buffer and returns a copy of its contents.
func (b *Buffer) Read() ([]byte, error) {
	if b.props&HostVisible != HostVisible {
		return nil, ErrNotHostVisible
	}
	pData, err := VkMapMemory(b.dc.Device, b.DeviceMem, 0, b.size, 0)
	if err != nil {
		return nil, fmt.Errorf("map device memory: %w", err)
	}
	out := make([]byte, b.size)
	copy(out, unsafe.Slice((*byte)(pData), int(b.size)))
	vk.UnmapMemory(b.dc.Device, b.DeviceMem)
	return out, nil
}

func DestroyBuffer(dc *Device, buffer *Buffer) {
	vk.DestroyBuffer(dc.Device, buffer.Handle, nil)
	vk.FreeMemory(dc.Device, buffer.DeviceMem, nil)
}

func findMemoryType(dc *Device, typeFilter uint32, propFlags vk.MemoryPropertyFlags) (uint32, error) {
	for i := uint32(0); i < dc.PdMemoryProps.MemoryTypeCount; i++ {
		ofType := (typeFilter & (1 << i)) > 0
		hasProperties := dc.PdMemoryProps.MemoryTypes[i].PropertyFlags&propFlags == propFlags
		if ofType && hasProperties {
			layout.Logger().Debug("found memory type for buffer", "index", i, "type", toStringMemoryType(dc.PdMemoryProps.MemoryTypes[i]))
			return i, nil
		}
	}
	return 0, fmt.Errorf("no memory type in %032b with flags %032b", typeFilter, propFlags)
}
