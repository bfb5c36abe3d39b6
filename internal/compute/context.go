// Package compute owns the WebGPU device handle and the buffer, pipeline
// and command-submission lifecycle used by the kernel engines.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package compute

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gpublas/gpublas/internal/logger"
)

// Context owns the device handle shared by all invocations. It is created
// once via Acquire, read-only afterwards. Buffers created through it are
// owned by a single invocation and never outlive one logical operation.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	info *wgpu.AdapterInfoGo

	// Shader and pipeline cache, keyed by kernel name.
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	log logger.Logger
}

var (
	acquireOnce sync.Once
	acquireCtx  *Context
	acquireErr  error
)

// Acquire returns the process-wide compute context, initializing it on the
// first call. Initialization failure is memoized: every later call observes
// the same error, there is no partial-success state.
func Acquire() (*Context, error) {
	acquireOnce.Do(func() {
		acquireCtx, acquireErr = newContext()
	})
	return acquireCtx, acquireErr
}

// Available reports whether a compatible WebGPU device can be acquired.
func Available() bool {
	_, err := Acquire()
	return err == nil
}

func newContext() (ctx *Context, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("%w: native library not available: %v", ErrUnavailable, r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, instanceErr)
	}

	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, adapterErr)
	}

	info, infoErr := adapter.GetInfo()
	if infoErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, infoErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: no device queue", ErrUnavailable)
	}

	c := &Context{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		info:      info,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		log:       logger.Default(),
	}
	c.log.Info("compute: device acquired", "adapter", info.Device, "vendor", info.Vendor)
	return c, nil
}

// SetLogger replaces the context logger.
func (c *Context) SetLogger(log logger.Logger) {
	c.log = log
}

// Logger returns the context logger.
func (c *Context) Logger() logger.Logger {
	return c.log
}

// AdapterInfo returns information about the GPU adapter.
func (c *Context) AdapterInfo() *wgpu.AdapterInfoGo {
	return c.info
}

// Name returns a human-readable device description.
func (c *Context) Name() string {
	return fmt.Sprintf("WebGPU (%s %s)", c.info.Device, c.info.Vendor)
}

// Pipeline returns the cached compute pipeline for a kernel, compiling the
// WGSL source on first use. The entry point is always "main".
func (c *Context) Pipeline(name, code string) *wgpu.ComputePipeline {
	c.mu.RLock()
	if pipeline, exists := c.pipelines[name]; exists {
		c.mu.RUnlock()
		return pipeline
	}
	c.mu.RUnlock()

	shader := c.compileShader(name, code)
	pipeline := c.device.CreateComputePipelineSimple(nil, shader, "main")

	c.mu.Lock()
	c.pipelines[name] = pipeline
	c.mu.Unlock()

	return pipeline
}

func (c *Context) compileShader(name, code string) *wgpu.ShaderModule {
	c.mu.RLock()
	if shader, exists := c.shaders[name]; exists {
		c.mu.RUnlock()
		return shader
	}
	c.mu.RUnlock()

	shader := c.device.CreateShaderModuleWGSL(code)

	c.mu.Lock()
	c.shaders[name] = shader
	c.mu.Unlock()

	return shader
}

// NewInputBuffer creates a storage buffer initialized with host data (copy-in).
func (c *Context) NewInputBuffer(data []byte) *wgpu.Buffer {
	return c.newMappedBuffer(data, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
}

// NewOutputBuffer creates a zero-initialized storage buffer of the given byte
// size, usable as a kernel output and as a readback source. Size is rounded
// up to a 4-byte boundary.
func (c *Context) NewOutputBuffer(size uint64) *wgpu.Buffer {
	return c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  (size + 3) &^ 3,
	})
}

// NewInOutBuffer creates a storage buffer initialized with host data that a
// kernel may mutate in place and that can be read back afterwards.
func (c *Context) NewInOutBuffer(data []byte) *wgpu.Buffer {
	return c.newMappedBuffer(data, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
}

func (c *Context) newMappedBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := (uint64(len(data)) + 3) &^ 3

	buffer := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// NewUniformBuffer creates a uniform buffer from a packed parameter block.
// Uniform bindings require 16-byte aligned sizes.
func (c *Context) NewUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// BindGroup assembles a bind group against binding 0..len(buffers)-1 of the
// pipeline's group 0, binding each buffer at offset 0 for its full size.
func (c *Context) BindGroup(pipeline *wgpu.ComputePipeline, buffers []*wgpu.Buffer, sizes []uint64) *wgpu.BindGroup {
	entries := make([]wgpu.BindGroupEntry, len(buffers))
	for i, buf := range buffers {
		entries[i] = wgpu.BufferBindingEntry(uint32(i), buf, 0, sizes[i])
	}
	layout := pipeline.GetBindGroupLayout(0)
	return c.device.CreateBindGroupSimple(layout, entries)
}

// ReadBack copies size bytes from a GPU buffer into host memory. Uses a
// staging buffer since storage buffers cannot be mapped directly. The staging
// buffer is released before return on every path.
func (c *Context) ReadBack(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  (size + 3) &^ 3,
	})
	defer staging.Release()

	encoder := c.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, (size+3)&^3)
	cmdBuffer := encoder.Finish(nil)
	c.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(c.device, wgpu.MapModeRead, 0, (size+3)&^3); err != nil {
		return nil, &DeviceError{Op: "readback", Err: err}
	}

	mappedPtr := staging.GetMappedRange(0, (size+3)&^3)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}
