package vulkan

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/vkngwrapper/triangle/internal/render"
)

var (
	transformSize = int(unsafe.Sizeof(mgl32.Mat4{}))
	clearColor    = core1_0.ClearValueFloat{0, 0, 0, 1}
)

// resources are the pipeline, buffers and synchronization objects drawn with
// on top of a presentation chain.
type resources struct {
	device *driverLogicalDevice
	extent core1_0.Extent2D

	renderPass          core1_0.RenderPass
	descriptorSetLayout core1_0.DescriptorSetLayout
	pipelineLayout      core1_0.PipelineLayout
	pipeline            core1_0.Pipeline
	framebuffers        []core1_0.Framebuffer

	commandPool    core1_0.CommandPool
	commandBuffers []core1_0.CommandBuffer

	vertexBuffer        core1_0.Buffer
	vertexBufferMemory  core1_0.DeviceMemory
	indexBuffer         core1_0.Buffer
	indexBufferMemory   core1_0.DeviceMemory
	indexCount          int
	uniformBuffer       core1_0.Buffer
	uniformBufferMemory core1_0.DeviceMemory

	descriptorPool core1_0.DescriptorPool
	descriptorSet  core1_0.DescriptorSet

	imageAvailable core1_0.Semaphore
	renderFinished core1_0.Semaphore
	inFlight       core1_0.Fence
}

// bytesToBytecode packs little-endian SPIR-V words. Trailing bytes that do
// not fill a word are dropped.
func bytesToBytecode(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}

// writeData encodes data and copies it into host-visible memory at offset.
func writeData(driver core1_0.DeviceDriver, memory core1_0.DeviceMemory, offset int, data any) error {
	var encoded bytes.Buffer
	if err := binary.Write(&encoded, common.ByteOrder, data); err != nil {
		return err
	}

	mapped, _, err := driver.MapMemory(memory, offset, encoded.Len(), 0)
	if err != nil {
		return err
	}
	copy(unsafe.Slice((*byte)(mapped), encoded.Len()), encoded.Bytes())
	driver.UnmapMemory(memory)
	return nil
}

func createResources(dev *Device, chain *Chain, shaders render.ShaderSources, mesh render.Mesh) (*resources, error) {
	logical, ok := dev.Logical.(*driverLogicalDevice)
	if !ok {
		return nil, errors.AssertionFailedf("render resources need a driver-backed device, got %T", dev.Logical)
	}

	r := &resources{
		device:     logical,
		extent:     chain.Config.Extent,
		indexCount: len(mesh.Indices),
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"render pass", func() error { return r.createRenderPass(chain.Config.Format.Format) }},
		{"descriptor set layout", r.createDescriptorSetLayout},
		{"graphics pipeline", func() error { return r.createGraphicsPipeline(shaders) }},
		{"framebuffers", func() error { return r.createFramebuffers(chain) }},
		{"command pool", func() error { return r.createCommandPool(*dev.Indices.GraphicsFamily) }},
		{"vertex buffer", func() error { return r.createVertexBuffer(mesh.Vertices) }},
		{"index buffer", func() error { return r.createIndexBuffer(mesh.Indices) }},
		{"uniform buffer", r.createUniformBuffer},
		{"descriptor set", r.createDescriptorSet},
		{"command buffers", r.createCommandBuffers},
		{"sync objects", r.createSyncObjects},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			r.destroy()
			return nil, errors.Wrapf(err, "creating %s", step.name)
		}
	}

	return r, nil
}

func (r *resources) createRenderPass(format core1_0.Format) error {
	var err error
	r.renderPass, _, err = r.device.driver.CreateRenderPass(nil, renderPassInfo(format))
	return err
}

func (r *resources) createDescriptorSetLayout() error {
	var err error
	r.descriptorSetLayout, _, err = r.device.driver.CreateDescriptorSetLayout(nil, core1_0.DescriptorSetLayoutCreateInfo{
		Bindings: []core1_0.DescriptorSetLayoutBinding{
			{Binding: 0, DescriptorType: core1_0.DescriptorTypeUniformBuffer, DescriptorCount: 1, StageFlags: core1_0.StageVertex},
		},
	})
	return err
}

func (r *resources) createShaderModule(stage string, code []byte) (core1_0.ShaderModule, error) {
	if len(code)%4 != 0 {
		return core1_0.ShaderModule{}, errors.Errorf("%s shader is not SPIR-V: %d bytes", stage, len(code))
	}

	module, _, err := r.device.driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: bytesToBytecode(code),
	})
	if err != nil {
		return core1_0.ShaderModule{}, errors.Wrapf(err, "%s shader module", stage)
	}
	return module, nil
}

func (r *resources) createGraphicsPipeline(shaders render.ShaderSources) error {
	stages := []struct {
		name string
		flag core1_0.ShaderStageFlags
		code []byte
	}{
		{"vertex", core1_0.StageVertex, shaders.Vertex},
		{"fragment", core1_0.StageFragment, shaders.Fragment},
	}

	info := pipelineInfo(r.extent)
	for _, stage := range stages {
		module, err := r.createShaderModule(stage.name, stage.code)
		if err != nil {
			return err
		}
		defer r.device.driver.DestroyShaderModule(module, nil)

		info.Stages = append(info.Stages, core1_0.PipelineShaderStageCreateInfo{
			Stage:  stage.flag,
			Module: module,
			Name:   "main",
		})
	}

	var err error
	r.pipelineLayout, _, err = r.device.driver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{
		SetLayouts: []core1_0.DescriptorSetLayout{r.descriptorSetLayout},
	})
	if err != nil {
		return err
	}

	info.Layout = r.pipelineLayout
	info.RenderPass = r.renderPass
	pipelines, _, err := r.device.driver.CreateGraphicsPipelines(nil, nil, info)
	if err != nil {
		return err
	}
	r.pipeline = pipelines[0]
	return nil
}

func (r *resources) createFramebuffers(chain *Chain) error {
	for i, view := range chain.Views {
		imageView, ok := view.(core1_0.ImageView)
		if !ok {
			return errors.AssertionFailedf("image view %d is %T", i, view)
		}

		framebuffer, _, err := r.device.driver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass:  r.renderPass,
			Layers:      1,
			Attachments: []core1_0.ImageView{imageView},
			Width:       r.extent.Width,
			Height:      r.extent.Height,
		})
		if err != nil {
			return err
		}

		r.framebuffers = append(r.framebuffers, framebuffer)
	}

	return nil
}

func (r *resources) createCommandPool(graphicsFamily int) error {
	var err error
	r.commandPool, _, err = r.device.driver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: graphicsFamily,
	})
	return err
}

func (r *resources) findMemoryType(typeFilter uint32, properties core1_0.MemoryPropertyFlags) (int, error) {
	physical := r.device.physical
	memory := physical.host.instance.GetPhysicalDeviceMemoryProperties(physical.device)
	if index, ok := memoryTypeIndex(memory.MemoryTypes, typeFilter, properties); ok {
		return index, nil
	}
	return 0, errors.Errorf("no memory type matches filter %#x with properties %v", typeFilter, properties)
}

// createBuffer allocates a host-visible, coherent buffer. The triangle is
// tiny, so there is no staging copy into device-local memory.
func (r *resources) createBuffer(size int, usage core1_0.BufferUsageFlags) (core1_0.Buffer, core1_0.DeviceMemory, error) {
	buffer, _, err := r.device.driver.CreateBuffer(nil, core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return core1_0.Buffer{}, core1_0.DeviceMemory{}, err
	}

	memRequirements := r.device.driver.GetBufferMemoryRequirements(buffer)
	memoryTypeIndex, err := r.findMemoryType(memRequirements.MemoryTypeBits, core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if err != nil {
		return buffer, core1_0.DeviceMemory{}, err
	}

	memory, _, err := r.device.driver.AllocateMemory(nil, core1_0.MemoryAllocateInfo{
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: memoryTypeIndex,
	})
	if err != nil {
		return buffer, core1_0.DeviceMemory{}, err
	}

	_, err = r.device.driver.BindBufferMemory(buffer, memory, 0)
	return buffer, memory, err
}

func (r *resources) createVertexBuffer(vertices []render.Vertex) error {
	var err error
	r.vertexBuffer, r.vertexBufferMemory, err = r.createBuffer(binary.Size(vertices), core1_0.BufferUsageVertexBuffer)
	if err != nil {
		return err
	}

	return writeData(r.device.driver, r.vertexBufferMemory, 0, vertices)
}

func (r *resources) createIndexBuffer(indices []uint32) error {
	var err error
	r.indexBuffer, r.indexBufferMemory, err = r.createBuffer(binary.Size(indices), core1_0.BufferUsageIndexBuffer)
	if err != nil {
		return err
	}

	return writeData(r.device.driver, r.indexBufferMemory, 0, indices)
}

func (r *resources) createUniformBuffer() error {
	var err error
	r.uniformBuffer, r.uniformBufferMemory, err = r.createBuffer(transformSize, core1_0.BufferUsageUniformBuffer)
	return err
}

func (r *resources) createDescriptorSet() error {
	var err error
	r.descriptorPool, _, err = r.device.driver.CreateDescriptorPool(nil, core1_0.DescriptorPoolCreateInfo{
		MaxSets:   1,
		PoolSizes: []core1_0.DescriptorPoolSize{{Type: core1_0.DescriptorTypeUniformBuffer, DescriptorCount: 1}},
	})
	if err != nil {
		return err
	}

	sets, _, err := r.device.driver.AllocateDescriptorSets(core1_0.DescriptorSetAllocateInfo{
		DescriptorPool: r.descriptorPool,
		SetLayouts:     []core1_0.DescriptorSetLayout{r.descriptorSetLayout},
	})
	if err != nil {
		return err
	}
	r.descriptorSet = sets[0]

	return r.device.driver.UpdateDescriptorSets([]core1_0.WriteDescriptorSet{{
		DstSet:         r.descriptorSet,
		DescriptorType: core1_0.DescriptorTypeUniformBuffer,
		BufferInfo:     []core1_0.DescriptorBufferInfo{{Buffer: r.uniformBuffer, Range: transformSize}},
	}}, nil)
}

func (r *resources) createCommandBuffers() error {
	buffers, _, err := r.device.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        r.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: len(r.framebuffers),
	})
	if err != nil {
		return err
	}
	r.commandBuffers = buffers

	for bufferIdx, buffer := range buffers {
		_, err = r.device.driver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
		if err != nil {
			return err
		}

		err = r.device.driver.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline, core1_0.RenderPassBeginInfo{
			RenderPass:  r.renderPass,
			Framebuffer: r.framebuffers[bufferIdx],
			RenderArea:  core1_0.Rect2D{Extent: r.extent},
			ClearValues: []core1_0.ClearValue{clearColor},
		})
		if err != nil {
			return err
		}

		r.device.driver.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, r.pipeline)
		r.device.driver.CmdBindVertexBuffers(buffer, 0, []core1_0.Buffer{r.vertexBuffer}, []int{0})
		r.device.driver.CmdBindIndexBuffer(buffer, r.indexBuffer, 0, core1_0.IndexTypeUInt32)
		r.device.driver.CmdBindDescriptorSets(buffer, core1_0.PipelineBindPointGraphics, r.pipelineLayout, 0, []core1_0.DescriptorSet{r.descriptorSet}, nil)
		r.device.driver.CmdDrawIndexed(buffer, r.indexCount, 1, 0, 0, 0)
		r.device.driver.CmdEndRenderPass(buffer)

		_, err = r.device.driver.EndCommandBuffer(buffer)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *resources) createSyncObjects() error {
	var err error
	r.imageAvailable, _, err = r.device.driver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return err
	}

	r.renderFinished, _, err = r.device.driver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return err
	}

	r.inFlight, _, err = r.device.driver.CreateFence(nil, core1_0.FenceCreateInfo{})
	return err
}

func (r *resources) writeTransform(transform mgl32.Mat4) error {
	return writeData(r.device.driver, r.uniformBufferMemory, 0, transform)
}

// destroy releases everything in reverse creation order. It is safe on a
// partially created set.
func (r *resources) destroy() {
	driver := r.device.driver

	if r.inFlight.Initialized() {
		driver.DestroyFence(r.inFlight, nil)
	}
	if r.renderFinished.Initialized() {
		driver.DestroySemaphore(r.renderFinished, nil)
	}
	if r.imageAvailable.Initialized() {
		driver.DestroySemaphore(r.imageAvailable, nil)
	}

	if len(r.commandBuffers) > 0 {
		driver.FreeCommandBuffers(r.commandBuffers...)
		r.commandBuffers = nil
	}

	if r.descriptorPool.Initialized() {
		driver.DestroyDescriptorPool(r.descriptorPool, nil)
	}

	if r.uniformBuffer.Initialized() {
		driver.DestroyBuffer(r.uniformBuffer, nil)
	}
	if r.uniformBufferMemory.Initialized() {
		driver.FreeMemory(r.uniformBufferMemory, nil)
	}
	if r.indexBuffer.Initialized() {
		driver.DestroyBuffer(r.indexBuffer, nil)
	}
	if r.indexBufferMemory.Initialized() {
		driver.FreeMemory(r.indexBufferMemory, nil)
	}
	if r.vertexBuffer.Initialized() {
		driver.DestroyBuffer(r.vertexBuffer, nil)
	}
	if r.vertexBufferMemory.Initialized() {
		driver.FreeMemory(r.vertexBufferMemory, nil)
	}

	if r.commandPool.Initialized() {
		driver.DestroyCommandPool(r.commandPool, nil)
	}

	for _, framebuffer := range r.framebuffers {
		driver.DestroyFramebuffer(framebuffer, nil)
	}
	r.framebuffers = nil

	if r.pipeline.Initialized() {
		driver.DestroyPipeline(r.pipeline, nil)
	}
	if r.pipelineLayout.Initialized() {
		driver.DestroyPipelineLayout(r.pipelineLayout, nil)
	}
	if r.descriptorSetLayout.Initialized() {
		driver.DestroyDescriptorSetLayout(r.descriptorSetLayout, nil)
	}
	if r.renderPass.Initialized() {
		driver.DestroyRenderPass(r.renderPass, nil)
	}
}
