package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/triangle/internal/logging"
	"github.com/vkngwrapper/triangle/internal/platform"
	"github.com/vkngwrapper/triangle/internal/render"
)

// Shader stage files consumed by the Vulkan backend, relative to the shader
// directory.
const (
	VertexShaderPath   = "triangle.vk.vert.spv"
	FragmentShaderPath = "triangle.vk.frag.spv"
)

// clipCorrection maps the GL-style projection onto Vulkan's downward Y axis.
var clipCorrection = mgl32.Scale3D(1, -1, 1)

// Options configures instance creation.
type Options struct {
	ApplicationName string
	Validation      bool
}

// Backend renders through Vulkan into an SDL window.
type Backend struct {
	options Options

	instance  *instance
	device    *Device
	chain     *Chain
	resources *resources

	graphicsQueue core1_0.Queue
	presentQueue  core1_0.Queue
}

var _ render.Backend = (*Backend)(nil)

func NewBackend(options Options) *Backend {
	return &Backend{options: options}
}

func (b *Backend) Name() string { return "vulkan" }

func (b *Backend) API() platform.API { return platform.APIVulkan }

func (b *Backend) ShaderPaths() (vertex, fragment string) {
	return VertexShaderPath, FragmentShaderPath
}

// Init brings up the instance, surface, device, presentation chain and
// pipeline for window. On failure everything created so far is destroyed.
func (b *Backend) Init(window platform.Window, shaders render.ShaderSources, mesh render.Mesh) error {
	if b.instance != nil {
		return errors.AssertionFailedf("vulkan backend initialized twice")
	}

	surface, err := surfaceProviderFor(window)
	if err != nil {
		return err
	}

	if err := b.init(surface, window, shaders, mesh); err != nil {
		b.Destroy()
		return err
	}
	return nil
}

func (b *Backend) init(surface surfaceProvider, window platform.Window, shaders render.ShaderSources, mesh render.Mesh) error {
	var err error
	b.instance, err = createInstance(surface, b.options.ApplicationName, b.options.Validation)
	if err != nil {
		return err
	}

	b.device, err = NegotiateDevice(b.instance.host())
	if err != nil {
		return err
	}

	var ok bool
	if b.graphicsQueue, ok = b.device.GraphicsQueue.(core1_0.Queue); !ok {
		return errors.AssertionFailedf("graphics queue is %T", b.device.GraphicsQueue)
	}
	if b.presentQueue, ok = b.device.PresentQueue.(core1_0.Queue); !ok {
		return errors.AssertionFailedf("present queue is %T", b.device.PresentQueue)
	}

	width, height := window.FramebufferSize()
	b.chain, err = BuildChain(b.device, width, height)
	if err != nil {
		return err
	}

	b.resources, err = createResources(b.device, b.chain, shaders, mesh)
	return err
}

// DrawFrame acquires a chain image, uploads the transform, submits the
// pre-recorded commands for that image and presents it. It returns once the
// frame has been presented.
func (b *Backend) DrawFrame(frame render.Frame) error {
	r := b.resources
	if r == nil {
		return errors.AssertionFailedf("vulkan backend is not initialized")
	}
	swapchain := b.chain.Swapchain.(*driverSwapchain).swapchain
	swapchainExtension := r.device.swapchainEx
	driver := r.device.driver

	imageIndex, _, err := swapchainExtension.AcquireNextImage(swapchain, common.NoTimeout, &r.imageAvailable, nil)
	if err != nil {
		return errors.Wrap(err, "acquiring chain image")
	}

	if err := r.writeTransform(clipCorrection.Mul4(frame.Transform)); err != nil {
		return errors.Wrap(err, "writing transform")
	}

	_, err = driver.QueueSubmit(b.graphicsQueue, &r.inFlight,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{r.imageAvailable},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{r.commandBuffers[imageIndex]},
			SignalSemaphores: []core1_0.Semaphore{r.renderFinished},
		},
	)
	if err != nil {
		return errors.Wrap(err, "submitting draw")
	}

	res, err := swapchainExtension.QueuePresent(b.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{r.renderFinished},
		Swapchains:     []khr_swapchain.Swapchain{swapchain},
		ImageIndices:   []int{imageIndex},
	})
	if err != nil {
		return errors.Wrap(err, "presenting")
	}
	if res == khr_swapchain.VKSuboptimal {
		logging.Logger().Debug("presentation chain is suboptimal")
	}

	if _, err := driver.WaitForFences(true, common.NoTimeout, r.inFlight); err != nil {
		return errors.Wrap(err, "waiting for draw")
	}
	if _, err := driver.ResetFences(r.inFlight); err != nil {
		return errors.Wrap(err, "resetting fence")
	}
	if _, err := driver.QueueWaitIdle(b.presentQueue); err != nil {
		return errors.Wrap(err, "waiting for present")
	}

	return nil
}

// Destroy waits for the device to go idle and releases render resources,
// chain, device, surface, messenger and instance in that order. It is safe
// to call more than once and after a failed Init.
func (b *Backend) Destroy() {
	if b.device != nil {
		if err := b.device.Logical.WaitIdle(); err != nil {
			logging.Logger().Warn("waiting for device idle", "error", err)
		}
	}

	if b.resources != nil {
		b.resources.destroy()
		b.resources = nil
	}

	b.chain.Destroy()
	b.chain = nil

	b.device.Destroy()
	b.device = nil

	if b.instance != nil {
		b.instance.destroy()
		b.instance = nil
	}
}
