package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// events records driver calls across every fake so tests can assert
// ordering.
type events struct {
	calls []string
}

func (e *events) add(call string) {
	e.calls = append(e.calls, call)
}

type fakeHandle struct {
	name string
}

func (h *fakeHandle) Initialized() bool { return h != nil }

type fakeHost struct {
	devices []PhysicalDevice
	err     error
}

func (h *fakeHost) PhysicalDevices() ([]PhysicalDevice, error) {
	return h.devices, h.err
}

type fakePhysicalDevice struct {
	log *events

	properties    DeviceProperties
	propertiesErr error

	families   []core1_0.QueueFamilyProperties
	present    map[int]bool
	presentErr error

	extensions    map[string]bool
	extensionsErr error

	capabilities *khr_surface.SurfaceCapabilities
	formats      []khr_surface.SurfaceFormat
	modes        []khr_surface.PresentMode
	supportErr   error

	createErr error
	logical   *fakeLogicalDevice

	created      []DeviceInfo
	presentCalls []int
}

func discreteDevice(log *events, name string) *fakePhysicalDevice {
	return &fakePhysicalDevice{
		log:        log,
		properties: DeviceProperties{Name: name, Type: core1_0.PhysicalDeviceTypeDiscreteGPU},
		families: []core1_0.QueueFamilyProperties{
			{QueueFlags: core1_0.QueueGraphics},
		},
		present:    map[int]bool{0: true},
		extensions: map[string]bool{khr_swapchain.ExtensionName: true},
		capabilities: &khr_surface.SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  core1_0.Extent2D{Width: 800, Height: 600},
			MinImageExtent: core1_0.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 4096},
		},
		formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		modes:   []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
		logical: &fakeLogicalDevice{log: log, images: 3},
	}
}

func integratedDevice(log *events, name string) *fakePhysicalDevice {
	d := discreteDevice(log, name)
	d.properties.Type = core1_0.PhysicalDeviceTypeIntegratedGPU
	return d
}

func (d *fakePhysicalDevice) Properties() (DeviceProperties, error) {
	return d.properties, d.propertiesErr
}

func (d *fakePhysicalDevice) QueueFamilyProperties() []core1_0.QueueFamilyProperties {
	return d.families
}

func (d *fakePhysicalDevice) Extensions() (map[string]bool, error) {
	return d.extensions, d.extensionsErr
}

func (d *fakePhysicalDevice) SurfaceSupport(queueFamilyIndex int) (bool, error) {
	d.presentCalls = append(d.presentCalls, queueFamilyIndex)
	return d.present[queueFamilyIndex], d.presentErr
}

func (d *fakePhysicalDevice) SurfaceCapabilities() (*khr_surface.SurfaceCapabilities, error) {
	return d.capabilities, d.supportErr
}

func (d *fakePhysicalDevice) SurfaceFormats() ([]khr_surface.SurfaceFormat, error) {
	return d.formats, nil
}

func (d *fakePhysicalDevice) SurfacePresentModes() ([]khr_surface.PresentMode, error) {
	return d.modes, nil
}

func (d *fakePhysicalDevice) CreateDevice(info DeviceInfo) (LogicalDevice, error) {
	d.created = append(d.created, info)
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.log.add("CreateDevice " + d.properties.Name)
	return d.logical, nil
}

type fakeLogicalDevice struct {
	log *events

	images       int
	imagesErr    error
	swapchainErr error
	viewErrAt    int

	swapchains []SwapchainInfo
	views      int
	destroyed  bool
}

func (d *fakeLogicalDevice) Queue(queueFamilyIndex int) Handle {
	return &fakeHandle{name: "queue"}
}

func (d *fakeLogicalDevice) CreateSwapchain(info SwapchainInfo) (Swapchain, error) {
	d.swapchains = append(d.swapchains, info)
	if d.swapchainErr != nil {
		return nil, d.swapchainErr
	}
	d.log.add("CreateSwapchain")
	return &fakeSwapchain{device: d}, nil
}

func (d *fakeLogicalDevice) CreateImageView(image Handle, format core1_0.Format) (Handle, error) {
	if d.viewErrAt > 0 && d.views+1 == d.viewErrAt {
		return nil, errors.New("out of host memory")
	}
	d.views++
	d.log.add("CreateImageView")
	return &fakeHandle{name: "view"}, nil
}

func (d *fakeLogicalDevice) DestroyImageView(view Handle) {
	d.views--
	d.log.add("DestroyImageView")
}

func (d *fakeLogicalDevice) WaitIdle() error { return nil }

func (d *fakeLogicalDevice) Destroy() {
	d.destroyed = true
	d.log.add("DestroyDevice")
}

type fakeSwapchain struct {
	device    *fakeLogicalDevice
	destroyed bool
}

func (s *fakeSwapchain) Images() ([]Handle, error) {
	if s.device.imagesErr != nil {
		return nil, s.device.imagesErr
	}
	images := make([]Handle, s.device.images)
	for i := range images {
		images[i] = &fakeHandle{name: "image"}
	}
	return images, nil
}

func (s *fakeSwapchain) Destroy() {
	s.destroyed = true
	s.device.log.add("DestroySwapchain")
}
