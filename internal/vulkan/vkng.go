package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// driverHost answers Host queries from a live instance and surface.
type driverHost struct {
	instance  core1_0.CoreInstanceDriver
	surfaceEx khr_surface.ExtensionDriver
	surface   khr_surface.Surface
}

func (h *driverHost) PhysicalDevices() ([]PhysicalDevice, error) {
	devices, _, err := h.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	physicalDevices := make([]PhysicalDevice, 0, len(devices))
	for _, device := range devices {
		physicalDevices = append(physicalDevices, &driverPhysicalDevice{host: h, device: device})
	}
	return physicalDevices, nil
}

type driverPhysicalDevice struct {
	host   *driverHost
	device core1_0.PhysicalDevice
}

func (d *driverPhysicalDevice) Properties() (DeviceProperties, error) {
	properties, err := d.host.instance.GetPhysicalDeviceProperties(d.device)
	if err != nil {
		return DeviceProperties{}, err
	}

	return DeviceProperties{
		Name:     properties.DriverName,
		Type:     properties.DriverType,
		VendorID: properties.VendorID,
		DeviceID: properties.DeviceID,
	}, nil
}

func (d *driverPhysicalDevice) QueueFamilyProperties() []core1_0.QueueFamilyProperties {
	return d.host.instance.GetPhysicalDeviceQueueFamilyProperties(d.device)
}

func (d *driverPhysicalDevice) Extensions() (map[string]bool, error) {
	extensions, _, err := d.host.instance.EnumerateDeviceExtensionProperties(d.device)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(extensions))
	for name := range extensions {
		names[name] = true
	}
	return names, nil
}

func (d *driverPhysicalDevice) SurfaceSupport(queueFamilyIndex int) (bool, error) {
	supported, _, err := d.host.surfaceEx.GetPhysicalDeviceSurfaceSupport(d.host.surface, d.device, queueFamilyIndex)
	return supported, err
}

func (d *driverPhysicalDevice) SurfaceCapabilities() (*khr_surface.SurfaceCapabilities, error) {
	capabilities, _, err := d.host.surfaceEx.GetPhysicalDeviceSurfaceCapabilities(d.host.surface, d.device)
	return capabilities, err
}

func (d *driverPhysicalDevice) SurfaceFormats() ([]khr_surface.SurfaceFormat, error) {
	formats, _, err := d.host.surfaceEx.GetPhysicalDeviceSurfaceFormats(d.host.surface, d.device)
	return formats, err
}

func (d *driverPhysicalDevice) SurfacePresentModes() ([]khr_surface.PresentMode, error) {
	modes, _, err := d.host.surfaceEx.GetPhysicalDeviceSurfacePresentModes(d.host.surface, d.device)
	return modes, err
}

func (d *driverPhysicalDevice) CreateDevice(info DeviceInfo) (LogicalDevice, error) {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queueFamily := range info.QueueFamilies {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{info.QueuePriority},
		})
	}

	driver, _, err := d.host.instance.CreateDevice(d.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: info.Extensions,
	})
	if err != nil {
		return nil, err
	}

	return &driverLogicalDevice{
		physical:    d,
		driver:      driver,
		swapchainEx: khr_swapchain.CreateExtensionDriverFromCoreDriver(driver),
	}, nil
}

// driverLogicalDevice exposes the device and swapchain drivers to the render
// resources, which need far more of the API than LogicalDevice covers.
type driverLogicalDevice struct {
	physical    *driverPhysicalDevice
	driver      core1_0.CoreDeviceDriver
	swapchainEx khr_swapchain.ExtensionDriver
}

func (d *driverLogicalDevice) Queue(queueFamilyIndex int) Handle {
	return d.driver.GetQueue(queueFamilyIndex, 0)
}

func (d *driverLogicalDevice) CreateSwapchain(info SwapchainInfo) (Swapchain, error) {
	swapchain, _, err := d.swapchainEx.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: d.physical.host.surface,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      info.Format.Format,
		ImageColorSpace:  info.Format.ColorSpace,
		ImageExtent:      info.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   info.SharingMode,
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   info.PreTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    info.PresentMode,
		Clipped:        true,
	})
	if err != nil {
		return nil, err
	}

	return &driverSwapchain{device: d, swapchain: swapchain}, nil
}

func (d *driverLogicalDevice) CreateImageView(image Handle, format core1_0.Format) (Handle, error) {
	img, ok := image.(core1_0.Image)
	if !ok {
		return nil, errors.AssertionFailedf("image view requested for %T", image)
	}

	view, _, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    img,
		ViewType: core1_0.ImageViewType2D,
		Format:   format,
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (d *driverLogicalDevice) DestroyImageView(view Handle) {
	if imageView, ok := view.(core1_0.ImageView); ok && imageView.Initialized() {
		d.driver.DestroyImageView(imageView, nil)
	}
}

func (d *driverLogicalDevice) WaitIdle() error {
	_, err := d.driver.DeviceWaitIdle()
	return err
}

func (d *driverLogicalDevice) Destroy() {
	d.driver.DestroyDevice(nil)
}

type driverSwapchain struct {
	device    *driverLogicalDevice
	swapchain khr_swapchain.Swapchain
}

func (s *driverSwapchain) Images() ([]Handle, error) {
	images, _, err := s.device.swapchainEx.GetSwapchainImages(s.swapchain)
	if err != nil {
		return nil, err
	}

	handles := make([]Handle, 0, len(images))
	for _, image := range images {
		handles = append(handles, image)
	}
	return handles, nil
}

func (s *driverSwapchain) Destroy() {
	if s.swapchain.Initialized() {
		s.device.swapchainEx.DestroySwapchain(s.swapchain, nil)
		s.swapchain = khr_swapchain.Swapchain{}
	}
}
