package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/triangle/internal/logging"
)

// undefinedExtent marks a surface whose size is chosen by the application.
const undefinedExtent = 0xFFFFFFFF

// SupportDetails is what a surface supports on one physical device.
type SupportDetails struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// QuerySupport reads surface capabilities, formats and present modes.
func QuerySupport(device PhysicalDevice) (SupportDetails, error) {
	var details SupportDetails
	var err error

	details.Capabilities, err = device.SurfaceCapabilities()
	if err != nil {
		return details, errors.Wrap(err, "querying surface capabilities")
	}

	details.Formats, err = device.SurfaceFormats()
	if err != nil {
		return details, errors.Wrap(err, "querying surface formats")
	}

	details.PresentModes, err = device.SurfacePresentModes()
	if err != nil {
		return details, errors.Wrap(err, "querying surface present modes")
	}

	return details, nil
}

// ChooseSurfaceFormat prefers B8G8R8A8 sRGB with the sRGB non-linear color
// space and otherwise takes the first listed format. formats must not be empty.
func ChooseSurfaceFormat(formats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range formats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	return formats[0]
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every
// implementation supports.
func ChoosePresentMode(modes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, mode := range modes {
		if mode == khr_surface.PresentModeMailbox {
			return mode
		}
	}

	return khr_surface.PresentModeFIFO
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ChooseExtent returns the surface's current extent when it is defined, and
// otherwise the framebuffer size clamped to the supported range.
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, width, height int) core1_0.Extent2D {
	if uint32(capabilities.CurrentExtent.Width) != undefinedExtent {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum, capped at the
// maximum when the surface reports one.
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// PresentationConfig is the negotiated shape of a presentation chain.
type PresentationConfig struct {
	Format      khr_surface.SurfaceFormat
	PresentMode khr_surface.PresentMode
	Extent      core1_0.Extent2D
	ImageCount  int
	Transform   khr_surface.SurfaceTransformFlags

	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
}

// Negotiate applies the format, present mode, extent and image count
// policies to details for a framebuffer of the given size.
func Negotiate(details SupportDetails, indices QueueFamilyIndices, width, height int) PresentationConfig {
	config := PresentationConfig{
		Format:      ChooseSurfaceFormat(details.Formats),
		PresentMode: ChoosePresentMode(details.PresentModes),
		Extent:      ChooseExtent(details.Capabilities, width, height),
		ImageCount:  ChooseImageCount(details.Capabilities),
		Transform:   details.Capabilities.CurrentTransform,
		SharingMode: core1_0.SharingModeExclusive,
	}

	if !indices.Shared() {
		config.SharingMode = core1_0.SharingModeConcurrent
		config.QueueFamilyIndices = indices.Unique()
	}

	return config
}

// Chain is a built presentation chain: the swapchain, its images and one
// color view per image.
type Chain struct {
	Config    PresentationConfig
	Swapchain Swapchain
	Images    []Handle
	Views     []Handle

	device LogicalDevice
}

// BuildChain negotiates and creates the presentation chain for device at
// the given framebuffer size. Anything created before a failure is released.
func BuildChain(device *Device, width, height int) (*Chain, error) {
	details, err := QuerySupport(device.Physical)
	if err != nil {
		return nil, mark(err, ErrPresentationChainCreationFailed, "%s", device.Properties.Name)
	}

	config := Negotiate(details, device.Indices, width, height)

	swapchain, err := device.Logical.CreateSwapchain(SwapchainInfo{
		MinImageCount:      config.ImageCount,
		Format:             config.Format,
		Extent:             config.Extent,
		PresentMode:        config.PresentMode,
		PreTransform:       config.Transform,
		SharingMode:        config.SharingMode,
		QueueFamilyIndices: config.QueueFamilyIndices,
	})
	if err != nil {
		return nil, mark(err, ErrPresentationChainCreationFailed, "creating swapchain")
	}

	chain := &Chain{
		Config:    config,
		Swapchain: swapchain,
		device:    device.Logical,
	}

	chain.Images, err = swapchain.Images()
	if err != nil {
		chain.Destroy()
		return nil, mark(err, ErrPresentationChainCreationFailed, "retrieving swapchain images")
	}

	for i, image := range chain.Images {
		view, err := device.Logical.CreateImageView(image, config.Format.Format)
		if err != nil {
			chain.Destroy()
			return nil, mark(err, ErrImageViewCreationFailed, "image %d", i)
		}
		chain.Views = append(chain.Views, view)
	}

	logging.Logger().Info("created presentation chain",
		"format", config.Format.Format,
		"presentMode", config.PresentMode,
		"width", config.Extent.Width,
		"height", config.Extent.Height,
		"images", len(chain.Images))
	return chain, nil
}

// Destroy releases the image views, then the swapchain. Images belong to
// the swapchain and are not destroyed individually.
func (c *Chain) Destroy() {
	if c == nil {
		return
	}

	for _, view := range c.Views {
		c.device.DestroyImageView(view)
	}
	c.Views = nil
	c.Images = nil

	if c.Swapchain != nil {
		c.Swapchain.Destroy()
		c.Swapchain = nil
	}
}
