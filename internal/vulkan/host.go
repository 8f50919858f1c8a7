package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// Handle is an opaque driver object such as a queue, image or image view.
type Handle interface {
	Initialized() bool
}

// Host is a live instance paired with the surface being presented to.
type Host interface {
	PhysicalDevices() ([]PhysicalDevice, error)
}

// DeviceProperties is the subset of physical device properties used for
// selection and logging.
type DeviceProperties struct {
	Name     string
	Type     core1_0.PhysicalDeviceType
	VendorID uint32
	DeviceID uint32
}

// PhysicalDevice is one enumerated GPU. Surface queries are answered for the
// surface of the Host that enumerated it.
type PhysicalDevice interface {
	Properties() (DeviceProperties, error)
	QueueFamilyProperties() []core1_0.QueueFamilyProperties
	Extensions() (map[string]bool, error)

	SurfaceSupport(queueFamilyIndex int) (bool, error)
	SurfaceCapabilities() (*khr_surface.SurfaceCapabilities, error)
	SurfaceFormats() ([]khr_surface.SurfaceFormat, error)
	SurfacePresentModes() ([]khr_surface.PresentMode, error)

	CreateDevice(info DeviceInfo) (LogicalDevice, error)
}

// DeviceInfo is a logical device creation request.
type DeviceInfo struct {
	// QueueFamilies holds distinct family indices; one queue is created in
	// each at QueuePriority.
	QueueFamilies []int
	QueuePriority float32
	Extensions    []string
}

// SwapchainInfo carries the negotiated presentation parameters. The surface
// is implied by the device's host.
type SwapchainInfo struct {
	MinImageCount      int
	Format             khr_surface.SurfaceFormat
	Extent             core1_0.Extent2D
	PresentMode        khr_surface.PresentMode
	PreTransform       khr_surface.SurfaceTransformFlags
	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
}

// LogicalDevice is a created device together with the presentation chain
// operations the builder needs.
type LogicalDevice interface {
	Queue(queueFamilyIndex int) Handle

	CreateSwapchain(info SwapchainInfo) (Swapchain, error)
	CreateImageView(image Handle, format core1_0.Format) (Handle, error)
	DestroyImageView(view Handle)

	WaitIdle() error
	Destroy()
}

// Swapchain is a created presentation chain.
type Swapchain interface {
	Images() ([]Handle, error)
	Destroy()
}
