package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/triangle/internal/logging"
)

// DeviceExtensions are the extensions a device must support to be used.
var DeviceExtensions = []string{khr_swapchain.ExtensionName}

const queuePriority = float32(1.0)

// QueueFamilyIndices holds the resolved graphics and present families of one
// physical device against one surface. Either may be nil when unresolved.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

// IsComplete reports whether both roles are resolved.
func (i QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Shared reports whether graphics and present resolve to the same family.
func (i QueueFamilyIndices) Shared() bool {
	return i.IsComplete() && *i.GraphicsFamily == *i.PresentFamily
}

// Unique returns the distinct resolved families, graphics first.
func (i QueueFamilyIndices) Unique() []int {
	var families []int
	if i.GraphicsFamily != nil {
		families = append(families, *i.GraphicsFamily)
	}
	if i.PresentFamily != nil && (i.GraphicsFamily == nil || *i.PresentFamily != *i.GraphicsFamily) {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// Device is the negotiated logical device and its queues.
type Device struct {
	Physical   PhysicalDevice
	Properties DeviceProperties
	Logical    LogicalDevice
	Indices    QueueFamilyIndices

	GraphicsQueue Handle
	PresentQueue  Handle
}

// Destroy destroys the logical device. The presentation chain must already
// be gone.
func (d *Device) Destroy() {
	if d == nil || d.Logical == nil {
		return
	}
	d.Logical.Destroy()
	d.Logical = nil
}

func isDeviceSuitable(properties DeviceProperties) bool {
	return properties.Type == core1_0.PhysicalDeviceTypeDiscreteGPU
}

// SelectPhysicalDevice returns the first discrete GPU in enumeration order.
// Devices whose properties cannot be read are skipped.
func SelectPhysicalDevice(devices []PhysicalDevice) (PhysicalDevice, DeviceProperties, error) {
	if len(devices) == 0 {
		return nil, DeviceProperties{}, ErrNoDeviceFound
	}

	for index, device := range devices {
		properties, err := device.Properties()
		if err != nil {
			logging.Logger().Warn("could not get physical device properties", "index", index, "error", err)
			continue
		}

		logging.Logger().Debug("physical device", "index", index, "name", properties.Name, "type", properties.Type)
		if isDeviceSuitable(properties) {
			return device, properties, nil
		}
	}

	return nil, DeviceProperties{}, errors.Wrapf(ErrNoSuitableDevice, "none of %d devices is a discrete gpu", len(devices))
}

// FindQueueFamilies resolves the first graphics-capable family and the first
// family that can present to the host surface, stopping as soon as both are
// known. The error is only for failed support queries; unresolved roles are
// reported through IsComplete.
func FindQueueFamilies(device PhysicalDevice) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for queueFamilyIdx, queueFamily := range device.QueueFamilyProperties() {
		if indices.PresentFamily == nil {
			supported, err := device.SurfaceSupport(queueFamilyIdx)
			if err != nil {
				return indices, errors.Wrapf(err, "querying present support of queue family %d", queueFamilyIdx)
			}
			if supported {
				presentIdx := queueFamilyIdx
				indices.PresentFamily = &presentIdx
			}
		}

		if indices.GraphicsFamily == nil && (queueFamily.QueueFlags&core1_0.QueueGraphics) != 0 {
			graphicsIdx := queueFamilyIdx
			indices.GraphicsFamily = &graphicsIdx
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}

// deviceExtensionNames checks the required extensions and returns the full
// list to enable. Portability implementations advertise the portability
// subset, which must then be enabled too.
func deviceExtensionNames(device PhysicalDevice) ([]string, error) {
	extensions, err := device.Extensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating device extensions")
	}

	for _, extension := range DeviceExtensions {
		if !extensions[extension] {
			return nil, errors.Wrapf(ErrMissingExtension, "%s", extension)
		}
	}

	extensionNames := append([]string(nil), DeviceExtensions...)
	if extensions[khr_portability_subset.ExtensionName] {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}
	return extensionNames, nil
}

// NegotiateDevice picks a physical device from host, resolves its queue
// families and creates the logical device with one queue per distinct
// family. It never retries; every failure is marked with its kind.
func NegotiateDevice(host Host) (*Device, error) {
	devices, err := host.PhysicalDevices()
	if err != nil {
		return nil, mark(err, ErrNoDeviceFound, "enumerating physical devices")
	}

	physical, properties, err := SelectPhysicalDevice(devices)
	if err != nil {
		return nil, err
	}

	indices, err := FindQueueFamilies(physical)
	if err != nil {
		return nil, mark(err, ErrMissingQueueFamily, "%s", properties.Name)
	}
	if indices.GraphicsFamily == nil {
		return nil, errors.Wrapf(ErrMissingQueueFamily, "%s: no graphics queue family", properties.Name)
	}
	if indices.PresentFamily == nil {
		return nil, errors.Wrapf(ErrMissingQueueFamily, "%s: no queue family presents to the surface", properties.Name)
	}

	extensionNames, err := deviceExtensionNames(physical)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", properties.Name)
	}

	logical, err := physical.CreateDevice(DeviceInfo{
		QueueFamilies: indices.Unique(),
		QueuePriority: queuePriority,
		Extensions:    extensionNames,
	})
	if err != nil {
		return nil, mark(err, ErrDeviceCreationFailed, "%s", properties.Name)
	}

	device := &Device{
		Physical:      physical,
		Properties:    properties,
		Logical:       logical,
		Indices:       indices,
		GraphicsQueue: logical.Queue(*indices.GraphicsFamily),
		PresentQueue:  logical.Queue(*indices.PresentFamily),
	}

	logging.Logger().Info("selected physical device",
		"name", properties.Name,
		"graphicsFamily", *indices.GraphicsFamily,
		"presentFamily", *indices.PresentFamily)
	return device, nil
}
