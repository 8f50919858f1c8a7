package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/triangle/internal/logging"
)

var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

// instance is the instance-level state: driver, optional validation
// messenger and the window surface.
type instance struct {
	instanceDriver core1_0.CoreInstanceDriver

	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger

	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface
}

func debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    logDebug,
	}
}

func logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	logger := logging.Logger().With("source", "vulkan", "type", msgType, "severity", severity)
	if severity&ext_debug_utils.SeverityError != 0 {
		logger.Error(data.Message)
	} else {
		logger.Warn(data.Message)
	}
	return false
}

func createInstance(window surfaceProvider, applicationName string, validation bool) (*instance, error) {
	globalDriver, err := core.CreateDriverFromProcAddr(window.ProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "loading vulkan")
	}

	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    applicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,
	}

	extensions, _, err := globalDriver.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating instance extensions")
	}

	for _, ext := range window.InstanceExtensions() {
		if _, hasExt := extensions[ext]; !hasExt {
			return nil, errors.Wrapf(ErrMissingExtension, "instance extension %s", ext)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext)
	}

	if _, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]; enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if validation {
		layers, _, err := globalDriver.AvailableLayers()
		if err != nil {
			return nil, errors.Wrap(err, "enumerating instance layers")
		}

		for _, layer := range validationLayers {
			if _, hasValidation := layers[layer]; !hasValidation {
				return nil, errors.Errorf("validation layer %s not available, install the Vulkan SDK", layer)
			}
			instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, layer)
		}

		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
		instanceOptions.Next = debugMessengerOptions()
	}

	inst := &instance{}
	inst.instanceDriver, _, err = globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, errors.Wrap(err, "creating instance")
	}

	if validation {
		inst.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(inst.instanceDriver)
		inst.debugMessenger, _, err = inst.debugDriver.CreateDebugUtilsMessenger(nil, debugMessengerOptions())
		if err != nil {
			inst.destroy()
			return nil, errors.Wrap(err, "creating debug messenger")
		}
	}

	inst.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(inst.instanceDriver)
	inst.surface, err = window.CreateSurface(inst.instanceDriver.Instance(), inst.surfaceExtension)
	if err != nil {
		inst.destroy()
		return nil, errors.Wrap(err, "creating surface")
	}

	logging.Logger().Debug("created vulkan instance",
		"extensions", instanceOptions.EnabledExtensionNames,
		"layers", instanceOptions.EnabledLayerNames)
	return inst, nil
}

func (c *instance) host() Host {
	return &driverHost{
		instance:  c.instanceDriver,
		surfaceEx: c.surfaceExtension,
		surface:   c.surface,
	}
}

// destroy releases surface, messenger and instance in that order.
func (c *instance) destroy() {
	if c.surface.Initialized() {
		c.surfaceExtension.DestroySurface(c.surface, nil)
		c.surface = khr_surface.Surface{}
	}

	if c.debugMessenger.Initialized() {
		c.debugDriver.DestroyDebugUtilsMessenger(c.debugMessenger, nil)
		c.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if c.instanceDriver != nil {
		c.instanceDriver.DestroyInstance(nil)
		c.instanceDriver = nil
	}
}
