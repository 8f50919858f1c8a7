package vulkan

import (
	"github.com/cockroachdb/errors"
)

// Startup failure kinds. Every error returned by the negotiator, the chain
// builder or Backend.Init is marked with one of these so callers can test
// with errors.Is while the message keeps the driver context. All of them are
// fatal.
var (
	ErrNoDeviceFound                   = errors.New("no physical device found")
	ErrNoSuitableDevice                = errors.New("no suitable physical device")
	ErrMissingQueueFamily              = errors.New("missing queue family")
	ErrMissingExtension                = errors.New("missing required device extension")
	ErrDeviceCreationFailed            = errors.New("logical device creation failed")
	ErrPresentationChainCreationFailed = errors.New("presentation chain creation failed")
	ErrImageViewCreationFailed         = errors.New("image view creation failed")
	ErrUnsupportedPlatform             = errors.New("window has no vulkan surface integration")
)

// mark attaches kind to a driver error, keeping err as the cause.
func mark(err error, kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}
