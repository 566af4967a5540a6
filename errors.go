package vkboot

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

var (
	ErrUnsupportedCapability       = errors.New("vkboot: required extension or layer not supported")
	ErrSessionCreationFailed       = errors.New("vkboot: could not create vulkan instance")
	ErrDiagnosticsFailed           = errors.New("vkboot: could not attach debug report callback")
	ErrSurfaceCreationFailed       = errors.New("vkboot: could not create window surface")
	ErrNoAcceleratorFound          = errors.New("vkboot: no physical devices found")
	ErrNoSuitableAccelerator       = errors.New("vkboot: no suitable physical device found")
	ErrLogicalDeviceCreationFailed = errors.New("vkboot: could not create logical device")
	ErrInvalidState                = errors.New("vkboot: renderer is not in a valid state for this call")
	ErrInvalidConfig               = errors.New("vkboot: invalid configuration")
)

// kinds lists the stage sentinels in the order their exit codes are assigned.
var kinds = []error{
	ErrUnsupportedCapability,
	ErrSessionCreationFailed,
	ErrDiagnosticsFailed,
	ErrSurfaceCreationFailed,
	ErrNoAcceleratorFound,
	ErrNoSuitableAccelerator,
	ErrLogicalDeviceCreationFailed,
	ErrInvalidState,
	ErrInvalidConfig,
}

// KindOf returns the sentinel err was marked with, or nil if it carries none.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ExitCode maps an Init result to a process exit status. Every failure is
// non-zero; each kind has its own code and unknown errors map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	kind := KindOf(err)
	for i, k := range kinds {
		if k == kind {
			return 10 + i
		}
	}
	return 1
}

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// NewError converts a failed driver result into an error with a stack trace.
// It returns nil for vk.Success.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return errors.Newf("vulkan error: %s (%d)", vk.Error(ret).Error(), ret)
}

// markf wraps cause with a message and marks it with kind so errors.Is
// matches both the kind and the original cause.
func markf(cause error, kind error, format string, args ...interface{}) error {
	if cause == nil {
		return errors.Wrapf(kind, format, args...)
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), kind)
}
