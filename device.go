package vkboot

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Accelerator is one physical device visible to a session. It is not owned:
// nothing is released when it goes away.
type Accelerator struct {
	Handle        PhysicalDevice
	Index         int
	Properties    DeviceProperties
	QueueFamilies []QueueFamily
}

func (a *Accelerator) String() string {
	return fmt.Sprintf("{ Index: %d Name: %q Type: %s API: %s }",
		a.Index, a.Properties.Name, a.Properties.Type, a.Properties.APIVersion)
}

// DeviceSelector picks the physical device a logical device is opened on.
type DeviceSelector struct {
	Driver  Driver
	Policy  Policy
	Exclude []string
}

// Enumerate lists every physical device of the session in driver order.
func (s DeviceSelector) Enumerate(session *Session) ([]*Accelerator, error) {
	gpus, err := s.Driver.PhysicalDevices(session.Instance)
	if err != nil {
		return nil, markf(err, ErrNoAcceleratorFound, "enumerate physical devices")
	}
	accelerators := make([]*Accelerator, 0, len(gpus))
	for i, gpu := range gpus {
		accelerators = append(accelerators, &Accelerator{
			Handle:        gpu,
			Index:         i,
			Properties:    s.Driver.DeviceProperties(gpu),
			QueueFamilies: s.Driver.QueueFamilies(gpu),
		})
	}
	return accelerators, nil
}

// Evaluate checks one candidate against the selector. It returns the queue
// families the device would be opened with and, when the device is rejected,
// a short reason.
func (s DeviceSelector) Evaluate(a *Accelerator, surface Surface) (QueueFamilyIndices, string, error) {
	for _, ex := range s.Exclude {
		if ex != "" && strings.Contains(a.Properties.Name, ex) {
			return QueueFamilyIndices{Graphics: -1, Present: -1}, fmt.Sprintf("excluded by %q", ex), nil
		}
	}

	indices, err := resolveQueueFamilies(s.Driver, a.Handle, a.QueueFamilies, surface)
	if err != nil {
		return indices, "", err
	}
	if indices.Graphics < 0 {
		return indices, "no graphics queue family", nil
	}
	if !indices.IsValid() {
		return indices, "no queue family can present to the surface", nil
	}
	if s.Policy.Resolve(surface) == PolicyDiscreteOnly && a.Properties.Type != DeviceTypeDiscreteGPU {
		return indices, fmt.Sprintf("%s device rejected by discrete-only policy", a.Properties.Type), nil
	}
	return indices, "", nil
}

// SelectDevice returns the first device, in enumeration order, that passes
// every active filter, together with the queue families it was accepted with.
// surface may be nil, in which case presentation is not required. A device
// whose surface support cannot be queried is skipped; the query error is
// returned only when no device qualifies.
func (s DeviceSelector) SelectDevice(session *Session, surface Surface) (*Accelerator, QueueFamilyIndices, error) {
	none := QueueFamilyIndices{Graphics: -1, Present: -1}

	accelerators, err := s.Enumerate(session)
	if err != nil {
		return nil, none, err
	}
	if len(accelerators) == 0 {
		return nil, none, errors.Wrap(ErrNoAcceleratorFound, "no GPU supports the vulkan instance")
	}

	var queryErr error
	for _, a := range accelerators {
		indices, reason, err := s.Evaluate(a, surface)
		if err != nil {
			logger.Debugf("skipping device %s: surface support query failed: %v", a, err)
			queryErr = markf(err, ErrNoSuitableAccelerator, "query surface support on %q", a.Properties.Name)
			continue
		}
		if reason != "" {
			logger.Debugf("skipping device %s: %s", a, reason)
			continue
		}
		logger.Infof("selected device %s with queue families %s", a, indices)
		return a, indices, nil
	}

	if queryErr != nil {
		return nil, none, queryErr
	}
	return nil, none, errors.Wrapf(ErrNoSuitableAccelerator,
		"none of %d devices satisfies policy %s", len(accelerators), s.Policy.Resolve(surface))
}
