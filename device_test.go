package vkboot

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var graphicsFamily = QueueFamily{Index: 0, Flags: QueueGraphics | QueueCompute, Count: 1}

func testSession(driver *fakeDriver) *Session {
	return &Session{Instance: "instance", driver: driver}
}

func TestSelectDeviceFirstSuitableWins(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{
		{name: "A", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{{Index: 0, Flags: QueueCompute, Count: 1}}},
		{name: "B", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}, present: map[int]bool{0: true}},
		{name: "C", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}, present: map[int]bool{0: true}},
	}
	selector := DeviceSelector{Driver: driver, Policy: PolicyFirstSuitable}

	a, indices, err := selector.SelectDevice(testSession(driver), "surface")
	require.NoError(t, err)
	assert.Equal(t, "B", a.Properties.Name)
	assert.Equal(t, 1, a.Index)
	assert.Equal(t, QueueFamilyIndices{Graphics: 0, Present: 0, RequirePresent: true}, indices)
}

func TestSelectDeviceEmpty(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = nil

	a, _, err := DeviceSelector{Driver: driver}.SelectDevice(testSession(driver), nil)
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, ErrNoAcceleratorFound))
}

func TestSelectDeviceEnumerationFailure(t *testing.T) {
	driver := newFakeDriver()
	driver.devicesErr = errFakeDriver

	_, _, err := DeviceSelector{Driver: driver}.SelectDevice(testSession(driver), nil)
	assert.True(t, errors.Is(err, ErrNoAcceleratorFound))
	assert.True(t, errors.Is(err, errFakeDriver))
}

func TestSelectDeviceNoneSuitable(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{
		{name: "no graphics", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{{Index: 0, Flags: QueueTransfer, Count: 2}}},
		{name: "no present", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}},
		{name: "empty graphics family", kind: DeviceTypeDiscreteGPU,
			families: []QueueFamily{{Index: 0, Flags: QueueGraphics, Count: 0}}, present: map[int]bool{0: true}},
	}

	a, _, err := DeviceSelector{Driver: driver}.SelectDevice(testSession(driver), "surface")
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, ErrNoSuitableAccelerator))
}

func TestSelectDeviceDiscretePolicy(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{
		{name: "Integrated", kind: DeviceTypeIntegratedGPU, families: []QueueFamily{graphicsFamily}, present: map[int]bool{0: true}},
		{name: "Discrete", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}, present: map[int]bool{0: true}},
	}

	a, _, err := DeviceSelector{Driver: driver, Policy: PolicyDiscreteOnly}.SelectDevice(testSession(driver), "surface")
	require.NoError(t, err)
	assert.Equal(t, "Discrete", a.Properties.Name)

	a, _, err = DeviceSelector{Driver: driver, Policy: PolicyFirstSuitable}.SelectDevice(testSession(driver), "surface")
	require.NoError(t, err)
	assert.Equal(t, "Integrated", a.Properties.Name)

	driver.gpus = driver.gpus[:1]
	_, _, err = DeviceSelector{Driver: driver, Policy: PolicyDiscreteOnly}.SelectDevice(testSession(driver), "surface")
	assert.True(t, errors.Is(err, ErrNoSuitableAccelerator))
}

func TestSelectDeviceExclude(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{
		{name: "llvmpipe (LLVM 15.0.7)", kind: DeviceTypeCPU, families: []QueueFamily{graphicsFamily}},
		{name: "Fake Discrete", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}},
	}
	selector := DeviceSelector{Driver: driver, Policy: PolicyFirstSuitable, Exclude: []string{"", "llvmpipe"}}

	a, indices, err := selector.SelectDevice(testSession(driver), nil)
	require.NoError(t, err)
	assert.Equal(t, "Fake Discrete", a.Properties.Name)
	assert.False(t, indices.RequirePresent)
}

func TestSelectDeviceSurfaceQueryFailure(t *testing.T) {
	driver := newFakeDriver()
	driver.surfaceErr = errFakeDriver

	_, _, err := DeviceSelector{Driver: driver}.SelectDevice(testSession(driver), "surface")
	assert.True(t, errors.Is(err, ErrNoSuitableAccelerator))
	assert.True(t, errors.Is(err, errFakeDriver))
}

func TestFindQueueFamiliesLowestIndices(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{{
		name: "split",
		kind: DeviceTypeDiscreteGPU,
		families: []QueueFamily{
			{Index: 0, Flags: QueueTransfer, Count: 1},
			{Index: 1, Flags: QueueCompute, Count: 1},
			{Index: 2, Flags: QueueGraphics, Count: 4},
			{Index: 3, Flags: QueueGraphics, Count: 4},
		},
		present: map[int]bool{1: true, 3: true},
	}}

	indices, err := FindQueueFamilies(driver, 0, "surface")
	require.NoError(t, err)
	assert.Equal(t, 2, indices.Graphics)
	assert.Equal(t, 1, indices.Present)
	assert.True(t, indices.IsValid())
	assert.True(t, indices.HasSeparatePresentQueue())
	assert.Equal(t, []int{1, 2}, indices.Families())

	indices, err = FindQueueFamilies(driver, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, QueueFamilyIndices{Graphics: 2, Present: -1}, indices)
	assert.True(t, indices.IsValid())
	assert.Equal(t, []int{2}, indices.Families())
}

func TestQueueFamilyIndicesValidity(t *testing.T) {
	assert.False(t, QueueFamilyIndices{Graphics: -1, Present: -1}.IsValid())
	assert.False(t, QueueFamilyIndices{Graphics: 0, Present: -1, RequirePresent: true}.IsValid())
	assert.True(t, QueueFamilyIndices{Graphics: 0, Present: 0, RequirePresent: true}.IsValid())
	assert.False(t, QueueFamilyIndices{Graphics: 0, Present: 0, RequirePresent: true}.HasSeparatePresentQueue())
}

func TestSelectDeviceSkipsFailedSurfaceQuery(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{
		{name: "A", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}, surfaceErr: errFakeDriver},
		{name: "B", kind: DeviceTypeDiscreteGPU, families: []QueueFamily{graphicsFamily}, present: map[int]bool{0: true}},
	}

	a, indices, err := DeviceSelector{Driver: driver}.SelectDevice(testSession(driver), "surface")
	require.NoError(t, err)
	assert.Equal(t, "B", a.Properties.Name)
	assert.True(t, indices.IsValid())
}

func TestPolicyResolve(t *testing.T) {
	cases := []struct {
		policy  Policy
		surface Surface
		exp     Policy
	}{
		{PolicyAuto, nil, PolicyFirstSuitable},
		{PolicyAuto, "surface", PolicyDiscreteOnly},
		{PolicyFirstSuitable, "surface", PolicyFirstSuitable},
		{PolicyDiscreteOnly, nil, PolicyDiscreteOnly},
	}
	for caseIndex, tc := range cases {
		assert.Equal(t, tc.exp, tc.policy.Resolve(tc.surface), "[case %d]", caseIndex)
	}
	assert.Equal(t, PolicyAuto, DefaultConfig().Policy)
}

func TestSelectDeviceAutoPolicy(t *testing.T) {
	driver := newFakeDriver()
	driver.gpus = []fakeGPU{
		{name: "Integrated", kind: DeviceTypeIntegratedGPU, families: []QueueFamily{graphicsFamily}, present: map[int]bool{0: true}},
	}
	selector := DeviceSelector{Driver: driver, Policy: PolicyAuto}

	a, _, err := selector.SelectDevice(testSession(driver), nil)
	require.NoError(t, err)
	assert.Equal(t, "Integrated", a.Properties.Name)

	_, _, err = selector.SelectDevice(testSession(driver), "surface")
	assert.True(t, errors.Is(err, ErrNoSuitableAccelerator))
}
