package vkboot

import "fmt"

// QueueFamilyIndices locates the queue families a device is opened with.
// An index of -1 means the family was not found.
type QueueFamilyIndices struct {
	Graphics int
	Present  int
	// RequirePresent is set when a surface was supplied to the search.
	RequirePresent bool
}

// IsValid reports whether every required family was located.
func (q QueueFamilyIndices) IsValid() bool {
	if q.Graphics < 0 {
		return false
	}
	return !q.RequirePresent || q.Present >= 0
}

// HasSeparatePresentQueue is true when presentation uses a different family than graphics.
func (q QueueFamilyIndices) HasSeparatePresentQueue() bool {
	return q.RequirePresent && q.Present != q.Graphics
}

// Families returns the distinct required family indices in ascending order.
func (q QueueFamilyIndices) Families() []int {
	if !q.RequirePresent || q.Present == q.Graphics {
		return []int{q.Graphics}
	}
	if q.Present < q.Graphics {
		return []int{q.Present, q.Graphics}
	}
	return []int{q.Graphics, q.Present}
}

func (q QueueFamilyIndices) String() string {
	if !q.RequirePresent {
		return fmt.Sprintf("{ Graphics: %d }", q.Graphics)
	}
	return fmt.Sprintf("{ Graphics: %d Present: %d }", q.Graphics, q.Present)
}

// FindQueueFamilies scans gpu's families in index order. Graphics is the
// lowest family with queues and the graphics bit; when surface is not nil,
// Present is independently the lowest family with queues that can present to
// it. The two may or may not coincide.
func FindQueueFamilies(driver Driver, gpu PhysicalDevice, surface Surface) (QueueFamilyIndices, error) {
	return resolveQueueFamilies(driver, gpu, driver.QueueFamilies(gpu), surface)
}

func resolveQueueFamilies(driver Driver, gpu PhysicalDevice, families []QueueFamily, surface Surface) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{Graphics: -1, Present: -1, RequirePresent: surface != nil}

	for _, family := range families {
		if indices.Graphics < 0 && family.IsGraphics() {
			indices.Graphics = family.Index
		}
		if indices.RequirePresent && indices.Present < 0 && family.Count > 0 {
			supported, err := driver.SurfaceSupport(gpu, family.Index, surface)
			if err != nil {
				return indices, err
			}
			if supported {
				indices.Present = family.Index
			}
		}
		if indices.IsValid() {
			break
		}
	}
	return indices, nil
}
