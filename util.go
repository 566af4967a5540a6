package vkboot

const end = "\x00"

// safeString returns s terminated by a single NUL as the loader expects.
func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != end[0] {
		return s + end
	}
	return s
}

// safeStrings returns a NUL terminated copy of list; list itself is not modified.
func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = safeString(list[i])
	}
	return out
}

// appendUnique appends the names not already present in list, keeping order.
func appendUnique(list []string, names ...string) []string {
	seen := make(map[string]struct{}, len(list)+len(names))
	out := make([]string, 0, len(list)+len(names))
	for _, n := range append(append([]string{}, list...), names...) {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
