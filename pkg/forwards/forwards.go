package forwards

import (
	"fmt"
	"slices"
)

// PortForward is a localhost:LocalPort -> localhost:LocalPort forward believed
// to be active on the control master.
type PortForward struct {
	LocalPort uint16
}

func (f PortForward) String() string {
	return fmt.Sprintf("localhost:%d  ->  localhost:%d", f.LocalPort, f.LocalPort)
}

func compare(a, b PortForward) int {
	return int(a.LocalPort) - int(b.LocalPort)
}

// Normalize sorts list by port and drops duplicate ports, in place.
func Normalize(list []PortForward) []PortForward {
	slices.SortFunc(list, compare)
	return slices.CompactFunc(list, func(a, b PortForward) bool {
		return a.LocalPort == b.LocalPort
	})
}

// Index returns the position of port in the sorted list.
func Index(list []PortForward, port uint16) (int, bool) {
	return slices.BinarySearchFunc(list, PortForward{LocalPort: port}, compare)
}

// Insert adds port to the sorted list, keeping it sorted and free of
// duplicates. It returns the new list and the position of port in it.
func Insert(list []PortForward, port uint16) ([]PortForward, int) {
	i, found := Index(list, port)
	if found {
		return list, i
	}
	return slices.Insert(list, i, PortForward{LocalPort: port}), i
}

// Remove deletes port from the sorted list. The list is returned unchanged
// when port is absent.
func Remove(list []PortForward, port uint16) []PortForward {
	i, found := Index(list, port)
	if !found {
		return list
	}
	return slices.Delete(list, i, i+1)
}
