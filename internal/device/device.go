// Package device describes the quantum devices jobs can target. Profiles
// are written in CUE; a builtin profile for the Helmi 5-qubit machine is
// embedded, and additional profiles can be loaded from a directory.
package device

import (
	"fmt"
	"sort"
)

// DefaultID is the profile selected when no device flag is given.
const DefaultID = "helmi"

// Device is a compiled device profile. Names[i] is the vendor name of
// physical qubit i; derived "QB<i+1>" names are filled in when a profile
// omits them.
type Device struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	NumQubits   int      `json:"num_qubits"`
	Names       []string `json:"names"`
	EndpointEnv string   `json:"endpoint_env,omitempty"`
	Coupling    [][2]int `json:"coupling,omitempty"`
}

// QubitName returns the vendor name of physical qubit i, or "" when i is
// outside the device.
func (d *Device) QubitName(i int) string {
	if i < 0 || i >= len(d.Names) {
		return ""
	}
	return d.Names[i]
}

// Validate checks profile invariants: at least one qubit, one distinct
// name per qubit, and coupling pairs that stay on the device.
func (d *Device) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("device profile missing id")
	}
	if d.NumQubits < 1 {
		return fmt.Errorf("device %s: must expose at least one qubit", d.ID)
	}
	if len(d.Names) != d.NumQubits {
		return fmt.Errorf("device %s: %d names for %d qubits", d.ID, len(d.Names), d.NumQubits)
	}
	seen := make(map[string]bool, len(d.Names))
	for i, name := range d.Names {
		if name == "" {
			return fmt.Errorf("device %s: qubit %d has empty name", d.ID, i)
		}
		if seen[name] {
			return fmt.Errorf("device %s: duplicate qubit name %q", d.ID, name)
		}
		seen[name] = true
	}
	for _, pair := range d.Coupling {
		if pair[0] == pair[1] {
			return fmt.Errorf("device %s: coupling pair connects qubit %d to itself", d.ID, pair[0])
		}
		for _, q := range pair {
			if q < 0 || q >= d.NumQubits {
				return fmt.Errorf("device %s: coupling references qubit %d outside device", d.ID, q)
			}
		}
	}
	return nil
}

// Find returns the profile with the given id.
func Find(devices []*Device, id string) (*Device, bool) {
	for _, d := range devices {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// sortByID orders profiles deterministically for listings.
func sortByID(devices []*Device) {
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
}
