//go:build !windows

package execpath

// DefaultProbe returns the probe for this platform.
func DefaultProbe() Probe {
	return PermissionProbe{}
}
