//go:build !linux

package conc

// setAffinity is a no-op where thread pinning is unsupported.
func setAffinity(cpu int) {}
