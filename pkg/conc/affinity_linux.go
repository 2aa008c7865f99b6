//go:build linux

package conc

import "golang.org/x/sys/unix"

// setAffinity pins the current OS thread to one logical CPU. Failures are
// swallowed: under cgroup restrictions the call may be denied, and the
// fallback is simply no pin.
func setAffinity(cpu int) {
	if cpu < 0 {
		return
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	_ = unix.SchedSetaffinity(0, &set)
}
