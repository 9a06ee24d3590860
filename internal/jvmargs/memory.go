// SPDX-License-Identifier: MPL-2.0

package jvmargs

import (
	"github.com/shirou/gopsutil/v4/mem"
)

// TotalSystemMemoryKB returns the host's total physical memory in kilobytes,
// or 0 when the telemetry is unavailable. A zero total simply suppresses the
// derived heap flag; it never fails the launch.
func TotalSystemMemoryKB() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0
	}
	return vm.Total / 1024
}
