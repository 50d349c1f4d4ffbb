package containify

import (
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

// SystemResources probes the host for the figures shown alongside create
// output. Unavailable probes leave their fields zeroed; the probe itself
// only fails when memory cannot be read at all.
func (c *Containify) SystemResources() (types.SystemResources, error) {
	var res types.SystemResources

	vm, err := mem.VirtualMemory()
	if err != nil {
		return res, err
	}
	res.TotalRAMMB = vm.Total / 1024 / 1024
	res.AvailableRAMMB = vm.Available / 1024 / 1024

	if logical, countErr := cpu.Counts(true); countErr == nil {
		res.CPUCountLogical = logical
	}
	if physical, countErr := cpu.Counts(false); countErr == nil {
		res.CPUCountPhysical = physical
	}

	if usage, diskErr := disk.Usage(c.Options.RootDir); diskErr == nil {
		res.DiskTotalGB = usage.Total / 1024 / 1024 / 1024
		res.DiskFreeGB = usage.Free / 1024 / 1024 / 1024
	}
	return res, nil
}
