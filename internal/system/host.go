package system

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostReport описывает машину, на которой шла трассировка.
type HostReport struct {
	Platform    string
	TotalMemory uint64
	UsedMemory  uint64
	UsedPercent float64
}

// ReadHostReport собирает сведения о памяти и ОС. Ошибки платформенных
// запросов не фатальны: незаполненные поля остаются нулевыми.
func ReadHostReport() (HostReport, error) {
	var r HostReport

	vm, err := mem.VirtualMemory()
	if err != nil {
		return r, fmt.Errorf("memory stats: %w", err)
	}
	r.TotalMemory = vm.Total
	r.UsedMemory = vm.Used
	r.UsedPercent = vm.UsedPercent

	info, err := host.Info()
	if err == nil {
		r.Platform = fmt.Sprintf("%s/%s %s", info.OS, info.KernelArch, info.PlatformVersion)
	}
	return r, nil
}

func (r HostReport) String() string {
	return fmt.Sprintf("%s | RAM: %d/%d MiB (%.1f%%)",
		r.Platform, r.UsedMemory>>20, r.TotalMemory>>20, r.UsedPercent)
}
