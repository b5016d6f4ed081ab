package utils

import (
	"fmt"
	"runtime"
)

type MemUsage struct {
	AllocMiB, TotalAllocMiB, SysMiB uint64
	NumGC                           uint32
}

func GetMemUsage() (mu MemUsage) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return MemUsage{
		AllocMiB:      bToMb(m.Alloc),
		TotalAllocMiB: bToMb(m.TotalAlloc),
		SysMiB:        bToMb(m.Sys),
		NumGC:         m.NumGC,
	}
}

func (mu MemUsage) String() string {
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		mu.AllocMiB, mu.TotalAllocMiB, mu.SysMiB, mu.NumGC)
}
