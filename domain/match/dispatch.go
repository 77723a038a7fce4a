package match

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Kernel identifies a comparison implementation. Both kernels produce
// bit-for-bit identical results; selection is purely a throughput decision.
type Kernel int

const (
	// KernelScalar compares one pixel per step.
	KernelScalar Kernel = iota
	// KernelWide compares two packed pixels per 64-bit step.
	KernelWide
)

func (k Kernel) String() string {
	if k == KernelWide {
		return "wide"
	}
	return "scalar"
}

// activeKernel probes the CPU exactly once, on first use, and caches the
// result for the remainder of the process. Concurrent first use is safe.
var activeKernel = sync.OnceValue(detectKernel)

// detectKernel enables the wide kernel on CPUs with a 128-bit vector unit
// (SSE2 on x86, ASIMD on arm64), where 64-bit paired loads are cheap.
// Everything else stays on the scalar reference path.
func detectKernel() Kernel {
	if cpuid.CPU.Has(cpuid.SSE2) || cpuid.CPU.Has(cpuid.ASIMD) {
		return KernelWide
	}
	return KernelScalar
}

// ActiveKernel reports which kernel the process selected.
func ActiveKernel() Kernel { return activeKernel() }
