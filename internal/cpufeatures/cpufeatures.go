// Package cpufeatures generalizes the teacher's hwaccel.go/hwaccel_ref.go
// pattern: a package-global descriptor, populated once in init(), that
// records which hardware-accelerated primitives the CPU offers. aead/gcm
// reads it to report carryless-multiply capability; no package selects a
// code path from it. Unlike the teacher, feature
// detection goes through golang.org/x/sys/cpu instead of hand-written
// CPUID/XGETBV assembly — spec.md's Design Notes call the original's
// SSE2/AVX2 pointer arithmetic "not portable" and ask reimplementations not
// to replicate it.
package cpufeatures

import "golang.org/x/sys/cpu"

// Set reports which hardware-accelerated primitives the running CPU
// supports. It is computed once at package init and never mutated
// afterwards, mirroring the teacher's isHardwareAccelerated/
// hardwareAccelImpl pair.
type Set struct {
	// AESNI reports whether the CPU has a hardware AES round function.
	// crypto/aes already dispatches to it internally; callers use this
	// flag only to report capability, not to pick an implementation.
	AESNI bool

	// CarrylessMultiply reports whether the CPU offers a hardware
	// polynomial multiply (PCLMULQDQ/PMULL). aead/gcm only reports this
	// flag; its GHASH multiplies bit by bit either way.
	CarrylessMultiply bool
}

var current Set

func init() {
	switch {
	case cpu.X86.HasAES && cpu.X86.HasPCLMULQDQ:
		current = Set{AESNI: true, CarrylessMultiply: true}
	case cpu.ARM64.HasAES && cpu.ARM64.HasPMULL:
		current = Set{AESNI: true, CarrylessMultiply: true}
	default:
		current = Set{}
	}
}

// Current returns the process-wide detected feature set.
func Current() Set {
	return current
}
