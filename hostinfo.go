package pcaref

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// HostInfo describes the machine a golden run was produced on. Comparison
// reports against accelerated hardware record it so numerical discrepancies
// can be traced to the host that generated the reference.
type HostInfo struct {
	OS       string   `json:"os"`
	Arch     string   `json:"arch"`
	NumCPU   int      `json:"num_cpu"`
	Features []string `json:"features,omitempty"`
}

// CollectHostInfo gathers OS, architecture and SIMD feature flags for the
// current host.
func CollectHostInfo() HostInfo {
	return HostInfo{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		NumCPU:   runtime.NumCPU(),
		Features: detectFeatures(),
	}
}

func detectFeatures() []string {
	var features []string

	x86 := []struct {
		name string
		has  bool
	}{
		{"SSE4", cpu.X86.HasSSE41 || cpu.X86.HasSSE42},
		{"AVX", cpu.X86.HasAVX},
		{"AVX2", cpu.X86.HasAVX2},
		{"FMA", cpu.X86.HasFMA},
		{"AVX512F", cpu.X86.HasAVX512F},
		{"AVX512DQ", cpu.X86.HasAVX512DQ},
	}
	for _, f := range x86 {
		if f.has {
			features = append(features, f.name)
		}
	}

	arm := []struct {
		name string
		has  bool
	}{
		{"NEON", cpu.ARM64.HasASIMD},
		{"FP", cpu.ARM64.HasFP},
		{"SVE", cpu.ARM64.HasSVE},
	}
	for _, f := range arm {
		if f.has {
			features = append(features, f.name)
		}
	}

	return features
}

// String returns a one-line description of the host.
func (h HostInfo) String() string {
	desc := h.OS + "/" + h.Arch
	if len(h.Features) > 0 {
		desc += " [" + strings.Join(h.Features, ", ") + "]"
	}
	return desc
}
