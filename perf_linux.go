//go:build linux

// Package pcaref Linux perf-event collection around solve runs
package pcaref

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

type counterSet struct {
	fds   []int
	names []string
}

var perfEvents = []struct {
	name   string
	config uint64
}{
	{"cycles", unix.PERF_COUNT_HW_CPU_CYCLES},
	{"instructions", unix.PERF_COUNT_HW_INSTRUCTIONS},
	{"cache-misses", unix.PERF_COUNT_HW_CACHE_MISSES},
	{"branch-misses", unix.PERF_COUNT_HW_BRANCH_MISSES},
}

// openCounters opens one hardware perf event per metric for the calling
// process and starts counting. Counter access commonly requires lowered
// perf_event_paranoid; callers fall back to timing-only metrics on error.
func openCounters() (*counterSet, error) {
	cs := &counterSet{}
	for _, ev := range perfEvents {
		attr := unix.PerfEventAttr{
			Type:   unix.PERF_TYPE_HARDWARE,
			Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
			Config: ev.config,
			Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}
		fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			cs.close()
			return nil, fmt.Errorf("perf_event_open %s: %w", ev.name, err)
		}
		cs.fds = append(cs.fds, fd)
		cs.names = append(cs.names, ev.name)
	}
	for _, fd := range cs.fds {
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0)
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0)
	}
	return cs, nil
}

// stop disables the counters, reads their values and releases the
// descriptors.
func (cs *counterSet) stop() *HardwareCounters {
	if cs == nil || len(cs.fds) == 0 {
		return nil
	}

	hw := &HardwareCounters{}
	var buf [8]byte
	for i, fd := range cs.fds {
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0)
		n, err := unix.Read(fd, buf[:])
		if err == nil && n == 8 {
			value := binary.NativeEndian.Uint64(buf[:])
			switch cs.names[i] {
			case "cycles":
				hw.Cycles = value
			case "instructions":
				hw.Instructions = value
			case "cache-misses":
				hw.CacheMisses = value
			case "branch-misses":
				hw.BranchMisses = value
			}
		}
	}
	cs.close()

	if hw.Cycles > 0 {
		hw.IPC = float64(hw.Instructions) / float64(hw.Cycles)
	}
	return hw
}

func (cs *counterSet) close() {
	for _, fd := range cs.fds {
		unix.Close(fd)
	}
	cs.fds = nil
	cs.names = nil
}
