//go:build !linux

// Package pcaref fallback for platforms without perf-event support
package pcaref

import "errors"

type counterSet struct{}

func openCounters() (*counterSet, error) {
	return nil, errors.New("hardware counters not supported on this platform")
}

func (cs *counterSet) stop() *HardwareCounters {
	return nil
}
