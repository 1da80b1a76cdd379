// Package internal holds helpers for the dydra binaries.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap"
)

const (
	cpuProfile  = "cpu.prof"
	heapProfile = "heap.prof"
)

// Profiler records runtime profiles of a CLI run into some directory
type Profiler struct {
	dir string
	cpu *os.File
	l   *zap.Logger
}

// StartProfiling starts a CPU profile, written to {dir}/cpu.prof.
//
// Stop must be called to flush the CPU profile and write a heap profile.
func StartProfiling(dir string, l *zap.Logger) (*Profiler, error) {
	if l == nil {
		l = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create profile directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, cpuProfile))
	if err != nil {
		return nil, err
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	l.Debug("cpu profiling started", zap.String("dir", dir))
	return &Profiler{dir: dir, cpu: f, l: l}, nil
}

// Stop the CPU profile and write a heap profile.
//
// An existing heap profile is never overwritten.
func (p *Profiler) Stop() error {
	if p == nil || p.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	if err := p.cpu.Close(); err != nil {
		return err
	}
	p.cpu = nil

	runtime.GC()
	mstats := new(runtime.MemStats)
	runtime.ReadMemStats(mstats)
	p.l.Debug("profiling stopped",
		zap.Uint64("MiB for heap (un-GC)", mstats.Alloc/1024/1024),
		zap.Uint64("MiB for heap (max ever)", mstats.HeapSys/1024/1024),
		zap.Int("num go routines", runtime.NumGoroutine()),
	)
	return writeProfIfNExist(filepath.Join(p.dir, heapProfile), "heap")
}

func writeProfIfNExist(path string, name string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return err
	}
	fprof, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = fprof.Close()
	}()
	return pprof.Lookup(name).WriteTo(fprof, 0)
}
