/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stats

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Keys set by Sampler
const (
	ProcessAlive      = "process.alive"
	ProcessUptime     = "process.uptime"
	ProcessCPUPermil  = "process.cpu_permil"
	ProcessRSS        = "process.rss"
	ProcessFDs        = "process.fds"
	RuntimeGoroutines = "runtime.goroutines"
	RuntimeHeapInuse  = "runtime.heap.inuse"
	RuntimeGCDelta    = "runtime.gc.delta"
	RuntimeMallocs    = "runtime.mallocs.delta"
)

// CounterSetter receives sampled values
type CounterSetter interface {
	SetCounter(key string, val int64)
}

// Sampler reports resource usage of the daemon process.
// Delta keys cover the period since the previous Sample and are
// absent from the first one.
type Sampler struct {
	started time.Time
	proc    *process.Process
	last    *runtime.MemStats
}

// NewSampler attaches to the running process
func NewSampler() (*Sampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &Sampler{started: time.Now(), proc: proc}, nil
}

func delta(cur, prev uint64) int64 {
	if cur < prev {
		return 0
	}
	return int64(cur - prev)
}

// Sample reads process and runtime usage
func (s *Sampler) Sample() map[string]int64 {
	out := map[string]int64{
		ProcessAlive:      1,
		ProcessUptime:     int64(time.Since(s.started).Seconds()),
		RuntimeGoroutines: int64(runtime.NumGoroutine()),
	}
	// gopsutil errors are per metric, a missing one is skipped
	if pct, err := s.proc.Percent(0); err == nil {
		out[ProcessCPUPermil] = int64(pct * 10)
	}
	if mem, err := s.proc.MemoryInfo(); err == nil {
		out[ProcessRSS] = int64(mem.RSS)
	}
	if fds, err := s.proc.NumFDs(); err == nil {
		out[ProcessFDs] = int64(fds)
	}

	m := &runtime.MemStats{}
	runtime.ReadMemStats(m)
	out[RuntimeHeapInuse] = int64(m.HeapInuse)
	if s.last != nil {
		out[RuntimeGCDelta] = delta(uint64(m.NumGC), uint64(s.last.NumGC))
		out[RuntimeMallocs] = delta(m.Mallocs, s.last.Mallocs)
	}
	s.last = m
	return out
}

// Publish samples and copies the values into st
func (s *Sampler) Publish(st CounterSetter) {
	for k, v := range s.Sample() {
		st.SetCounter(k, v)
	}
}
