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

/*
Package stats implements statistics collection and reporting for the soft clock.
Counters are exported as JSON on / and in Prometheus format on /metrics.
*/
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"

	"github.com/eclesh/welford"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Keys of the sync correction statistics
const (
	CorrectionCount    = "clock.correction.count"
	CorrectionLast     = "clock.correction.last"
	CorrectionMeanMS   = "clock.correction.mean_ms"
	CorrectionStddevMS = "clock.correction.stddev_ms"
)

// Stats is an implementation of clock.StatsServer
type Stats struct {
	mux         sync.Mutex
	counters    map[string]int64
	corrections *welford.Stats
	registry    *prometheus.Registry
}

// NewStats created new instance of Stats
func NewStats() *Stats {
	s := &Stats{
		counters:    map[string]int64{},
		corrections: welford.New(),
		registry:    prometheus.NewRegistry(),
	}
	s.registry.MustRegister(s)
	return s
}

// UpdateCounterBy will increment counter
func (s *Stats) UpdateCounterBy(key string, count int64) {
	s.mux.Lock()
	s.counters[key] += count
	s.mux.Unlock()
}

// SetCounter will set a counter to the provided value.
func (s *Stats) SetCounter(key string, val int64) {
	s.mux.Lock()
	s.counters[key] = val
	s.mux.Unlock()
}

// ObserveCorrection records the step applied to an already trusted clock
func (s *Stats) ObserveCorrection(seconds int64) {
	s.mux.Lock()
	s.corrections.Add(float64(seconds))
	s.counters[CorrectionCount]++
	s.counters[CorrectionLast] = seconds
	s.mux.Unlock()
}

// Get returns a snapshot of all counters, correction statistics included
func (s *Stats) Get() map[string]int64 {
	ret := make(map[string]int64)
	s.mux.Lock()
	defer s.mux.Unlock()
	for key, val := range s.counters {
		ret[key] = val
	}
	if s.counters[CorrectionCount] > 0 {
		ret[CorrectionMeanMS] = int64(math.Round(s.corrections.Mean() * 1000))
	}
	if s.counters[CorrectionCount] > 1 {
		ret[CorrectionStddevMS] = int64(math.Round(s.corrections.Stddev() * 1000))
	}
	return ret
}

// Reset all the values of counters
func (s *Stats) Reset() {
	s.mux.Lock()
	for k := range s.counters {
		s.counters[k] = 0
	}
	s.corrections = welford.New()
	s.mux.Unlock()
}

// Describe implements prometheus.Collector. Nothing is sent, as the set of
// counters is only known at collection time.
func (s *Stats) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector
func (s *Stats) Collect(ch chan<- prometheus.Metric) {
	for key, val := range s.Get() {
		m, err := prometheus.NewConstMetric(
			prometheus.NewDesc(flattenKey(key), key, nil, nil),
			prometheus.GaugeValue,
			float64(val),
		)
		if err != nil {
			log.Errorf("failed to export metric %s: %v", key, err)
			continue
		}
		ch <- m
	}
}

// handleRequest is a handler used for all http monitoring requests
func (s *Stats) handleRequest(w http.ResponseWriter, _ *http.Request) {
	js, err := json.Marshal(s.Get())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(js); err != nil {
		log.Errorf("Failed to reply: %v", err)
	}
}

// Handler serves JSON on / and Prometheus metrics on /metrics
func (s *Stats) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Start runs the http monitoring server. It blocks.
func (s *Stats) Start(port int) {
	addr := fmt.Sprintf(":%d", port)
	log.Debugf("Starting http json server on %s", addr)
	err := http.ListenAndServe(addr, s.Handler())
	if err != nil {
		log.Errorf("Failed to start listener: %v", err)
	}
}

func flattenKey(key string) string {
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, "=", "_")
	key = strings.ReplaceAll(key, "/", "_")
	return key
}
