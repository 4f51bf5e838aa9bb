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
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
)

func TestDelta(t *testing.T) {
	require.Equal(t, int64(30), delta(130, 100))
	require.Equal(t, int64(0), delta(100, 100))
	require.Equal(t, int64(0), delta(100, 130))
}

func TestSamplerSample(t *testing.T) {
	s, err := NewSampler()
	require.NoError(t, err)

	got := s.Sample()
	keys := maps.Keys(got)
	sort.Strings(keys)
	require.Subset(t, keys, []string{
		ProcessAlive,
		ProcessUptime,
		RuntimeGoroutines,
		RuntimeHeapInuse,
	})
	require.Equal(t, int64(1), got[ProcessAlive])
	require.Positive(t, got[RuntimeGoroutines])
	require.NotContains(t, got, RuntimeMallocs)
	require.NotContains(t, got, RuntimeGCDelta)

	// the second sample has a baseline for deltas
	got = s.Sample()
	require.Contains(t, got, RuntimeMallocs)
	require.Contains(t, got, RuntimeGCDelta)
	require.GreaterOrEqual(t, got[RuntimeMallocs], int64(0))
}

func TestSamplerPublish(t *testing.T) {
	st := NewStats()
	s, err := NewSampler()
	require.NoError(t, err)
	s.Publish(st)
	got := st.Get()
	require.Equal(t, int64(1), got[ProcessAlive])
	require.Contains(t, got, RuntimeHeapInuse)
}
