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

package ntp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/require"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
	"github.com/facebook/softclock/responder"
)

type fixedClock struct {
	sync.Mutex
	now    calendar.Time
	status clock.Status
}

func (c *fixedClock) Now() calendar.Time {
	c.Lock()
	defer c.Unlock()
	return c.now
}

func (c *fixedClock) TimeStatus() clock.Status {
	c.Lock()
	defer c.Unlock()
	return c.status
}

func startResponder(t *testing.T, c responder.TimeSource) string {
	s := responder.New(responder.Config{Address: "127.0.0.1:0", Stratum: 2, RefID: "TEST"}, c, nil)
	require.NoError(t, s.Listen())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return s.Addr().String()
}

func TestSeconds(t *testing.T) {
	resp := &ntp.Response{
		Time: time.Unix(1700000000, 600000000),
		RTT:  900 * time.Millisecond,
	}
	require.Equal(t, calendar.Time(1700000001), Seconds(resp))

	resp.RTT = 0
	require.Equal(t, calendar.Time(1700000000), Seconds(resp))
}

func TestNew(t *testing.T) {
	p := New("time.example.com")
	require.Equal(t, "time.example.com", p.Server)
	require.Equal(t, DefaultTimeout, p.Timeout)
}

func TestReadTimeFromResponder(t *testing.T) {
	c := &fixedClock{now: 1700000000, status: clock.StatusSet}
	p := &Provider{Server: startResponder(t, c), Timeout: 2 * time.Second}

	resp, err := p.Query()
	require.NoError(t, err)
	require.Equal(t, uint8(2), resp.Stratum)
	require.Equal(t, calendar.Time(1700000000), p.ReadTime())
}

func TestReadTimeUnsynchronisedServer(t *testing.T) {
	c := &fixedClock{now: 1700000000, status: clock.StatusNeedsSync}
	p := &Provider{Server: startResponder(t, c), Timeout: 2 * time.Second}

	_, err := p.Query()
	require.Error(t, err)
	require.Equal(t, calendar.Time(0), p.ReadTime())
}

func TestReadTimeNoServer(t *testing.T) {
	p := &Provider{Server: "127.0.0.1:1", Timeout: 200 * time.Millisecond}
	require.Equal(t, calendar.Time(0), p.ReadTime())
}
