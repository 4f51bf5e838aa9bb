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

package responder

import (
	"context"
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Packet request. From ntpdate run
var ntpRequest = &Packet{
	Settings:       227,
	Poll:           3,
	Precision:      -6,
	RootDelay:      65536,
	RootDispersion: 65536,
	TxTimeSec:      3794210679,
	TxTimeFrac:     2718216404,
}

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

type countingStats struct {
	sync.Mutex
	counters map[string]int64
}

func (s *countingStats) UpdateCounterBy(key string, count int64) {
	s.Lock()
	defer s.Unlock()
	if s.counters == nil {
		s.counters = map[string]int64{}
	}
	s.counters[key] += count
}

func (s *countingStats) get(key string) int64 {
	s.Lock()
	defer s.Unlock()
	return s.counters[key]
}

func TestPacketRoundTrip(t *testing.T) {
	b, err := ntpRequest.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, PacketSizeBytes)
	require.Equal(t, uint8(227), b[0])

	p := &Packet{}
	require.NoError(t, p.UnmarshalBinary(append(b, 0xde, 0xad)))
	require.Equal(t, ntpRequest, p)

	require.Error(t, p.UnmarshalBinary(b[:PacketSizeBytes-1]))
}

func TestPacketSettings(t *testing.T) {
	require.Equal(t, uint8(3), ntpRequest.LeapIndicator())
	require.Equal(t, uint8(4), ntpRequest.Version())
	require.Equal(t, uint8(3), ntpRequest.Mode())
}

func TestValidSettingsFormat(t *testing.T) {
	cases := []struct {
		settings uint8
		valid    bool
	}{
		{settings: 0x1b, valid: true},  // LI 0, VN 3, client
		{settings: 0xe3, valid: true},  // LI 3, VN 4, client
		{settings: 0x0b, valid: true},  // LI 0, VN 1, client
		{settings: 0x1c, valid: false}, // server mode
		{settings: 0x03, valid: false}, // VN 0
		{settings: 0x2b, valid: false}, // VN 5
		{settings: 0x5b, valid: false}, // LI 1
	}
	for _, c := range cases {
		p := &Packet{Settings: c.settings}
		require.Equal(t, c.valid, p.ValidSettingsFormat(), "settings 0x%x", c.settings)
	}
}

func TestNTPSeconds(t *testing.T) {
	require.Equal(t, uint32(2208988800), NTPSeconds(0))
	require.Equal(t, uint32(3908988800), NTPSeconds(1700000000))
	require.Equal(t, calendar.Time(1700000000), ClockSeconds(3908988800))
	// NTP era 0 ends in 2036
	require.Equal(t, uint32(0), NTPSeconds(2085978496))
}

func TestConfigValidate(t *testing.T) {
	c := Config{Address: DefaultAddress, Stratum: DefaultStratum, RefID: DefaultRefID}
	require.NoError(t, c.Validate())

	bad := c
	bad.Address = ""
	require.EqualError(t, bad.Validate(), "bad config: 'address' must be set")
	bad = c
	bad.Stratum = 16
	require.Error(t, bad.Validate())
	bad = c
	bad.DSCP = 64
	require.EqualError(t, bad.Validate(), "bad config: 'dscp' must be between 0 and 63")
	bad = c
	bad.RefID = "TOOLONG"
	require.Error(t, bad.Validate())
}

func TestFillStaticHeaders(t *testing.T) {
	s := New(Config{Stratum: 3, RefID: "GPS"}, nil, nil)
	response := &Packet{}
	s.fillStaticHeaders(response)
	require.Equal(t, uint8(3), response.Stratum)
	require.Equal(t, int8(0), response.Precision)
	require.Equal(t, uint32(0), response.RootDelay)
	require.Equal(t, uint32(65536), response.RootDispersion)
	require.Equal(t, binary.BigEndian.Uint32([]byte("GPS ")), response.ReferenceID)
}

func TestGenerateResponse(t *testing.T) {
	response := &Packet{}
	generateResponse(1700000123, clock.StatusSet, ntpRequest, response)

	require.Equal(t, uint8(0), response.LeapIndicator())
	require.Equal(t, uint8(4), response.Version())
	require.Equal(t, uint8(modeServer), response.Mode())
	require.Equal(t, int8(3), response.Poll)
	require.Equal(t, NTPSeconds(1700000000), response.RefTimeSec)
	require.Equal(t, ntpRequest.TxTimeSec, response.OrigTimeSec)
	require.Equal(t, ntpRequest.TxTimeFrac, response.OrigTimeFrac)
	require.Equal(t, NTPSeconds(1700000123), response.RxTimeSec)
	require.Equal(t, NTPSeconds(1700000123), response.TxTimeSec)
	require.Equal(t, uint32(0), response.TxTimeFrac)
}

func TestGenerateResponseUnsynchronised(t *testing.T) {
	for _, status := range []clock.Status{clock.StatusNotSet, clock.StatusNeedsSync} {
		response := &Packet{}
		generateResponse(100, status, &Packet{Settings: 0x1b}, response)
		require.Equal(t, uint8(liAlarmCondition), response.LeapIndicator(), status.String())
		require.Equal(t, uint8(3), response.Version())
	}
}

func exchange(t *testing.T, addr net.Addr, request []byte) *Packet {
	conn, err := net.Dial("udp", addr.String())
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write(request)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, PacketSizeBytes)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	response := &Packet{}
	require.NoError(t, response.UnmarshalBinary(buf[:n]))
	return response
}

func TestServe(t *testing.T) {
	c := &fixedClock{now: 1700000000, status: clock.StatusSet}
	stats := &countingStats{}
	s := New(Config{Address: "127.0.0.1:0", Stratum: DefaultStratum, RefID: DefaultRefID}, c, stats)
	require.Nil(t, s.Addr())
	require.NoError(t, s.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx) }()

	// garbage is counted and dropped
	conn, err := net.Dial("udp", s.Addr().String())
	require.NoError(t, err)
	_, err = conn.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	server := &Packet{Settings: 0x1c}
	b, err := server.MarshalBinary()
	require.NoError(t, err)
	_, err = conn.Write(b)
	require.NoError(t, err)
	conn.Close()

	b, err = ntpRequest.MarshalBinary()
	require.NoError(t, err)
	response := exchange(t, s.Addr(), b)
	require.Equal(t, uint8(0), response.LeapIndicator())
	require.Equal(t, uint8(DefaultStratum), response.Stratum)
	require.Equal(t, NTPSeconds(1700000000), response.TxTimeSec)
	require.Equal(t, ntpRequest.TxTimeSec, response.OrigTimeSec)

	c.Lock()
	c.status = clock.StatusNeedsSync
	c.Unlock()
	response = exchange(t, s.Addr(), b)
	require.Equal(t, uint8(liAlarmCondition), response.LeapIndicator())

	cancel()
	require.NoError(t, <-errCh)

	require.Equal(t, int64(1), stats.get(CounterReadError))
	require.Equal(t, int64(3), stats.get(CounterRequests))
	require.Equal(t, int64(1), stats.get(CounterInvalidFormat))
	require.Equal(t, int64(2), stats.get(CounterResponses))
}

func TestServeListenError(t *testing.T) {
	s := New(Config{Address: "not an address"}, &fixedClock{}, nil)
	require.Error(t, s.Serve(context.Background()))
}
