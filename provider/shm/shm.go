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
Package shm implements a sync provider reading the NTP shared memory
reference clock segment (ntpd refclock_shm), as written by gpsd, chrony
or a PTP daemon.
*/
package shm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/softclock/calendar"
)

// DefaultKey is the key of the first NTP SHM segment
// http://doc.ntp.org/current-stable/drivers/driver28.html
const DefaultKey = 0x4e545030

// SegmentSize is the size of the C struct shmTime
const SegmentSize = 96

// Segment mirrors struct shmTime of ntpd/refclock_shm.c, padding included
type Segment struct {
	Mode                 int32
	Count                int32
	ClockTimeStampSec    int64
	ClockTimeStampUSec   int32
	_                    int32
	ReceiveTimeStampSec  int64
	ReceiveTimeStampUSec int32
	Leap                 int32
	Precision            int32
	Nsamples             int32
	Valid                int32
	ClockTimeStampNSec   uint32
	ReceiveTimeStampNSec uint32
	Dummy                [8]int32
	_                    int32
}

var (
	errNoSample = errors.New("no valid sample")
	errTornRead = errors.New("segment changed while reading")
)

// copySegment copies a live segment
var copySegment = func(dst, src []byte) { copy(dst, src) }

func parseSegment(b []byte) (*Segment, error) {
	if len(b) < SegmentSize {
		return nil, fmt.Errorf("segment too short: %d bytes", len(b))
	}
	s := &Segment{}
	if err := binary.Read(bytes.NewReader(b[:SegmentSize]), binary.NativeEndian, s); err != nil {
		return nil, err
	}
	return s, nil
}

func liveCount(live []byte) int32 {
	return int32(binary.NativeEndian.Uint32(live[4:8]))
}

// snapshot copies a segment the writer may be updating. In mode 1 the
// writer bumps Count around every update, so a copy during which Count
// moved mixes two samples and is dropped.
func snapshot(live []byte) (*Segment, error) {
	if len(live) < SegmentSize {
		return nil, fmt.Errorf("segment too short: %d bytes", len(live))
	}
	before := liveCount(live)
	buf := make([]byte, SegmentSize)
	copySegment(buf, live[:SegmentSize])
	s, err := parseSegment(buf)
	if err != nil {
		return nil, err
	}
	if s.Mode == 1 && (s.Count != before || liveCount(live) != before) {
		return nil, errTornRead
	}
	return s, nil
}

// ClockTimeStamp returns the reference clock time
func (s *Segment) ClockTimeStamp() time.Time {
	return time.Unix(s.ClockTimeStampSec, int64(s.ClockTimeStampNSec))
}

// ReceiveTimeStamp returns the system time the sample was taken at
func (s *Segment) ReceiveTimeStamp() time.Time {
	return time.Unix(s.ReceiveTimeStampSec, int64(s.ReceiveTimeStampNSec))
}

// Reading returns the reference clock time at now: the sample's clock
// time moved forward by how long ago it was received. Samples received
// more than maxAge away from now are rejected, as a stalled writer leaves
// its last sample marked valid.
func (s *Segment) Reading(now time.Time, maxAge time.Duration) (calendar.Time, error) {
	if s.Valid == 0 {
		return 0, errNoSample
	}
	received := s.ReceiveTimeStamp()
	age := now.Sub(received)
	if age > maxAge || age < -maxAge {
		return 0, fmt.Errorf("sample received at %v is %v old, limit is %v", received, age, maxAge)
	}
	return calendar.FromTime(now.Add(s.ClockTimeStamp().Sub(received))), nil
}

// DefaultMaxAge matches the default sync interval
const DefaultMaxAge = 5 * time.Minute

// Provider reads the segment identified by Key
type Provider struct {
	Key int
	// MaxAge bounds the age of an accepted sample. 0 means DefaultMaxAge
	MaxAge time.Duration
	// Now overrides time.Now, used in tests
	Now func() time.Time
}

// New returns a Provider for the first NTP SHM segment
func New() *Provider {
	return &Provider{Key: DefaultKey, MaxAge: DefaultMaxAge}
}

// ReadTime returns the reference clock seconds, or 0 when the segment is
// missing, invalid or stale
func (p *Provider) ReadTime() calendar.Time {
	s, err := Read(p.Key)
	if err != nil {
		log.Warningf("shm provider: %v", err)
		return 0
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	maxAge := p.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	t, err := s.Reading(now(), maxAge)
	if err != nil {
		log.Warningf("shm provider: segment 0x%x: %v", p.Key, err)
		return 0
	}
	return t
}
