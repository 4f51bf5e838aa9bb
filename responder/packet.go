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
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/facebook/softclock/calendar"
)

// PacketSizeBytes is the size of an NTP packet without extensions
const PacketSizeBytes = 48

// secondsToUnix is the difference between the NTP and Unix epochs
const secondsToUnix = 2208988800

// Packet is an NTPv4 packet (RFC 5905, section 7.3).
// Settings holds LI (2 bits), VN (3 bits) and Mode (3 bits).
type Packet struct {
	Settings       uint8  // leap indicator, version number and mode
	Stratum        uint8  // stratum
	Poll           int8   // poll. Power of 2
	Precision      int8   // precision. Power of 2
	RootDelay      uint32 // total delay to the reference clock
	RootDispersion uint32 // total dispersion to the reference clock
	ReferenceID    uint32 // identifier of server or a reference clock
	RefTimeSec     uint32 // last time local clock was updated sec
	RefTimeFrac    uint32 // last time local clock was updated frac
	OrigTimeSec    uint32 // client time sec
	OrigTimeFrac   uint32 // client time frac
	RxTimeSec      uint32 // receive time sec
	RxTimeFrac     uint32 // receive time frac
	TxTimeSec      uint32 // transmit time sec
	TxTimeFrac     uint32 // transmit time frac
}

const (
	liNoWarning      = 0
	liAlarmCondition = 3
	vnFirst          = 1
	vnLast           = 4
	modeClient       = 3
	modeServer       = 4
)

// LeapIndicator returns the LI bits
func (p *Packet) LeapIndicator() uint8 {
	return p.Settings >> 6
}

// Version returns the VN bits
func (p *Packet) Version() uint8 {
	return (p.Settings >> 3) & 0x7
}

// Mode returns the mode bits
func (p *Packet) Mode() uint8 {
	return p.Settings & 0x7
}

// ValidSettingsFormat verifies that the request is a client request:
// LI is 0 or 3, VN is 1 to 4 and mode is 3
func (p *Packet) ValidSettingsFormat() bool {
	l := p.LeapIndicator()
	v := p.Version()
	if l != liNoWarning && l != liAlarmCondition {
		return false
	}
	return v >= vnFirst && v <= vnLast && p.Mode() == modeClient
}

// MarshalBinary converts Packet to []bytes
func (p *Packet) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	err := binary.Write(&b, binary.BigEndian, p)
	return b.Bytes(), err
}

// UnmarshalBinary fills Packet from bytes. Extension fields are ignored.
func (p *Packet) UnmarshalBinary(b []byte) error {
	if len(b) < PacketSizeBytes {
		return fmt.Errorf("packet too short: %d bytes", len(b))
	}
	return binary.Read(bytes.NewReader(b[:PacketSizeBytes]), binary.BigEndian, p)
}

// NTPSeconds converts clock seconds to NTP era 0 seconds
func NTPSeconds(t calendar.Time) uint32 {
	return uint32(t) + secondsToUnix
}

// ClockSeconds converts NTP era 0 seconds to clock seconds
func ClockSeconds(sec uint32) calendar.Time {
	return calendar.Time(sec - secondsToUnix)
}
