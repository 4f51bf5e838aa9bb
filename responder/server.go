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
Package responder implements an SNTP server (RFC 4330) which serves the
soft clock's time to other hosts.

The soft clock only counts whole seconds, so every timestamp it sends has a
zero fraction. Until the clock is Set responses carry the "alarm" leap
indicator and clients must not synchronise to them.
*/
package responder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
)

// Counters reported to StatsServer
const (
	CounterRequests      = "responder.requests"
	CounterResponses     = "responder.responses"
	CounterInvalidFormat = "responder.invalidformat"
	CounterReadError     = "responder.readerror"
)

// Defaults for Config
const (
	DefaultAddress = ":123"
	DefaultStratum = 2
	DefaultRefID   = "SOFT"
)

// Config is the responder configuration
type Config struct {
	Address string `yaml:"address"`
	Stratum int    `yaml:"stratum"`
	RefID   string `yaml:"refid"`
	DSCP    int    `yaml:"dscp"` // 0 leaves the default
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("bad config: 'address' must be set")
	}
	if c.Stratum < 1 || c.Stratum > 15 {
		return fmt.Errorf("bad config: 'stratum' must be between 1 and 15")
	}
	if c.DSCP < 0 || c.DSCP > 63 {
		return fmt.Errorf("bad config: 'dscp' must be between 0 and 63")
	}
	if len(c.RefID) > 4 {
		return fmt.Errorf("bad config: 'refid' must be at most 4 characters")
	}
	return nil
}

// TimeSource is the clock served to clients
type TimeSource interface {
	Now() calendar.Time
	TimeStatus() clock.Status
}

// StatsServer is a stats server interface
type StatsServer interface {
	UpdateCounterBy(key string, count int64)
}

type noopStats struct{}

func (noopStats) UpdateCounterBy(string, int64) {}

// Server answers SNTP client requests
type Server struct {
	Config Config
	Clock  TimeSource
	Stats  StatsServer
	conn   net.PacketConn
}

// New returns a Server for cfg serving c. Nil stats are allowed.
func New(cfg Config, c TimeSource, stats StatsServer) *Server {
	if stats == nil {
		stats = noopStats{}
	}
	return &Server{Config: cfg, Clock: c, Stats: stats}
}

// Listen opens the UDP socket
func (s *Server) Listen() error {
	conn, err := net.ListenPacket("udp", s.Config.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Config.Address, err)
	}
	if s.Config.DSCP != 0 {
		if err := enableDSCP(conn, s.Config.DSCP); err != nil {
			conn.Close()
			return err
		}
	}
	s.conn = conn
	log.Infof("responder: listening on %s", conn.LocalAddr())
	return nil
}

// Addr returns the listening address, nil before Listen
func (s *Server) Addr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Serve answers requests until ctx is done. Listen is called if it was not.
func (s *Server) Serve(ctx context.Context) error {
	if s.conn == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		s.conn.Close()
	}()

	buf := make([]byte, 1024)
	request := &Packet{}
	response := &Packet{}
	s.fillStaticHeaders(response)
	for {
		n, addr, err := s.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Errorf("responder: failed to read packet on %s: %v", s.conn.LocalAddr(), err)
			s.Stats.UpdateCounterBy(CounterReadError, 1)
			continue
		}
		if err := request.UnmarshalBinary(buf[:n]); err != nil {
			log.Debugf("responder: failed to parse ntp packet: %v", err)
			s.Stats.UpdateCounterBy(CounterReadError, 1)
			continue
		}
		s.Stats.UpdateCounterBy(CounterRequests, 1)
		s.serve(addr, request, response)
	}
}

func (s *Server) serve(addr net.Addr, request, response *Packet) {
	if !request.ValidSettingsFormat() {
		log.Debugf("responder: invalid query, discarding: %+v", request)
		s.Stats.UpdateCounterBy(CounterInvalidFormat, 1)
		return
	}
	status := s.Clock.TimeStatus()
	generateResponse(s.Clock.Now(), status, request, response)
	b, err := response.MarshalBinary()
	if err != nil {
		log.Errorf("responder: failed to encode %+v: %v", response, err)
		return
	}
	if _, err := s.conn.WriteTo(b, addr); err != nil {
		log.Debugf("responder: failed to respond to %s: %v", addr, err)
		return
	}
	s.Stats.UpdateCounterBy(CounterResponses, 1)
}

// fillStaticHeaders pre-sets all the headers which never change
func (s *Server) fillStaticHeaders(response *Packet) {
	response.Stratum = uint8(s.Config.Stratum)
	// one second resolution
	response.Precision = 0
	response.RootDelay = 0
	// Root dispersion, 16.16 fixed point, 1s
	response.RootDispersion = 1 << 16
	response.ReferenceID = binary.BigEndian.Uint32([]byte(fmt.Sprintf("%-4.4s", s.Config.RefID)))
}

// generateResponse fills the per request fields of response
func generateResponse(now calendar.Time, status clock.Status, request, response *Packet) {
	li := uint8(liNoWarning)
	if status != clock.StatusSet {
		li = liAlarmCondition
	}
	response.Settings = li<<6 | request.Settings&0x38 | modeServer

	response.Poll = request.Poll

	// The time of the last set is not tracked, so the reference time moves
	// once per 1000s which clients accept as consistent
	response.RefTimeSec = NTPSeconds(now / 1000 * 1000)
	response.RefTimeFrac = 0

	response.OrigTimeSec = request.TxTimeSec
	response.OrigTimeFrac = request.TxTimeFrac

	response.RxTimeSec = NTPSeconds(now)
	response.RxTimeFrac = 0
	response.TxTimeSec = NTPSeconds(now)
	response.TxTimeFrac = 0
}
