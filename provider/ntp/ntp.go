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

// Package ntp implements a sync provider querying an SNTP server.
package ntp

import (
	"fmt"
	"time"

	"github.com/beevik/ntp"
	log "github.com/sirupsen/logrus"

	"github.com/facebook/softclock/calendar"
)

// DefaultTimeout bounds a single query
const DefaultTimeout = 5 * time.Second

// Provider queries Server once per reading
type Provider struct {
	// Server is "host" or "host:port"
	Server  string
	Timeout time.Duration
}

// New returns a Provider for server with the default timeout
func New(server string) *Provider {
	return &Provider{Server: server, Timeout: DefaultTimeout}
}

// Query sends one request and returns the validated response
func (p *Provider) Query() (*ntp.Response, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	resp, err := ntp.QueryWithOptions(p.Server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", p.Server, err)
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid response from %s: %w", p.Server, err)
	}
	return resp, nil
}

// ReadTime returns the server time corrected by half the round trip, or 0 on any error
func (p *Provider) ReadTime() calendar.Time {
	resp, err := p.Query()
	if err != nil {
		log.Warningf("ntp provider: %v", err)
		return 0
	}
	return Seconds(resp)
}

// Seconds returns the server transmit time moved forward by half the round trip
func Seconds(resp *ntp.Response) calendar.Time {
	return calendar.FromTime(resp.Time.Add(resp.RTT / 2))
}
