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

package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
	"github.com/facebook/softclock/provider/ntp"
	"github.com/facebook/softclock/responder"
)

func TestParseTimestamp(t *testing.T) {
	v, err := parseTimestamp("4294967295")
	require.NoError(t, err)
	require.Equal(t, calendar.Time(4294967295), v)

	_, err = parseTimestamp("4294967296")
	require.Error(t, err)
	_, err = parseTimestamp("-1")
	require.Error(t, err)
}

func TestDecomposeRun(t *testing.T) {
	var buf bytes.Buffer
	decomposeRun(&buf, 951782400)
	out := buf.String()
	require.Contains(t, out, "2000-02-29 00:00:00")
	require.Contains(t, out, "February")
	require.Contains(t, out, "Tuesday")
	require.Contains(t, out, "0 (12 AM)")
	require.Contains(t, out, "952214400")
}

func TestComposeTime(t *testing.T) {
	cases := []struct {
		args []string
		want calendar.Time
	}{
		{[]string{"1970", "1", "1"}, 0},
		{[]string{"2000", "2", "29"}, 951782400},
		{[]string{"0", "1", "1"}, 946684800},
		{[]string{"23", "11", "14", "22", "13", "20"}, 1700000000},
		{[]string{"2106", "2", "7", "6", "28", "15"}, 4294967295},
	}
	for _, c := range cases {
		got, err := composeTime(c.args)
		require.NoError(t, err, c.args)
		require.Equal(t, c.want, got, c.args)
	}

	_, err := composeTime([]string{"2000", "13", "1"})
	require.EqualError(t, err, "month 13 is out of range")
	_, err = composeTime([]string{"2000", "x", "1"})
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, composeRun(&buf, []string{"2000", "1", "1"}))
	require.Equal(t, "946684800\n", buf.String())
}

func TestFormatRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatRun(&buf, 0, "asctime", 0, time.Hour, false))
	require.Equal(t, "Thu Jan  1 00:00:00 1970\n", buf.String())

	buf.Reset()
	require.NoError(t, formatRun(&buf, 1700000000, "%Y-%m-%dT%H:%M:%S%z", 5*time.Hour+30*time.Minute, time.Hour, true))
	require.Equal(t, "2023-11-15T04:43:20+06:30\n", buf.String())

	require.Error(t, formatRun(&buf, 0, "", 15*time.Hour, 0, false))
}

type setClock struct {
	now calendar.Time
}

func (c *setClock) Now() calendar.Time { return c.now }

func (c *setClock) TimeStatus() clock.Status { return clock.StatusSet }

func TestQueryRun(t *testing.T) {
	s := responder.New(responder.Config{Address: "127.0.0.1:0", Stratum: 1, RefID: "TEST"}, &setClock{now: 1700000000}, nil)
	require.NoError(t, s.Listen())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Serve(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	var buf bytes.Buffer
	require.NoError(t, queryRun(&buf, &ntp.Provider{Server: s.Addr().String(), Timeout: 2 * time.Second}))
	require.Contains(t, buf.String(), okString)
	require.Contains(t, buf.String(), "stratum 1")
	require.Contains(t, buf.String(), "1700000000 2023-11-14 22:13:20")

	buf.Reset()
	require.Error(t, queryRun(&buf, &ntp.Provider{Server: "127.0.0.1:1", Timeout: 200 * time.Millisecond}))
	require.Contains(t, buf.String(), failString)
}
