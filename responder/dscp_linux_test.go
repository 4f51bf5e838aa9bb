//go:build linux

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
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func sockoptInt(t *testing.T, conn net.PacketConn, level, opt int) int {
	raw, err := conn.(*net.UDPConn).SyscallConn()
	require.NoError(t, err)
	var v int
	var serr error
	require.NoError(t, raw.Control(func(fd uintptr) {
		v, serr = unix.GetsockoptInt(int(fd), level, opt)
	}))
	require.NoError(t, serr)
	return v
}

func TestListenDSCP(t *testing.T) {
	s := New(Config{Address: "127.0.0.1:0", Stratum: 2, DSCP: 46}, &fixedClock{}, nil)
	require.NoError(t, s.Listen())
	defer s.conn.Close()
	require.Equal(t, 46<<2, sockoptInt(t, s.conn, unix.IPPROTO_IP, unix.IP_TOS))
}

func TestEnableDSCPv6(t *testing.T) {
	conn, err := net.ListenPacket("udp6", "[::1]:0")
	if err != nil {
		t.Skip("no ipv6")
	}
	defer conn.Close()
	require.NoError(t, enableDSCP(conn, 42))
	require.Equal(t, 42<<2, sockoptInt(t, conn, unix.IPPROTO_IPV6, unix.IPV6_TCLASS))
}
