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
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// enableDSCP sets the DSCP bits of packets sent from conn
func enableDSCP(conn net.PacketConn, dscp int) error {
	udp, ok := conn.(*net.UDPConn)
	if !ok {
		return fmt.Errorf("dscp requires a UDP connection, got %T", conn)
	}
	raw, err := udp.SyscallConn()
	if err != nil {
		return err
	}
	local, _ := udp.LocalAddr().(*net.UDPAddr)
	var serr error
	err = raw.Control(func(fd uintptr) {
		if local != nil && local.IP.To4() != nil {
			serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TOS, dscp<<2)
		} else {
			serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_TCLASS, dscp<<2)
		}
	})
	if err != nil {
		return err
	}
	if serr != nil {
		return fmt.Errorf("setting dscp %d: %w", dscp, serr)
	}
	return nil
}
