/*
Copyright (c) 2019-2021 Andreas T Jonsson

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package portio

import (
	"fmt"
	"log"

	"golang.org/x/sys/unix"
)

// DevPort talks to physical hardware through the /dev/port character
// device. Opening it requires root or CAP_SYS_RAWIO.
type DevPort struct {
	fd int
}

func OpenDevPort() (*DevPort, error) {
	fd, err := unix.Open("/dev/port", unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open /dev/port: %v", err)
	}
	return &DevPort{fd}, nil
}

func (d *DevPort) In(port uint16) byte {
	var buf [1]byte
	if _, err := unix.Pread(d.fd, buf[:], int64(port)); err != nil {
		log.Panic(err)
	}
	return buf[0]
}

func (d *DevPort) Out(port uint16, data byte) {
	if _, err := unix.Pwrite(d.fd, []byte{data}, int64(port)); err != nil {
		log.Panic(err)
	}
}

func (d *DevPort) Close() error {
	return unix.Close(d.fd)
}
