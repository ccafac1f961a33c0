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

// Package i8259 drives the cascaded pair of Intel 8259A Programmable
// Interrupt Controllers found in PC/AT compatible machines.
//
// The pair is programmed through four fixed I/O ports with a mandatory
// four step initialization handshake (ICW1-ICW4) followed by operation
// commands (OCW). The types in this package enforce the handshake
// order: each step surrenders the port capability to the next value
// and any use of a stale value panics. Register reads are gated the
// same way, behind an explicit OCW3 select step.
//
// See http://pdos.csail.mit.edu/6.828/2005/readings/hardware/8259A.pdf
// and https://wiki.osdev.org/8259_PIC for the hardware details.
package i8259

// PortIO is the caller supplied capability to access the controller
// ports. Implementations perform the actual port I/O instruction or
// the platform equivalent. Reads and writes are synchronous and, at
// this abstraction level, cannot fail.
type PortIO interface {
	In(port uint16) byte
	Out(port uint16, data byte)
}

// Fixed port addresses of the controller pair. A0 selects between the
// command port (A0=0) and the data port (A0=1) of each chip.
const (
	MasterCommandPort uint16 = 0x20
	MasterDataPort    uint16 = 0x21
	SlaveCommandPort  uint16 = 0xA0
	SlaveDataPort     uint16 = 0xA1
)

// picMask carries the port capability for an operating state and
// provides the interrupt mask accessors every operating state shares.
// The capability moves between owners via take and restore.
type picMask struct {
	io PortIO
}

func (m *picMask) port() PortIO {
	if m.io == nil {
		panic("i8259: port capability moved")
	}
	return m.io
}

func (m *picMask) take() PortIO {
	io := m.port()
	m.io = nil
	return io
}

func (m *picMask) restore(io PortIO) {
	m.io = io
}

// SetMasterMask writes the master interrupt mask register. Bit i set
// disables IRQ i. Masking less than everything during shutdown can
// produce spurious interrupts; that is the caller's problem, see
// https://wiki.osdev.org/8259_PIC#Spurious_IRQs
func (m *picMask) SetMasterMask(mask byte) {
	m.port().Out(MasterDataPort, mask)
}

// SetSlaveMask writes the slave interrupt mask register. Bit i set
// disables IRQ 8+i.
func (m *picMask) SetSlaveMask(mask byte) {
	m.port().Out(SlaveDataPort, mask)
}

// MasterMask reads back the master interrupt mask register.
func (m *picMask) MasterMask() byte {
	return m.port().In(MasterDataPort)
}

// SlaveMask reads back the slave interrupt mask register.
func (m *picMask) SlaveMask() byte {
	return m.port().In(SlaveDataPort)
}
