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

// Package machine models the 8259A pair wired the PC/AT way: the slave
// INT output on the master's line 2. The model answers port I/O like
// the hardware does, which makes it a loopback target for the driver
// and the backend of the front panel and trace tools.
package machine

import (
	"errors"

	"github.com/andreas-jonsson/i8259"
	"github.com/andreas-jonsson/i8259/raw"
)

var ErrNoInterrupts = errors.New("no interrupts")

const cascadeLine = 2

// Command word views, named after the bits they test.

type icw1 byte

func (i icw1) needsICW4() bool  { return i&0b0000_0001 != 0 }
func (i icw1) singleMode() bool { return i&0b0000_0010 != 0 }

type icw4 byte

func (i icw4) autoEOI() bool { return i&0b0000_0010 != 0 }

type ocw2 byte

func (o ocw2) command() byte { return byte(o) & 0b1110_0000 }

type ocw3 byte

func (o ocw3) readRegister() bool  { return o&0b0000_0010 != 0 }
func (o ocw3) readInService() bool { return o&0b0000_0001 != 0 }

// chip is one 8259A. Zero value is a blank chip that still answers
// port traffic, like hardware before the BIOS gets to it.
type chip struct {
	icwStep    byte // 0 when operational, 2..4 while expecting that word
	icw        [5]byte
	maskReg    byte // IMR
	requestReg byte // IRR
	serviceReg byte // ISR
	readISR    bool // OCW3 latch, IRR when clear
}

func (c *chip) reset() {
	*c = chip{}
}

func (c *chip) writeCommand(v byte) {
	switch {
	case v&raw.ICW1Identifier != 0:
		// ICW1 restarts the whole handshake and clears the mask.
		c.reset()
		c.icw[1] = v
		c.icwStep = 2
	case v&0b1001_1000 == raw.OCW3Identifier:
		if w := ocw3(v); w.readRegister() {
			c.readISR = w.readInService()
		}
	case ocw2(v).command() == raw.OCW2NonSpecificEOI:
		c.retire()
	}
}

func (c *chip) writeData(v byte) {
	switch c.icwStep {
	case 2:
		c.icw[2] = v
		c.icwStep = 3
		if icw1(c.icw[1]).singleMode() {
			c.icwStep = 4
		}
	case 3:
		c.icw[3] = v
		c.icwStep = 4
	case 4:
		c.icw[4] = v
		c.icwStep = 0
		return
	default:
		c.maskReg = v
		return
	}
	if c.icwStep == 4 && !icw1(c.icw[1]).needsICW4() {
		c.icwStep = 0
	}
}

func (c *chip) readCommand() byte {
	if c.readISR {
		return c.serviceReg
	}
	return c.requestReg
}

func (c *chip) readData() byte {
	return c.maskReg
}

func (c *chip) raise(n int) {
	c.requestReg |= 1 << n
}

// pending returns the highest priority unmasked request. Line 0 wins;
// the model does not rotate priorities.
func (c *chip) pending() (int, bool) {
	has := c.requestReg &^ c.maskReg
	if has == 0 {
		return 0, false
	}
	for i := 0; i < 8; i++ {
		if has&(1<<i) != 0 {
			return i, true
		}
	}
	return 0, false
}

func (c *chip) ack(n int) {
	c.requestReg &^= 1 << n
	if !icw4(c.icw[4]).autoEOI() {
		c.serviceReg |= 1 << n
	}
}

// retire drops the highest priority in-service bit, which is what a
// non-specific EOI addresses.
func (c *chip) retire() {
	for i := 0; i < 8; i++ {
		if c.serviceReg&(1<<i) != 0 {
			c.serviceReg &^= 1 << i
			return
		}
	}
}

func (c *chip) vector(n int) int {
	return int(c.icw[2]) + n
}

// Pair is the cascaded master/slave pair behind the four fixed ports.
type Pair struct {
	master, slave chip
}

var _ i8259.PortIO = (*Pair)(nil)

func New() *Pair {
	return &Pair{}
}

func (p *Pair) Name() string {
	return "Programmable Interrupt Controller pair (Intel 8259A)"
}

func (p *Pair) Reset() {
	p.master.reset()
	p.slave.reset()
}

func (p *Pair) In(port uint16) byte {
	switch port {
	case i8259.MasterCommandPort:
		return p.master.readCommand()
	case i8259.MasterDataPort:
		return p.master.readData()
	case i8259.SlaveCommandPort:
		return p.slave.readCommand()
	case i8259.SlaveDataPort:
		return p.slave.readData()
	}
	return 0
}

func (p *Pair) Out(port uint16, data byte) {
	switch port {
	case i8259.MasterCommandPort:
		p.master.writeCommand(data)
	case i8259.MasterDataPort:
		p.master.writeData(data)
	case i8259.SlaveCommandPort:
		p.slave.writeCommand(data)
	case i8259.SlaveDataPort:
		p.slave.writeData(data)
	}
}

// Raise latches an interrupt request on line 0-15. Slave lines assert
// the master's cascade input as well.
func (p *Pair) Raise(line int) {
	if line < 0 || line > 15 {
		panic("machine: interrupt line out of range")
	}
	if line < 8 {
		p.master.raise(line)
		return
	}
	p.slave.raise(line - 8)
	p.master.raise(cascadeLine)
}

// Pending reports whether an unmasked request is waiting.
func (p *Pair) Pending() bool {
	_, ok := p.master.pending()
	return ok
}

// Ack runs the interrupt acknowledge cycle: the winning request moves
// from request to in-service (unless AEOI retires it on the spot) and
// the programmed vector comes back. Cascade requests resolve through
// the slave. Returns ErrNoInterrupts when nothing unmasked is pending.
func (p *Pair) Ack() (int, error) {
	n, ok := p.master.pending()
	if !ok {
		return 0, ErrNoInterrupts
	}
	p.master.ack(n)
	if n != cascadeLine {
		return p.master.vector(n), nil
	}

	sn, ok := p.slave.pending()
	if !ok {
		// The request went away between cascade and acknowledge.
		// Real hardware answers with the slave's line 7 and latches
		// no in-service bit.
		return p.slave.vector(7), nil
	}
	p.slave.ack(sn)
	if _, more := p.slave.pending(); more {
		// The slave INT output stays high while it has more to
		// deliver, so the cascade line reasserts.
		p.master.raise(cascadeLine)
	}
	return p.slave.vector(sn), nil
}
