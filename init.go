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

package i8259

import (
	"fmt"

	"github.com/andreas-jonsson/i8259/raw"
)

// TriggerMode selects how the controllers latch interrupt lines. The
// value is the complete ICW1 byte, "ICW4 needed" bit included. Level
// triggering is only used by IBM PS/2 class hardware.
type TriggerMode byte

const (
	EdgeTriggered  TriggerMode = TriggerMode(raw.ICW1ICW4Needed)
	LevelTriggered TriggerMode = TriggerMode(raw.ICW1LevelTriggered | raw.ICW1ICW4Needed)
)

// stage holds the port capability while initialization is underway.
// Each step takes the capability out of its receiver so a finished
// step cannot run twice.
type stage struct {
	io PortIO
}

func (s *stage) take() PortIO {
	if s.io == nil {
		panic("i8259: initialization step already performed")
	}
	io := s.io
	s.io = nil
	return io
}

// SendICW1 starts initialization of both controllers and is the entry
// point of the driver. The capability hands over to the returned value;
// the caller must complete the remaining steps before anything useful
// can happen.
func SendICW1(io PortIO, mode TriggerMode) *ICW2AndICW3 {
	io.Out(MasterCommandPort, byte(mode))
	io.Out(SlaveCommandPort, byte(mode))
	return &ICW2AndICW3{stage{io}}
}

// ICW2AndICW3 is the state after ICW1: the controllers expect their
// vector offsets and the cascade wiring next.
type ICW2AndICW3 struct {
	stage
}

// SendICW2AndICW3 programs the vector offsets (ICW2) and the fixed
// PC/AT cascade topology (ICW3): the slave sits on the master's IRQ
// line 2.
//
// The controller fills the low three bits of an offset with the IRQ
// line number, so both offsets must have them clear. Panics before
// touching any port if either offset is misaligned.
func (s *ICW2AndICW3) SendICW2AndICW3(masterOffset, slaveOffset byte) *ICW4 {
	if masterOffset&^raw.ICW2OffsetMask != 0 {
		panic(fmt.Sprintf("i8259: master offset %#02x has low bits set", masterOffset))
	}
	if slaveOffset&^raw.ICW2OffsetMask != 0 {
		panic(fmt.Sprintf("i8259: slave offset %#02x has low bits set", slaveOffset))
	}

	io := s.take()
	io.Out(MasterDataPort, masterOffset)
	io.Out(SlaveDataPort, slaveOffset)
	io.Out(MasterDataPort, raw.ICW3SlaveOnIRQ2)
	io.Out(SlaveDataPort, raw.ICW3CascadeIdentity2)
	return &ICW4{stage{io}}
}

// ICW4 is the state after ICW2/ICW3: one word remains, selecting the
// end of interrupt mode the controllers operate in from now on.
type ICW4 struct {
	stage
}

// SendICW4 finishes initialization in manual end of interrupt mode.
// The returned controller must acknowledge every interrupt with an
// EOI command.
func (s *ICW4) SendICW4() *Pic {
	io := s.take()
	io.Out(MasterDataPort, raw.ICW4Mode8086)
	io.Out(SlaveDataPort, raw.ICW4Mode8086)
	return &Pic{picMask{io}}
}

// SendICW4AEOI finishes initialization in automatic end of interrupt
// mode: the hardware drops the in-service bit on its own when the
// interrupt is acknowledged. Note that some PC hardware does not
// support AEOI mode.
func (s *ICW4) SendICW4AEOI() *PicAEOI {
	icw4 := raw.ICW4Mode8086 | raw.ICW4AutoEOI
	io := s.take()
	io.Out(MasterDataPort, icw4)
	io.Out(SlaveDataPort, icw4)
	return &PicAEOI{picMask{io}}
}
