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

import "testing"

func initPic(io PortIO) *Pic {
	return SendICW1(io, EdgeTriggered).SendICW2AndICW3(0x20, 0x28).SendICW4()
}

func TestSendEOI(t *testing.T) {
	m := &mockPort{}
	pic := initPic(m)
	m.writes = nil

	pic.SendEOI()
	expectWrites(t, m.writes, []portOp{
		{SlaveCommandPort, 0b0010_0000},
		{MasterCommandPort, 0b0010_0000},
	})
}

func TestSendEOIToMaster(t *testing.T) {
	m := &mockPort{}
	pic := initPic(m)
	m.writes = nil

	pic.SendEOIToMaster()
	expectWrites(t, m.writes, []portOp{
		{MasterCommandPort, 0b0010_0000},
	})
}

func TestMasks(t *testing.T) {
	l := newLoopPort()
	pic := initPic(l)

	pic.SetMasterMask(0xFF)
	if got := pic.MasterMask(); got != 0xFF {
		t.Errorf("master mask: got %#02x, want 0xff", got)
	}

	pic.SetSlaveMask(0xAA)
	if got := pic.SlaveMask(); got != 0xAA {
		t.Errorf("slave mask: got %#02x, want 0xaa", got)
	}

	// Mask accesses are unordered and repeatable.
	pic.SetMasterMask(0x00)
	pic.SetSlaveMask(0x55)
	pic.SetMasterMask(0xFD)
	if got := pic.MasterMask(); got != 0xFD {
		t.Errorf("master mask: got %#02x, want 0xfd", got)
	}
	if got := pic.SlaveMask(); got != 0x55 {
		t.Errorf("slave mask: got %#02x, want 0x55", got)
	}
}

func TestMasksAEOI(t *testing.T) {
	l := newLoopPort()
	pic := SendICW1(l, EdgeTriggered).SendICW2AndICW3(0x20, 0x28).SendICW4AEOI()

	pic.SetMasterMask(0xFB)
	pic.SetSlaveMask(0xFF)
	if got := pic.MasterMask(); got != 0xFB {
		t.Errorf("master mask: got %#02x, want 0xfb", got)
	}
	if got := pic.SlaveMask(); got != 0xFF {
		t.Errorf("slave mask: got %#02x, want 0xff", got)
	}
}
