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

func TestReadModeSelectWrites(t *testing.T) {
	m := &mockPort{}
	pic := initPic(m)
	m.writes = nil

	// Switching modes twice must produce four select writes. The
	// select byte is written on every entry, never remembered.
	pic = pic.EnterIRRMode().Exit()
	pic.EnterISRMode().Exit()

	expectWrites(t, m.writes, []portOp{
		{MasterCommandPort, 0b0000_1010},
		{SlaveCommandPort, 0b0000_1010},
		{MasterCommandPort, 0b0000_1011},
		{SlaveCommandPort, 0b0000_1011},
	})
}

func TestReadModeReads(t *testing.T) {
	m := &mockPort{reads: map[uint16][]byte{
		MasterCommandPort: {0x55},
		SlaveCommandPort:  {0xAA},
	}}
	rm := initPic(m).EnterIRRMode()

	if got := rm.ReadMaster(); got != 0x55 {
		t.Errorf("master: got %#02x, want 0x55", got)
	}
	if got := rm.ReadSlave(); got != 0xAA {
		t.Errorf("slave: got %#02x, want 0xaa", got)
	}
}

func TestReadModeMaskPassthrough(t *testing.T) {
	l := newLoopPort()
	rm := initPic(l).EnterIRRMode()

	rm.SetMasterMask(0xFF)
	if got := rm.MasterMask(); got != 0xFF {
		t.Errorf("master mask: got %#02x, want 0xff", got)
	}
	rm.SetSlaveMask(0x0F)
	if got := rm.SlaveMask(); got != 0x0F {
		t.Errorf("slave mask: got %#02x, want 0x0f", got)
	}
}

func TestReadModeOwnership(t *testing.T) {
	t.Run("ControllerLentOut", func(t *testing.T) {
		pic := initPic(&mockPort{})
		pic.EnterIRRMode()
		expectPanic(t, func() { pic.SetMasterMask(0) })
		expectPanic(t, func() { pic.SendEOI() })
	})
	t.Run("OverlayAfterExit", func(t *testing.T) {
		rm := initPic(&mockPort{}).EnterISRMode()
		rm.Exit()
		expectPanic(t, func() { rm.ReadMaster() })
		expectPanic(t, func() { rm.Exit() })
	})
	t.Run("ExitRestores", func(t *testing.T) {
		l := newLoopPort()
		pic := initPic(l)
		if got := pic.EnterIRRMode().Exit(); got != pic {
			t.Fatal("exit returned a different controller")
		}
		pic.SetMasterMask(0xFE)
		if got := pic.MasterMask(); got != 0xFE {
			t.Errorf("master mask: got %#02x, want 0xfe", got)
		}
		pic.SendEOI()
	})
	t.Run("AEOIRoundTrip", func(t *testing.T) {
		l := newLoopPort()
		pic := SendICW1(l, LevelTriggered).SendICW2AndICW3(0x78, 0x70).SendICW4AEOI()
		pic = pic.EnterISRMode().Exit()
		pic.SetSlaveMask(0xBF)
		if got := pic.SlaveMask(); got != 0xBF {
			t.Errorf("slave mask: got %#02x, want 0xbf", got)
		}
	})
}
