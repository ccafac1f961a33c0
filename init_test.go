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

type portOp struct {
	port uint16
	data byte
}

// mockPort records every write and answers reads from scripted
// responses, zero when the script runs dry.
type mockPort struct {
	writes []portOp
	reads  map[uint16][]byte
}

func (m *mockPort) Out(port uint16, data byte) {
	m.writes = append(m.writes, portOp{port, data})
}

func (m *mockPort) In(port uint16) byte {
	if vals := m.reads[port]; len(vals) > 0 {
		m.reads[port] = vals[1:]
		return vals[0]
	}
	return 0
}

// loopPort plays back the last byte written to each port, which is how
// the real mask registers behave.
type loopPort struct {
	regs map[uint16]byte
}

func newLoopPort() *loopPort {
	return &loopPort{regs: make(map[uint16]byte)}
}

func (l *loopPort) Out(port uint16, data byte) { l.regs[port] = data }
func (l *loopPort) In(port uint16) byte        { return l.regs[port] }

func expectWrites(t *testing.T, got, want []portOp) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d writes, want %d: %v", len(got), len(want), got)
	}
	for i, op := range want {
		if got[i] != op {
			t.Errorf("write %d: got (%#02x, %#02x), want (%#02x, %#02x)",
				i, got[i].port, got[i].data, op.port, op.data)
		}
	}
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	fn()
}

func TestSendICW1(t *testing.T) {
	for _, tc := range []struct {
		name string
		mode TriggerMode
		want byte
	}{
		{"Edge", EdgeTriggered, 0b0001_0001},
		{"Level", LevelTriggered, 0b0001_1001},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := &mockPort{}
			SendICW1(m, tc.mode)
			expectWrites(t, m.writes, []portOp{
				{MasterCommandPort, tc.want},
				{SlaveCommandPort, tc.want},
			})
		})
	}
}

func TestSendICW2AndICW3(t *testing.T) {
	for master := 0; master < 256; master += 8 {
		for slave := 0; slave < 256; slave += 8 {
			m := &mockPort{}
			s := SendICW1(m, EdgeTriggered)
			m.writes = nil

			s.SendICW2AndICW3(byte(master), byte(slave))
			expectWrites(t, m.writes, []portOp{
				{MasterDataPort, byte(master)},
				{SlaveDataPort, byte(slave)},
				{MasterDataPort, 0b0000_0100},
				{SlaveDataPort, 0b0000_0010},
			})
		}
	}
}

func TestMisalignedOffsets(t *testing.T) {
	// Every combination of nonzero low bits must fault without a
	// single port write, master aligned, slave aligned or neither.
	check := func(t *testing.T, masterOffset, slaveOffset byte) {
		t.Helper()
		m := &mockPort{}
		s := SendICW1(m, EdgeTriggered)
		m.writes = nil

		expectPanic(t, func() { s.SendICW2AndICW3(masterOffset, slaveOffset) })
		if len(m.writes) != 0 {
			t.Errorf("offsets (%#02x, %#02x): %d writes leaked through",
				masterOffset, slaveOffset, len(m.writes))
		}
	}

	t.Run("Both", func(t *testing.T) {
		for mo := byte(1); mo < 8; mo++ {
			for so := byte(1); so < 8; so++ {
				check(t, 0x20|mo, 0x28|so)
			}
		}
	})
	t.Run("MasterOnly", func(t *testing.T) {
		for mo := byte(1); mo < 8; mo++ {
			check(t, 0x20|mo, 0x28)
		}
	})
	t.Run("SlaveOnly", func(t *testing.T) {
		for so := byte(1); so < 8; so++ {
			check(t, 0x20, 0x28|so)
		}
	})
}

func TestSendICW4(t *testing.T) {
	t.Run("Manual", func(t *testing.T) {
		m := &mockPort{}
		s := SendICW1(m, EdgeTriggered).SendICW2AndICW3(0x20, 0x28)
		m.writes = nil

		s.SendICW4()
		expectWrites(t, m.writes, []portOp{
			{MasterDataPort, 0b0000_0001},
			{SlaveDataPort, 0b0000_0001},
		})
	})
	t.Run("AEOI", func(t *testing.T) {
		m := &mockPort{}
		s := SendICW1(m, EdgeTriggered).SendICW2AndICW3(0x20, 0x28)
		m.writes = nil

		s.SendICW4AEOI()
		expectWrites(t, m.writes, []portOp{
			{MasterDataPort, 0b0000_0011},
			{SlaveDataPort, 0b0000_0011},
		})
	})
}

func TestFullInitSequence(t *testing.T) {
	m := &mockPort{}
	SendICW1(m, EdgeTriggered).SendICW2AndICW3(32, 40).SendICW4AEOI()

	expectWrites(t, m.writes, []portOp{
		{0x20, 0x11},
		{0xA0, 0x11},
		{0x21, 32},
		{0xA1, 40},
		{0x21, 0x04},
		{0xA1, 0x02},
		{0x21, 0x03},
		{0xA1, 0x03},
	})
}

func TestStageReuse(t *testing.T) {
	t.Run("ICW2AndICW3", func(t *testing.T) {
		s := SendICW1(&mockPort{}, EdgeTriggered)
		s.SendICW2AndICW3(0x20, 0x28)
		expectPanic(t, func() { s.SendICW2AndICW3(0x20, 0x28) })
	})
	t.Run("ICW4", func(t *testing.T) {
		s := SendICW1(&mockPort{}, EdgeTriggered).SendICW2AndICW3(0x20, 0x28)
		s.SendICW4()
		expectPanic(t, func() { s.SendICW4AEOI() })
	})
}
