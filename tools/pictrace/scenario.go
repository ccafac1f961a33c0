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

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/andreas-jonsson/i8259"
	"github.com/andreas-jonsson/i8259/machine"
	"github.com/andreas-jonsson/i8259/portio"
	"github.com/spf13/afero"
)

type scenario struct {
	Name         string
	AutoEOI      bool
	Level        bool
	MasterOffset byte
	SlaveOffset  byte
	Steps        []step
}

type step struct {
	Action string
	Line   int
	Mask   byte
	Expect *int
}

// traceEvent is one line of trace output. Vector is -1 for everything
// but acknowledge steps.
type traceEvent struct {
	Step          int
	Action        string
	Vector        int
	Master, Slave byte
	Ops           []portio.Op
}

type controller interface {
	SetMasterMask(mask byte)
	SetSlaveMask(mask byte)
	MasterMask() byte
	SlaveMask() byte
}

func loadScenario(name string) (*scenario, error) {
	data, err := afero.ReadFile(fileSystem, name)
	if err != nil {
		return nil, err
	}

	var sc scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("could not parse scenario: %v", err)
	}
	if sc.MasterOffset == 0 && sc.SlaveOffset == 0 {
		sc.MasterOffset, sc.SlaveOffset = 0x20, 0x28
	}
	return &sc, nil
}

func runScenario(sc *scenario, backend i8259.PortIO, w io.Writer) error {
	if sc.MasterOffset&7 != 0 || sc.SlaveOffset&7 != 0 {
		return fmt.Errorf("vector offsets %#02x/%#02x are not multiples of 8", sc.MasterOffset, sc.SlaveOffset)
	}

	rec := portio.NewRecorder(backend)
	pair, simulated := backend.(*machine.Pair)

	mode := i8259.EdgeTriggered
	if sc.Level {
		mode = i8259.LevelTriggered
	}
	icw4 := i8259.SendICW1(rec, mode).SendICW2AndICW3(sc.MasterOffset, sc.SlaveOffset)

	var (
		ctrl             controller
		eoi, eoiMaster   func()
		readIRR, readISR func() (byte, byte)
	)
	if sc.AutoEOI {
		pic := icw4.SendICW4AEOI()
		ctrl = pic
		readIRR = func() (byte, byte) {
			m := pic.EnterIRRMode()
			defer m.Exit()
			return m.ReadMaster(), m.ReadSlave()
		}
		readISR = func() (byte, byte) {
			m := pic.EnterISRMode()
			defer m.Exit()
			return m.ReadMaster(), m.ReadSlave()
		}
	} else {
		pic := icw4.SendICW4()
		ctrl, eoi, eoiMaster = pic, pic.SendEOI, pic.SendEOIToMaster
		readIRR = func() (byte, byte) {
			m := pic.EnterIRRMode()
			defer m.Exit()
			return m.ReadMaster(), m.ReadSlave()
		}
		readISR = func() (byte, byte) {
			m := pic.EnterISRMode()
			defer m.Exit()
			return m.ReadMaster(), m.ReadSlave()
		}
	}

	enc := json.NewEncoder(w)
	emit := func(ev traceEvent) error {
		ev.Ops = rec.Ops()
		err := enc.Encode(ev)
		rec.Clear()
		return err
	}

	if err := emit(traceEvent{Step: 0, Action: "init", Vector: -1}); err != nil {
		return err
	}

	for i, st := range sc.Steps {
		ev := traceEvent{Step: i + 1, Action: st.Action, Vector: -1}

		switch st.Action {
		case "raise":
			if !simulated {
				return fmt.Errorf("step %d: raise requires the simulated backend", i+1)
			}
			if st.Line < 0 || st.Line > 15 {
				return fmt.Errorf("step %d: line %d out of range", i+1, st.Line)
			}
			pair.Raise(st.Line)
		case "ack":
			if !simulated {
				return fmt.Errorf("step %d: ack requires the simulated backend", i+1)
			}
			v, err := pair.Ack()
			if err != nil {
				return fmt.Errorf("step %d: %v", i+1, err)
			}
			ev.Vector = v
			if st.Expect != nil && *st.Expect != v {
				return fmt.Errorf("step %d: vector %#02x, expected %#02x", i+1, v, *st.Expect)
			}
		case "eoi":
			if eoi == nil {
				return fmt.Errorf("step %d: eoi in automatic EOI mode", i+1)
			}
			eoi()
		case "eoi-master":
			if eoiMaster == nil {
				return fmt.Errorf("step %d: eoi-master in automatic EOI mode", i+1)
			}
			eoiMaster()
		case "mask-master":
			ctrl.SetMasterMask(st.Mask)
		case "mask-slave":
			ctrl.SetSlaveMask(st.Mask)
		case "read-irr":
			ev.Master, ev.Slave = readIRR()
		case "read-isr":
			ev.Master, ev.Slave = readISR()
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}

		if err := emit(ev); err != nil {
			return err
		}
	}
	return nil
}
