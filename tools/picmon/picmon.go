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

// Front panel for a simulated 8259A pair. The controllers are programmed
// through the real driver and the panel shows the request, in-service and
// mask registers live while you raise lines and acknowledge interrupts.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/andreas-jonsson/i8259"
	"github.com/andreas-jonsson/i8259/machine"
	"github.com/andreas-jonsson/i8259/version"
	"github.com/gdamore/tcell"
)

var (
	masterOffset = 0x20
	slaveOffset  = 0x28
)

var (
	aeoi,
	level,
	ver bool
)

func init() {
	flag.BoolVar(&ver, "v", false, "Print version information")
	flag.BoolVar(&aeoi, "aeoi", false, "Program the controllers for automatic EOI")
	flag.BoolVar(&level, "level", false, "Program level triggered mode (PS/2)")
	flag.IntVar(&masterOffset, "master", masterOffset, "Vector offset of the master controller")
	flag.IntVar(&slaveOffset, "slave", slaveOffset, "Vector offset of the slave controller")
}

// controller is what both driver variants offer once initialized.
type controller interface {
	SetMasterMask(mask byte)
	SetSlaveMask(mask byte)
	MasterMask() byte
	SlaveMask() byte
}

type panel struct {
	pair  *machine.Pair
	masks controller

	irr, isr func() (master, slave byte)
	eoi      func()

	selected   int
	lastVector int
}

func main() {
	flag.Parse()

	if ver {
		fmt.Printf("%s (%s)\n", version.Current.FullString(), version.Hash)
		return
	}

	if masterOffset&7 != 0 || slaveOffset&7 != 0 || masterOffset < 0 || slaveOffset < 0 || masterOffset > 0xF8 || slaveOffset > 0xF8 {
		log.Fatal("vector offsets must be multiples of 8 in the range 0-248")
	}

	p := &panel{pair: machine.New(), lastVector: -1}
	p.program()

	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err = s.Init(); err != nil {
		log.Fatal(err)
	}
	defer s.Fini()

	s.HideCursor()
	s.Clear()

	p.run(s)
}

// program runs the full initialization handshake and rebuilds the register
// read closures. ICW1 resets the controllers so it can be rerun at any time.
func (p *panel) program() {
	mode := i8259.EdgeTriggered
	if level {
		mode = i8259.LevelTriggered
	}
	stage := i8259.SendICW1(p.pair, mode).SendICW2AndICW3(byte(masterOffset), byte(slaveOffset))

	if aeoi {
		pic := stage.SendICW4AEOI()
		p.masks = pic
		p.eoi = nil
		p.irr = func() (byte, byte) {
			m := pic.EnterIRRMode()
			defer m.Exit()
			return m.ReadMaster(), m.ReadSlave()
		}
		p.isr = func() (byte, byte) {
			m := pic.EnterISRMode()
			defer m.Exit()
			return m.ReadMaster(), m.ReadSlave()
		}
		return
	}

	pic := stage.SendICW4()
	p.masks = pic
	p.eoi = pic.SendEOI
	p.irr = func() (byte, byte) {
		m := pic.EnterIRRMode()
		defer m.Exit()
		return m.ReadMaster(), m.ReadSlave()
	}
	p.isr = func() (byte, byte) {
		m := pic.EnterISRMode()
		defer m.Exit()
		return m.ReadMaster(), m.ReadSlave()
	}
}

func (p *panel) run(s tcell.Screen) {
	for {
		p.render(s)

		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyLeft:
				if p.selected > 0 {
					p.selected--
				}
			case tcell.KeyRight:
				if p.selected < 15 {
					p.selected++
				}
			case tcell.KeyEnter:
				p.pair.Raise(p.selected)
			case tcell.KeyRune:
				switch c := ev.Rune(); c {
				case 'q':
					return
				case 'r':
					p.pair.Raise(p.selected)
				case 'm':
					p.toggleMask()
				case ' ':
					if v, err := p.pair.Ack(); err == nil {
						p.lastVector = v
					}
				case 'e':
					if p.eoi != nil {
						p.eoi()
					}
				case 'i':
					p.program()
					p.lastVector = -1
				default:
					if n := hexValue(c); n >= 0 {
						p.selected = n
						p.pair.Raise(n)
					}
				}
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

func (p *panel) toggleMask() {
	if p.selected < 8 {
		p.masks.SetMasterMask(p.masks.MasterMask() ^ 1<<p.selected)
		return
	}
	p.masks.SetSlaveMask(p.masks.SlaveMask() ^ 1<<(p.selected-8))
}

func (p *panel) render(s tcell.Screen) {
	s.Clear()

	head := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	text := tcell.StyleDefault.Foreground(tcell.ColorSilver)

	eoiMode := "manual EOI"
	if p.eoi == nil {
		eoiMode = "automatic EOI"
	}
	trigger := "edge"
	if level {
		trigger = "level"
	}
	drawText(s, 2, 1, head, fmt.Sprintf("8259A front panel - %s, %s triggered, vectors %#02x/%#02x",
		eoiMode, trigger, masterOffset, slaveOffset))

	drawText(s, 2, 3, text, "IRQ")
	for n := 0; n < 16; n++ {
		st := head
		if n == p.selected {
			st = head.Reverse(true)
		}
		s.SetCell(bitColumn(n), 3, st, rune("0123456789ABCDEF"[n]))
	}

	irrM, irrS := p.irr()
	isrM, isrS := p.isr()
	p.drawBits(s, 4, "IRR", irrM, irrS, tcell.ColorYellow)
	p.drawBits(s, 5, "ISR", isrM, isrS, tcell.ColorRed)
	p.drawBits(s, 6, "IMR", p.masks.MasterMask(), p.masks.SlaveMask(), tcell.ColorGray)

	if p.pair.Pending() {
		drawText(s, 2, 8, tcell.StyleDefault.Foreground(tcell.ColorLime), "INT asserted")
	}
	if p.lastVector >= 0 {
		drawText(s, 2, 9, text, fmt.Sprintf("last vector: %#02x", p.lastVector))
	}

	help := "left/right select, r/0-f raise, m mask, space ack, e eoi, i reinit, q quit"
	if p.eoi == nil {
		help = "left/right select, r/0-f raise, m mask, space ack, i reinit, q quit"
	}
	drawText(s, 2, 11, text, help)

	s.Show()
}

func (p *panel) drawBits(s tcell.Screen, y int, label string, master, slave byte, color tcell.Color) {
	drawText(s, 2, y, tcell.StyleDefault.Foreground(tcell.ColorSilver), label)

	for n := 0; n < 16; n++ {
		bits, bit := master, n
		if n >= 8 {
			bits, bit = slave, n-8
		}

		ch, st := '.', tcell.StyleDefault.Foreground(tcell.ColorGray)
		if bits&(1<<bit) != 0 {
			ch, st = '#', tcell.StyleDefault.Foreground(color)
		}
		s.SetCell(bitColumn(n), y, st, ch)
	}
}

func bitColumn(n int) int {
	x := 7 + n*2
	if n >= 8 {
		x += 2
	}
	return x
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, c := range text {
		s.SetCell(x+i, y, style, c)
	}
}

func hexValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return -1
}
