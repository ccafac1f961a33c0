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

// Package portio provides port capability implementations: a tracing
// decorator, a dead end for unmapped traffic and real hardware access
// through /dev/port on Linux.
package portio

import (
	"log"

	"github.com/andreas-jonsson/i8259"
)

// Op is one recorded port access.
type Op struct {
	Write bool
	Port  uint16
	Data  byte
}

// Recorder forwards port traffic to a wrapped capability and keeps an
// ordered log of every access, reads included with the byte they
// returned.
type Recorder struct {
	IO  i8259.PortIO
	ops []Op
}

func NewRecorder(io i8259.PortIO) *Recorder {
	return &Recorder{IO: io}
}

func (r *Recorder) In(port uint16) byte {
	data := r.IO.In(port)
	r.ops = append(r.ops, Op{false, port, data})
	return data
}

func (r *Recorder) Out(port uint16, data byte) {
	r.ops = append(r.ops, Op{true, port, data})
	r.IO.Out(port, data)
}

// Ops returns the trace recorded so far.
func (r *Recorder) Ops() []Op {
	return r.ops
}

func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
}

// Null is a capability with nothing behind it. Reads come back 0xFF
// like a floating ISA bus and all traffic is logged.
type Null struct{}

func (n *Null) In(port uint16) byte {
	log.Printf("reading unmapped IO port: 0x%X", port)
	return 0xFF
}

func (n *Null) Out(port uint16, data byte) {
	log.Printf("writing unmapped IO port: 0x%X", port)
}
