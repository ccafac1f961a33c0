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

// Controller is the constraint for the two operating controller types.
// Only *Pic and *PicAEOI satisfy it; the methods are unexported so no
// outside type can.
type Controller interface {
	take() PortIO
	restore(io PortIO)
}

// RegisterReadMode is an operating controller lent out for register
// reads. Constructing it latches command port reads to one of the two
// status registers; the latch is re-issued on every entry and never
// assumed to survive from an earlier one.
//
// While the overlay is live it holds the port capability exclusively.
// Masking works as on the controller itself, end of interrupt does
// not. Using the wrapped controller before Exit panics.
type RegisterReadMode[P Controller] struct {
	picMask
	pic P
}

func enterReadMode[P Controller](pic P, sel byte) *RegisterReadMode[P] {
	io := pic.take()
	io.Out(MasterCommandPort, sel)
	io.Out(SlaveCommandPort, sel)
	return &RegisterReadMode[P]{picMask{io}, pic}
}

// ReadMaster reads the selected register of the master controller.
func (m *RegisterReadMode[P]) ReadMaster() byte {
	return m.port().In(MasterCommandPort)
}

// ReadSlave reads the selected register of the slave controller.
func (m *RegisterReadMode[P]) ReadSlave() byte {
	return m.port().In(SlaveCommandPort)
}

// Exit hands the port capability back and returns the wrapped
// controller with its full capabilities. No unlatching write happens;
// the next read mode entry writes its own select byte.
func (m *RegisterReadMode[P]) Exit() P {
	m.pic.restore(m.take())
	return m.pic
}
