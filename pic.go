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

import "github.com/andreas-jonsson/i8259/raw"

// Pic is an initialized controller pair in manual end of interrupt
// mode. Every serviced interrupt must be acknowledged with SendEOI or
// SendEOIToMaster.
type Pic struct {
	picMask
}

// SendEOI sends a non-specific end of interrupt to both controllers,
// slave first. An interrupt that came in on a slave line must reach
// the slave before the master or the line can retrigger spuriously;
// sending both is always safe, so this does not require knowing where
// the interrupt originated.
func (p *Pic) SendEOI() {
	io := p.port()
	io.Out(SlaveCommandPort, raw.OCW2NonSpecificEOI)
	io.Out(MasterCommandPort, raw.OCW2NonSpecificEOI)
}

// SendEOIToMaster acknowledges on the master controller only. Enough
// when the serviced interrupt is known to be a master line (IRQ 0-7).
func (p *Pic) SendEOIToMaster() {
	p.port().Out(MasterCommandPort, raw.OCW2NonSpecificEOI)
}

// EnterIRRMode lends the controller to an Interrupt Request Register
// read mode overlay.
func (p *Pic) EnterIRRMode() *RegisterReadMode[*Pic] {
	return enterReadMode(p, raw.OCW3ReadIRR)
}

// EnterISRMode lends the controller to an In-Service Register read
// mode overlay.
func (p *Pic) EnterISRMode() *RegisterReadMode[*Pic] {
	return enterReadMode(p, raw.OCW3ReadISR)
}

// PicAEOI is an initialized controller pair in automatic end of
// interrupt mode. The hardware retires interrupts on acknowledge, so
// no EOI operation exists on this type.
type PicAEOI struct {
	picMask
}

// EnterIRRMode lends the controller to an Interrupt Request Register
// read mode overlay.
func (p *PicAEOI) EnterIRRMode() *RegisterReadMode[*PicAEOI] {
	return enterReadMode(p, raw.OCW3ReadIRR)
}

// EnterISRMode lends the controller to an In-Service Register read
// mode overlay.
func (p *PicAEOI) EnterISRMode() *RegisterReadMode[*PicAEOI] {
	return enterReadMode(p, raw.OCW3ReadISR)
}
