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

// Package raw holds the full 8259A command vocabulary from the Intel
// reference. PC/AT compatible machines only ever use a subset of it.
package raw

// ICW1 bits. Bit 4 is what marks a command port write as ICW1 and
// restarts the initialization sequence.
const (
	ICW1Identifier     byte = 0b0001_0000
	ICW1ICW4Needed     byte = 0b0000_0001 | ICW1Identifier
	ICW1Single         byte = 0b0000_0010 | ICW1Identifier
	ICW1Interval4      byte = 0b0000_0100 | ICW1Identifier
	ICW1LevelTriggered byte = 0b0000_1000 | ICW1Identifier
)

// ICW2 is the vector offset itself. The controller fills the low three
// bits with the IRQ line number, so only multiples of 8 are meaningful.
const ICW2OffsetMask byte = 0b1111_1000

// ICW3 describes the cascade wiring. The master byte is a bitmask of
// lines with a slave attached, the slave byte is its cascade identity.
// On PC/AT hardware the slave always hangs off the master's line 2.
const (
	ICW3SlaveOnIRQ2      byte = 0b0000_0100
	ICW3CascadeIdentity2 byte = 0b0000_0010
)

// ICW4 bits.
const (
	ICW4Mode8086           byte = 0b0000_0001
	ICW4AutoEOI            byte = 0b0000_0010
	ICW4BufferedSlave      byte = 0b0000_1000
	ICW4BufferedMaster     byte = 0b0000_1100
	ICW4SpecialFullyNested byte = 0b0001_0000
)

// OCW2 commands. The rotate and specific forms take an IR level in the
// low three bits.
const (
	OCW2NonSpecificEOI         byte = 0b0010_0000
	OCW2SpecificEOI            byte = 0b0110_0000
	OCW2RotateOnNonSpecificEOI byte = 0b1010_0000
	OCW2RotateInAEOISet        byte = 0b1000_0000
	OCW2RotateInAEOIClear      byte = 0b0000_0000
	OCW2RotateOnSpecificEOI    byte = 0b1110_0000
	OCW2SetPriority            byte = 0b1100_0000
	OCW2NoOp                   byte = 0b0100_0000

	OCW2LevelMask byte = 0b0000_0111
)

// OCW3 commands. Bit 3 set with bit 4 clear marks a command port write
// as OCW3 rather than OCW2 or ICW1.
const (
	OCW3Identifier       byte = 0b0000_1000
	OCW3Poll             byte = 0b0000_0100 | OCW3Identifier
	OCW3SpecialMaskReset byte = 0b0100_0000 | OCW3Identifier
	OCW3SpecialMaskSet   byte = 0b0110_0000 | OCW3Identifier
	OCW3ReadIRR          byte = 0b0000_0010 | OCW3Identifier
	OCW3ReadISR          byte = 0b0000_0011 | OCW3Identifier
)
