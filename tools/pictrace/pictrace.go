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

// pictrace runs scripted scenarios against an 8259A pair and writes a
// JSON trace of all port traffic.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/andreas-jonsson/i8259"
	"github.com/andreas-jonsson/i8259/machine"
	"github.com/andreas-jonsson/i8259/portio"
	"github.com/andreas-jonsson/i8259/raw"
	"github.com/andreas-jonsson/i8259/version"
	"github.com/spf13/afero"
)

var fileSystem = afero.NewOsFs()

func main() {
	var cli struct {
		Run     runCmd     `cmd default:"1" help:"Run a scenario against the controllers"`
		Ports   portsCmd   `cmd help:"Print the fixed port assignments"`
		Version versionCmd `cmd help:"Print version information"`
	}

	ctx := kong.Parse(&cli)
	err := ctx.Run(&kong.Context{})
	ctx.FatalIfErrorf(err)
}

type runCmd struct {
	Scenario string `arg name:"scenario" type:"existingfile" help:"Scenario file to execute"`
	Output   string `name:"output" short:"o" help:"Write the trace to a file instead of stdout"`
	Hardware bool   `name:"hw" xor:"backend" help:"Drive the physical controllers through /dev/port"`
	Dry      bool   `name:"dry" xor:"backend" help:"Echo port traffic against an unmapped backend"`
}

func (r *runCmd) Run(ctx *kong.Context) error {
	sc, err := loadScenario(r.Scenario)
	if err != nil {
		return err
	}

	var backend i8259.PortIO = machine.New()
	switch {
	case r.Hardware:
		dp, err := portio.OpenDevPort()
		if err != nil {
			return err
		}
		defer dp.Close()
		backend = dp
	case r.Dry:
		backend = new(portio.Null)
	}

	var w io.Writer = os.Stdout
	if r.Output != "" {
		fp, err := fileSystem.Create(r.Output)
		if err != nil {
			return err
		}
		defer fp.Close()
		w = fp
	}

	return runScenario(sc, backend, w)
}

type portsCmd struct{}

func (c *portsCmd) Run(ctx *kong.Context) error {
	fmt.Printf("master: command %#02x, data %#02x\n", i8259.MasterCommandPort, i8259.MasterDataPort)
	fmt.Printf("slave:  command %#02x, data %#02x\n", i8259.SlaveCommandPort, i8259.SlaveDataPort)
	fmt.Println()
	fmt.Printf("icw1:   edge %#02x, level %#02x\n", byte(i8259.EdgeTriggered), byte(i8259.LevelTriggered))
	fmt.Printf("icw3:   master %#02x, slave %#02x\n", raw.ICW3SlaveOnIRQ2, raw.ICW3CascadeIdentity2)
	fmt.Printf("icw4:   manual %#02x, auto %#02x\n", raw.ICW4Mode8086, raw.ICW4Mode8086|raw.ICW4AutoEOI)
	fmt.Printf("ocw2:   eoi %#02x\n", raw.OCW2NonSpecificEOI)
	fmt.Printf("ocw3:   irr %#02x, isr %#02x\n", raw.OCW3ReadIRR, raw.OCW3ReadISR)
	return nil
}

type versionCmd struct{}

func (c *versionCmd) Run(ctx *kong.Context) error {
	fmt.Printf("%s (%s)\n", version.Current.FullString(), version.Hash)
	return nil
}
