package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/joswald/pocketcore"
	"github.com/joswald/pocketcore/render/terminal"
)

func main() {
	app := cli.NewApp()
	app.Name = "pocketcore"
	app.Usage = "pocketcore [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot",
			Usage: "Path to a boot ROM image to run before the cartridge",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a terminal presenter",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("pocketcore: fatal error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	romData, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	var machine *pocketcore.Machine
	if bootPath := c.String("boot"); bootPath != "" {
		bootData, err := os.ReadFile(bootPath)
		if err != nil {
			return fmt.Errorf("reading boot rom: %w", err)
		}
		machine, err = pocketcore.NewMachineWithBootROM(romData, bootData)
		if err != nil {
			return err
		}
	} else {
		machine, err = pocketcore.NewMachine(romData)
		if err != nil {
			return err
		}
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}
		return runHeadless(machine, frames)
	}

	renderer, err := terminal.New(machine)
	if err != nil {
		return err
	}
	return renderer.Run()
}

func runHeadless(machine *pocketcore.Machine, frames int) error {
	slog.Info("pocketcore: running headless", "frames", frames)

	for i := 0; i < frames; i++ {
		machine.RunFrame()
		if machine.IsStopped() {
			if decodeErr := machine.DecodeError(); decodeErr != nil {
				return fmt.Errorf("headless run stopped: %w", decodeErr)
			}
			slog.Info("pocketcore: machine stopped (STOP instruction)", "frame", i+1)
			return nil
		}
		if (i+1)%60 == 0 {
			slog.Info("pocketcore: frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("pocketcore: headless run completed", "frames", machine.FrameCount(), "instructions", machine.InstructionCount())
	return nil
}
