// Package main provides the sm83 CLI: a thin driver around internal/cpu
// and internal/memory for running a ROM image headlessly, emitting a
// diagnostic trace, or stepping through one instruction at a time in an
// interactive debugger.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/richardwooding/sm83/internal/cpu"
	"github.com/richardwooding/sm83/internal/debugger"
	"github.com/richardwooding/sm83/internal/memory"
	"github.com/richardwooding/sm83/internal/trace"
)

// CLI is the root command set.
type CLI struct {
	Run   RunCmd   `cmd:"" help:"Run a ROM image headlessly for a fixed number of steps."`
	Trace TraceCmd `cmd:"" help:"Run a ROM image, emitting one diagnostic trace line per step."`
	Debug DebugCmd `cmd:"" help:"Step through a ROM image interactively."`
}

// RunCmd runs a ROM image headlessly.
type RunCmd struct {
	ROM   string `arg:"" type:"existingfile" help:"Path to a flat ROM image."`
	Steps int    `default:"1000000" help:"Maximum number of steps to execute."`
}

// Run executes the run command.
func (c *RunCmd) Run() error {
	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	bus := memory.NewBus()
	bus.LoadROM(data)
	core := cpu.New(bus)

	for i := 0; i < c.Steps; i++ {
		if _, err := core.Step(); err != nil {
			fmt.Printf("fault after %d steps: %v\n", i, err)
			return fmt.Errorf("run: %w", err)
		}
	}

	r := core.GetRegisters()
	fmt.Printf("ran %d steps, %d cycles\n", c.Steps, core.Cycles)
	fmt.Printf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X\n",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
	return nil
}

// TraceCmd runs a ROM image, printing the bit-exact diagnostic line before
// every step.
type TraceCmd struct {
	ROM   string `arg:"" type:"existingfile" help:"Path to a flat ROM image."`
	Steps int    `default:"1000" help:"Number of steps to trace."`
}

// Run executes the trace command.
func (c *TraceCmd) Run() error {
	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	bus := memory.NewBus()
	bus.LoadROM(data)
	core := cpu.New(bus)

	for i := 0; i < c.Steps; i++ {
		fmt.Println(trace.Line(core, bus))
		if _, err := core.Step(); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	return nil
}

// DebugCmd launches the interactive single-step TUI debugger.
type DebugCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to a flat ROM image."`
}

// Run executes the debug command.
func (c *DebugCmd) Run() error {
	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	bus := memory.NewBus()
	bus.LoadROM(data)
	core := cpu.New(bus)

	return debugger.Run(core, bus)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("sm83"),
		kong.Description("A Sharp SM83 (Game Boy DMG) CPU interpreter."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
