package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/digest"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func newRunCmd(logger func() log.Logger) *cobra.Command {
	var (
		machine  machineFlags
		steps    int
		seconds  float64
		trace    bool
		traceBus bool
		serial   bool
		hash     bool
	)

	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM and print the final machine state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := logger()

			var output string
			var opts []gameboy.Opt
			if trace {
				opts = append(opts, gameboy.WithTrace(func(t cpu.Trace) {
					l.Debugf("%04X  %-18s %s", t.Address, t.Disassemble(), t.Registers)
				}))
			}
			if traceBus {
				opts = append(opts, gameboy.WithBusTrace(func(a mmu.Access) {
					op := "R"
					if a.Write {
						op = "W"
					}
					l.Debugf("%s %-8s %04X %02X", op, a.Region, a.Address, a.Value)
				}))
			}
			if serial {
				opts = append(opts, gameboy.SerialDebugger(&output))
			}

			var exec *digest.Execution
			if hash {
				exec = digest.NewExecution()
				opts = append(opts, gameboy.WithTrace(exec.Trace))
			}

			gb, err := machine.newMachine(args[0], l, opts...)
			if err != nil {
				return err
			}

			if steps > 0 {
				err = gb.RunSteps(steps)
			} else {
				err = gb.Run(uint64(seconds * gameboy.ClockSpeed))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\ncycles: %d\n", gb.CPU.Registers, gb.Cycles())
			if gb.Breakpoint() {
				fmt.Fprintln(out, "breakpoint hit")
			}
			if serial {
				fmt.Fprintf(out, "serial: %q\n", output)
			}
			if hash {
				fmt.Fprintf(out, "digest: %s\n", digest.Of(gb))
				fmt.Fprintf(out, "execution digest: %s (%d instructions)\n", exec.Hash(), exec.Count())
			}
			return err
		},
	}

	machine.register(cmd)
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of instructions to execute (overrides --seconds)")
	cmd.Flags().Float64Var(&seconds, "seconds", 10, "Emulated seconds to run for")
	cmd.Flags().BoolVar(&trace, "trace", false, "Log every instruction at debug level")
	cmd.Flags().BoolVar(&traceBus, "trace-bus", false, "Log every bus access at debug level")
	cmd.Flags().BoolVar(&serial, "serial", false, "Capture serial output, stopping on Passed/Failed")
	cmd.Flags().BoolVar(&hash, "digest", false, "Print the digest of the final state")
	return cmd
}
