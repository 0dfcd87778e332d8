package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/script"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func newScriptCmd(logger func() log.Logger) *cobra.Command {
	var machine machineFlags

	cmd := &cobra.Command{
		Use:   "script <rom> <script.lua>",
		Short: "Drive a ROM from a Lua script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var output string
			gb, err := machine.newMachine(args[0], logger(), gameboy.SerialDebugger(&output))
			if err != nil {
				return err
			}

			h := script.NewHarness(gb, &output)
			defer h.Close()
			if err := h.DoFile(args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\ncycles: %d\n", gb.CPU.Registers, gb.Cycles())
			return nil
		},
	}

	machine.register(cmd)
	return cmd
}
