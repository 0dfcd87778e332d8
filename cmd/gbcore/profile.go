package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/profile"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func newProfileCmd(logger func() log.Logger) *cobra.Command {
	var (
		machine machineFlags
		frames  int
		top     int
		out     string
	)

	cmd := &cobra.Command{
		Use:   "profile <rom>",
		Short: "Count the instructions executed by a ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := profile.New()
			gb, err := machine.newMachine(args[0], logger(), gameboy.WithTrace(p.Trace))
			if err != nil {
				return err
			}
			runErr := gb.Run(uint64(frames) * gameboy.CyclesPerFrame)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d instructions, %d cycles\n", p.Count(), p.Cycles())
			for _, e := range p.Top(top) {
				fmt.Fprintf(w, "%-20s %10d %6.2f%% %12d cycles\n", e.Name, e.Count, 100*float64(e.Count)/float64(p.Count()), e.Cycles)
			}

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return errors.Wrap(err, "profile")
				}
				defer f.Close()
				if err := p.WritePNG(f, top); err != nil {
					return err
				}
				fmt.Fprintf(w, "Written to %s\n", out)
			}
			return runErr
		},
	}

	machine.register(cmd)
	cmd.Flags().IntVar(&frames, "frames", 600, "Number of frames to run for")
	cmd.Flags().IntVar(&top, "top", 20, "Number of mnemonics to report")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a bar chart of the profile to this PNG file")
	return cmd
}
