// Command gbcore runs Game Boy ROMs headless on the SM83 core, for
// test ROMs, profiling and scripted automation.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	var logLevel string
	var logger log.Logger

	rootCmd := &cobra.Command{
		Use:           "gbcore",
		Short:         "Headless Game Boy CPU and memory bus emulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := log.NewWithLevel(os.Stderr, logLevel)
			if err != nil {
				return errors.Wrap(err, "log-level")
			}
			logger = l
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	getLogger := func() log.Logger { return logger }
	rootCmd.AddCommand(
		newRunCmd(getLogger),
		newInfoCmd(),
		newProfileCmd(getLogger),
		newScriptCmd(getLogger),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// machineFlags are the flags shared by every command creating a
// machine.
type machineFlags struct {
	boot  string
	debug bool
}

func (f *machineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.boot, "boot", "", "Boot ROM to run before the cartridge")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Stop on the LD B, B breakpoint")
}

// newMachine loads romFile and creates a machine for it.
func (f *machineFlags) newMachine(romFile string, logger log.Logger, opts ...gameboy.Opt) (*gameboy.GameBoy, error) {
	rom, err := utils.LoadFile(romFile)
	if err != nil {
		return nil, err
	}

	opts = append(opts, gameboy.WithLogger(logger))
	if f.boot != "" {
		boot, err := utils.LoadFile(f.boot)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if f.debug {
		opts = append(opts, gameboy.Debug())
	}

	return gameboy.NewGameBoy(rom, opts...)
}
