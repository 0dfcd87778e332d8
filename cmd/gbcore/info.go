package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <rom>",
		Short: "Print the cartridge header of a ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := utils.LoadFile(args[0])
			if err != nil {
				return err
			}
			h, err := cartridge.ParseHeader(rom)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:     %s\n", h.Title)
			fmt.Fprintf(out, "Hardware:  %s\n", h.Hardware())
			fmt.Fprintf(out, "Type:      %s\n", h.CartridgeType)
			fmt.Fprintf(out, "ROM size:  %dkB\n", h.ROMSize/1024)
			fmt.Fprintf(out, "RAM size:  %dkB\n", h.RAMSize/1024)
			fmt.Fprintf(out, "SGB:       %t\n", h.SGBFlag)
			fmt.Fprintf(out, "Checksum:  %02X (valid: %t)\n", h.HeaderChecksum, h.ChecksumValid())
			fmt.Fprintf(out, "Supported: %t\n", len(rom) <= cartridge.MaxROMSize)
			return nil
		},
	}
}
