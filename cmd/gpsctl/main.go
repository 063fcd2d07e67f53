// gpsctl is the operator's bench tool: it pushes the PMTK setup
// commands to the module and replays captured NMEA data through the
// decoder.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/novarover/gpsnode/internal/config"
	"github.com/novarover/gpsnode/internal/nmea"
	"github.com/novarover/gpsnode/internal/source"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "gpsctl",
		Short:         "GPS module utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")

	configureCmd := &cobra.Command{
		Use:   "configure",
		Short: "Send the RMC-only and 10 Hz setup commands to the module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			src, err := source.Open(cfg.Source)
			if err != nil {
				return fmt.Errorf("open gps source: %w", err)
			}
			defer src.Close()

			if err := nmea.Configure(src); err != nil {
				return err
			}
			fmt.Println("module configured: RMC output at 10 Hz")
			return nil
		},
	}

	var sentenceTag string
	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a captured NMEA chunk from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			out := nmea.Decode(string(raw), sentenceTag)
			if out.Kind == nmea.KindCoordinate {
				fmt.Printf("lat=%.6f lon=%.6f\n", out.Coordinate.Latitude, out.Coordinate.Longitude)
				return nil
			}
			return fmt.Errorf("no coordinate: %s", out.Kind)
		},
	}
	decodeCmd.Flags().StringVar(&sentenceTag, "sentence", nmea.SentenceRMC, "3-character sentence tag to decode")

	rootCmd.AddCommand(configureCmd, decodeCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
