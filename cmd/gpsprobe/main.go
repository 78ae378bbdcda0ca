package main

import (
	"fmt"
	"os"

	"github.com/attendlab/attendance-backend-go/internal/pkg/evidence"
	"github.com/spf13/cobra"
)

// gpsprobe runs the evidence extraction chain over a photo and prints what
// each strategy recovers. Useful for checking why a submission was rejected
// without going through the API.

var (
	metadataOnly bool
	injectOut    string
)

var rootCmd = &cobra.Command{
	Use:           "gpsprobe <image>",
	Short:         "Inspect GPS and timestamp evidence embedded in a photo",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&metadataOnly, "metadata-only", false, "skip the OCR fallback and read metadata tags only")
	rootCmd.Flags().StringVar(&injectOut, "inject-out", "", "write a copy with recovered coordinates injected into the metadata block")
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	extractors := []evidence.Extractor{evidence.NewMetadataExtractor()}
	if !metadataOnly {
		extractors = append(extractors, evidence.NewOverlayExtractor())
	}

	var fix *evidence.Fix
	for _, extractor := range extractors {
		result, err := extractor.Extract(data)
		if err != nil {
			fmt.Printf("%-12s error: %v\n", extractor.Name(), err)
			continue
		}
		if result == nil {
			fmt.Printf("%-12s no evidence\n", extractor.Name())
			continue
		}

		fix = result
		fmt.Printf("%-12s lat=%.6f lon=%.6f\n", extractor.Name(), fix.Latitude, fix.Longitude)
		break
	}

	if fix == nil {
		return evidence.ErrNoEvidence
	}

	switch {
	case fix.Timestamp != nil:
		fmt.Printf("timestamp    %s\n", fix.Timestamp.Format("2006-01-02 15:04:05"))
	case fix.RawDate != "" && fix.RawTime != "":
		if ts, ok := evidence.ReconstructTimestamp(fix.RawDate, fix.RawTime); ok {
			fmt.Printf("timestamp    %s (overlay: %q %q)\n", ts.Format("2006-01-02 15:04:05"), fix.RawDate, fix.RawTime)
		} else {
			fmt.Printf("timestamp    unparseable (overlay: %q %q)\n", fix.RawDate, fix.RawTime)
		}
	default:
		fmt.Println("timestamp    none")
	}

	if fix.Address != "" {
		fmt.Printf("address      %s\n", fix.Address)
	}
	fmt.Printf("method       %s\n", fix.Method)

	if injectOut != "" {
		rewritten, err := evidence.InjectGPS(data, fix.Latitude, fix.Longitude)
		if err != nil {
			return fmt.Errorf("inject coordinates: %w", err)
		}
		if err := os.WriteFile(injectOut, rewritten, 0o644); err != nil {
			return fmt.Errorf("write injected copy: %w", err)
		}
		fmt.Printf("injected     %s\n", injectOut)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
