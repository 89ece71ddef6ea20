package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"

	"stegosuite/internal/cli"
	"stegosuite/internal/metrics"
	"stegosuite/internal/stegoerr"
)

func metricsCommand() *cli.Command {
	var coverPath, stegoPath string

	return &cli.Command{
		Name:    "metrics",
		Summary: "report PSNR/RMSE between a cover and its stego image",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("metrics", pflag.ContinueOnError)
			fs.StringVar(&coverPath, "cover", "", "cover image path (required)")
			fs.StringVar(&stegoPath, "stego", "", "stego image path (required)")
			return fs
		},
		Run: func(args []string) error {
			if coverPath == "" || stegoPath == "" {
				return stegoerr.Arg("metrics: --cover and --stego are required")
			}

			cover, err := os.ReadFile(coverPath)
			if err != nil {
				return stegoerr.IO("metrics: read cover %s: %w", coverPath, err)
			}
			stegoBytes, err := os.ReadFile(stegoPath)
			if err != nil {
				return stegoerr.IO("metrics: read stego %s: %w", stegoPath, err)
			}

			res, err := metrics.Compare(cover, stegoBytes)
			if err != nil {
				return err
			}

			if math.IsInf(res.PSNR, 1) {
				fmt.Fprintf(os.Stdout, "PSNR: inf dB\nRMSE: %.6f\n", res.RMSE)
			} else {
				fmt.Fprintf(os.Stdout, "PSNR: %.4f dB\nRMSE: %.6f\n", res.PSNR, res.RMSE)
			}
			return nil
		},
	}
}
