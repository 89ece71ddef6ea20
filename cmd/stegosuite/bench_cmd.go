package main

import (
	"os"

	"github.com/spf13/pflag"

	"stegosuite/internal/bench"
	"stegosuite/internal/cli"
	"stegosuite/internal/stegoerr"
)

func benchCommand() *cli.Command {
	var (
		coversDir   string
		payloadPath string
		mode        string
		rate        float64
		channel     string
		reportPath  string
	)

	return &cli.Command{
		Name:    "bench",
		Summary: "benchmark embedding a payload across a directory of covers",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("bench", pflag.ContinueOnError)
			fs.StringVar(&coversDir, "covers", "", "directory of cover images to walk (required)")
			fs.StringVar(&payloadPath, "payload", "", "file or directory to embed into every cover (required)")
			fs.StringVarP(&mode, "mode", "m", "append", "embedding mode: append|dct")
			fs.Float64Var(&rate, "rate", 1.0, "DCT mode: fraction of eligible coefficients to use")
			fs.StringVar(&channel, "channel", "none", "DCT mode: channel preset (none|whatsapp|telegram)")
			fs.StringVar(&reportPath, "report", "", "CSV report output path (required)")
			return fs
		},
		Run: func(args []string) error {
			if coversDir == "" || payloadPath == "" || reportPath == "" {
				return stegoerr.Arg("bench: --covers, --payload and --report are required")
			}
			resolvedMode, err := parseMode(mode)
			if err != nil {
				return err
			}

			logger := cli.NewLogger(verbosity)
			logger.Debug("starting bench", "covers", coversDir, "mode", resolvedMode)

			report, err := os.Create(reportPath)
			if err != nil {
				return stegoerr.IO("bench: create report %s: %w", reportPath, err)
			}
			defer report.Close()

			rows, err := bench.Run(bench.Options{
				CoversDir:   coversDir,
				PayloadPath: payloadPath,
				Mode:        resolvedMode,
				Rate:        rate,
				ChannelName: channel,
			}, report)
			if err != nil {
				return err
			}

			logger.Info("bench complete", "covers", len(rows), "report", reportPath)
			return nil
		},
	}
}
