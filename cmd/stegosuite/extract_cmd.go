package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"stegosuite/internal/cli"
	"stegosuite/internal/stego"
	"stegosuite/internal/stegoerr"
)

func extractCommand() *cli.Command {
	var (
		stegoPath string
		outPath   string
		password  string
		passEnv   string
	)

	return &cli.Command{
		Name:    "extract",
		Summary: "recover a hidden file or directory from a stego image",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
			fs.StringVarP(&stegoPath, "stego", "s", "", "stego image path (required)")
			fs.StringVarP(&outPath, "out", "o", "", "output directory (required)")
			fs.StringVar(&password, "password", "", "decrypt the payload with this password")
			fs.StringVar(&passEnv, "pass-env", "", "read the password from this environment variable")
			return fs
		},
		Run: func(args []string) error {
			if stegoPath == "" || outPath == "" {
				return stegoerr.Arg("extract: --stego and --out are required")
			}
			password, err := resolvePassword(password, passEnv)
			if err != nil {
				return err
			}

			stegoBytes, err := os.ReadFile(stegoPath)
			if err != nil {
				return stegoerr.IO("extract: read stego %s: %w", stegoPath, err)
			}

			logger := cli.NewLogger(verbosity)
			logger.Debug("starting extract", "stego", stegoPath)

			meta, plain, err := stego.Extract(stegoBytes, stego.ExtractOptions{
				Password: password,
				OutPath:  outPath,
			})
			if err != nil {
				return err
			}

			logger.Info("extract complete",
				"source_kind", meta.SourceKind,
				"source_name", meta.SourceName,
				"plain_size", len(plain),
			)
			fmt.Fprintf(os.Stdout, "recovered %s (%s, %d bytes) into %s\n",
				meta.SourceName, meta.SourceKind, len(plain), outPath)
			return nil
		},
	}
}
