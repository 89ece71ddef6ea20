package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"stegosuite/internal/cli"
	"stegosuite/internal/frame"
	"stegosuite/internal/stego"
	"stegosuite/internal/stegoerr"
)

func embedCommand() *cli.Command {
	var (
		coverPath   string
		payloadPath string
		outPath     string
		mode        string
		rate        float64
		channel     string
		password    string
		passEnv     string
	)

	return &cli.Command{
		Name:    "embed",
		Summary: "hide a file or directory inside a cover image",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("embed", pflag.ContinueOnError)
			fs.StringVarP(&coverPath, "cover", "c", "", "cover image path (required)")
			fs.StringVarP(&payloadPath, "payload", "p", "", "file or directory to hide (required)")
			fs.StringVarP(&outPath, "out", "o", "", "stego output path (required)")
			fs.StringVarP(&mode, "mode", "m", "append", "embedding mode: append|dct")
			fs.Float64Var(&rate, "rate", 1.0, "DCT mode: fraction of eligible coefficients to use")
			fs.StringVar(&channel, "channel", "none", "DCT mode: channel preset (none|whatsapp|telegram)")
			fs.StringVar(&password, "password", "", "encrypt the payload with this password")
			fs.StringVar(&passEnv, "pass-env", "", "read the password from this environment variable")
			return fs
		},
		Run: func(args []string) error {
			if coverPath == "" || payloadPath == "" || outPath == "" {
				return stegoerr.Arg("embed: --cover, --payload and --out are required")
			}
			resolvedMode, err := parseMode(mode)
			if err != nil {
				return err
			}
			password, err := resolvePassword(password, passEnv)
			if err != nil {
				return err
			}

			cover, err := os.ReadFile(coverPath)
			if err != nil {
				return stegoerr.IO("embed: read cover %s: %w", coverPath, err)
			}

			logger := cli.NewLogger(verbosity)
			logger.Debug("starting embed", "cover", coverPath, "payload", payloadPath, "mode", resolvedMode)

			res, err := stego.Embed(cover, stego.EmbedOptions{
				PayloadPath: payloadPath,
				Mode:        resolvedMode,
				Password:    password,
				Rate:        rate,
				ChannelName: channel,
			})
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, res.StegoBytes, 0o644); err != nil {
				return stegoerr.IO("embed: write stego %s: %w", outPath, err)
			}

			logger.Info("embed complete",
				"out", outPath,
				"comp_method", res.CompMethod,
				"comp_ratio", res.CompRatio,
				"plain_size", res.PlainSize,
				"blob_size", res.BlobSize,
				"stego_size", len(res.StegoBytes),
			)
			fmt.Fprintf(os.Stdout, "wrote %s (%d bytes, comp=%s ratio=%.2f)\n",
				outPath, len(res.StegoBytes), res.CompMethod, res.CompRatio)
			return nil
		},
	}
}

func parseMode(mode string) (frame.Mode, error) {
	switch mode {
	case "append":
		return frame.ModeAppend, nil
	case "dct":
		return frame.ModeDCT, nil
	default:
		return "", stegoerr.Arg("unknown mode %q, want append or dct", mode)
	}
}

func resolvePassword(password, passEnv string) (string, error) {
	if password != "" && passEnv != "" {
		return "", stegoerr.Arg("--password and --pass-env are mutually exclusive")
	}
	if passEnv != "" {
		v, ok := os.LookupEnv(passEnv)
		if !ok {
			return "", stegoerr.Arg("environment variable %s is not set", passEnv)
		}
		return v, nil
	}
	return password, nil
}
