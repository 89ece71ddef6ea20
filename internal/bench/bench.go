// Package bench implements the bench subcommand: it walks a directory
// of candidate covers, embeds the same payload into each one, measures
// fidelity and latency, and writes one CSV row per cover regardless of
// whether that cover's embed succeeded.
package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"stegosuite/internal/frame"
	"stegosuite/internal/metrics"
	"stegosuite/internal/stego"
)

// Options configures one benchmark run.
type Options struct {
	CoversDir   string
	PayloadPath string
	Mode        frame.Mode
	Rate        float64
	ChannelName string
}

// Row is one CSV record: either a successful embed's measurements or a
// failed cover's status and error.
type Row struct {
	CoverPath  string
	PlainSize  int
	CompMethod string
	CompRatio  float64
	StegoSize  int
	LatencyMS  float64
	PSNR       string
	RMSE       string
	Status     string
}

var csvHeader = []string{
	"cover_path", "plain_size", "comp_method", "comp_ratio",
	"stego_size", "latency_ms", "psnr", "rmse", "status",
}

// Run walks opts.CoversDir for regular files, embeds opts.PayloadPath
// into each one using opts.Mode, and writes the report as CSV to w. A
// cover that fails to embed or decode contributes a status=fail row
// instead of aborting the run.
func Run(opts Options, w io.Writer) ([]Row, error) {
	var covers []string
	err := filepath.WalkDir(opts.CoversDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			covers = append(covers, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bench: walk covers directory: %w", err)
	}

	rows := make([]Row, 0, len(covers))
	for _, coverPath := range covers {
		rows = append(rows, benchOne(coverPath, opts))
	}

	if err := writeCSV(w, rows); err != nil {
		return rows, err
	}
	return rows, nil
}

func benchOne(coverPath string, opts Options) Row {
	row := Row{CoverPath: coverPath}

	cover, err := os.ReadFile(coverPath)
	if err != nil {
		row.Status = "fail: " + err.Error()
		return row
	}

	start := time.Now()
	res, err := stego.Embed(cover, stego.EmbedOptions{
		PayloadPath: opts.PayloadPath,
		Mode:        opts.Mode,
		Rate:        opts.Rate,
		ChannelName: opts.ChannelName,
	})
	row.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		row.Status = "fail: " + err.Error()
		return row
	}

	row.PlainSize = res.PlainSize
	row.CompMethod = string(res.CompMethod)
	row.CompRatio = res.CompRatio
	row.StegoSize = len(res.StegoBytes)

	m, err := metrics.Compare(cover, res.StegoBytes)
	if err != nil {
		row.PSNR, row.RMSE = "n/a", "n/a"
	} else {
		row.PSNR = formatMetric(m.PSNR)
		row.RMSE = formatMetric(m.RMSE)
	}

	row.Status = "ok"
	return row
}

func formatMetric(v float64) string {
	if v > 1e300 {
		return "inf"
	}
	return fmt.Sprintf("%.4f", v)
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.CoverPath,
			fmt.Sprintf("%d", r.PlainSize),
			r.CompMethod,
			fmt.Sprintf("%.4f", r.CompRatio),
			fmt.Sprintf("%d", r.StegoSize),
			fmt.Sprintf("%.3f", r.LatencyMS),
			r.PSNR,
			r.RMSE,
			r.Status,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
