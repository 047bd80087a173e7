package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/panbanda/staccato/internal/output"
	"github.com/panbanda/staccato/internal/progress"
	"github.com/panbanda/staccato/pkg/config"
	"github.com/panbanda/staccato/pkg/stats"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var errNoValues = errors.New("no values to compute statistics from")

// stdinPath selects standard input among the positional arguments.
const stdinPath = "-"

func runCompute(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	values, err := readInputs(c.App.Reader, getPaths(c), cfg.Output.Progress)
	if err != nil {
		return err
	}

	bundle, ok := stats.NewBundle(values, cfg.Percentiles)
	if !ok {
		return errNoValues
	}
	logOmitted(cfg.Percentiles, bundle)

	colored := cfg.Output.Color
	format := output.ParseFormat(cfg.Output.Format)

	var formatter *output.Formatter
	if path := c.String("output"); path != "" {
		formatter, err = output.NewFormatter(format, path, colored)
		if err != nil {
			return fmt.Errorf("failed to open output: %w", err)
		}
	} else {
		formatter = output.NewWriterFormatter(format, c.App.Writer, colored)
	}

	if err := formatter.Output(output.NewBundleView(bundle, cfg.SeparatorValue())); err != nil {
		formatter.Close()
		return err
	}
	if err := formatter.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

// resolveConfig loads the config file and applies command line overrides.
func resolveConfig(c *cli.Context) (*config.Config, error) {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}

	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	cfg := result.Config
	if result.Source != "" {
		log.Debug().Str("path", result.Source).Msg("loaded config")
	}

	if c.IsSet("percentiles") {
		percentiles, err := config.ParsePercentiles(c.String("percentiles"))
		if err != nil {
			return nil, err
		}
		cfg.Percentiles = percentiles
	}

	sep, ok, err := separatorFlag(c)
	if err != nil {
		return nil, err
	}
	if ok {
		cfg.Separator = sep
	}

	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("color") {
		cfg.Output.Color = c.Bool("color")
	}
	if c.IsSet("progress") {
		cfg.Output.Progress = c.Bool("progress")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// separatorFlag returns the separator chosen on the command line. ok is
// false when none of the separator flags was given; an explicit empty
// --separator is honored.
func separatorFlag(c *cli.Context) (sep string, ok bool, err error) {
	var chosen []string
	if c.Bool("tab") {
		chosen = append(chosen, "tab")
	}
	if c.Bool("colon") {
		chosen = append(chosen, "colon")
	}
	if c.IsSet("separator") {
		chosen = append(chosen, c.String("separator"))
	}

	switch len(chosen) {
	case 0:
		return "", false, nil
	case 1:
		return chosen[0], true, nil
	default:
		return "", false, errors.New("--tab, --colon and --separator are mutually exclusive")
	}
}

// readInputs ingests every path in turn and sorts the combined values.
func readInputs(stdin io.Reader, paths []string, showProgress bool) ([]float64, error) {
	var values []float64
	for _, path := range paths {
		in, err := readInput(stdin, path, showProgress)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("source", path).
			Int("lines", in.Lines).
			Int("values", len(in.Values)).
			Int("skipped", in.Skipped).
			Msg("read input")
		values = append(values, in.Values...)
	}
	stats.SortValues(values)
	return values, nil
}

func readInput(stdin io.Reader, path string, showProgress bool) (*stats.Ingestion, error) {
	var r io.Reader = stdin
	label := "stdin"
	var size int64 = -1

	if path != stdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
			size = info.Size()
		}
		r = f
		label = path
	}

	if !showProgress {
		in, err := stats.Ingest(r, stats.Unsorted)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", label, err)
		}
		return in, nil
	}

	var tracker *progress.Tracker
	if size >= 0 {
		tracker = progress.NewTracker(label, size)
	} else {
		tracker = progress.NewSpinner(label)
	}

	in, err := stats.Ingest(tracker.Reader(r), stats.Unsorted)
	if err != nil {
		tracker.FinishError(err)
		return nil, fmt.Errorf("failed to read %s: %w", label, err)
	}
	log.Debug().Str("source", label).Int64("bytes", tracker.Bytes()).Msg("input consumed")
	tracker.FinishSuccess()
	return in, nil
}

// logOmitted notes requested percentiles that produced no statistics.
func logOmitted(requested []int, b *stats.Bundle) {
	present := make(map[int]bool)
	for _, s := range b.Percentiles() {
		present[s.Percentile] = true
	}
	for _, p := range requested {
		if !present[p] {
			log.Debug().
				Int("percentile", p).
				Int("count", b.Global().Count).
				Msg("percentile slice is empty, omitting")
		}
	}
}
