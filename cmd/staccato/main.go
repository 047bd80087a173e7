package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/panbanda/staccato/internal/logging"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "staccato",
		Usage:     "Statistics from the command line",
		UsageText: "staccato [options] [FILE...]",
		Version:   version,
		Metadata:  make(map[string]interface{}),
		Description: `Staccato reads numbers, one per line, from the given files or from
stdin until the end of the stream and computes statistics about them: count,
sum, mean, upper, lower, median and standard deviation.

The same statistics are computed for the lowest slices of the sorted values.
By default these are the lower 75%, 90%, 95% and 99% of values. Lines that
are not numbers are ignored.

If you've ever used Statsd, the format should seem familiar :)`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"STACCATO_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "percentiles",
				Aliases: []string{"p"},
				Usage:   "Comma separated percentiles from 1 to 99, or \"none\" (default: 75,90,95,99)",
			},
			&cli.BoolFlag{
				Name:    "tab",
				Aliases: []string{"t"},
				Usage:   "Separate keys and values with a tab",
			},
			&cli.BoolFlag{
				Name:  "colon",
				Usage: "Separate keys and values with a colon and a space (default)",
			},
			&cli.StringFlag{
				Name:    "separator",
				Aliases: []string{"s"},
				Usage:   "Separate keys and values with an arbitrary string (\"tab\" and \"colon\" name the built-in separators)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, yaml, toon, markdown, table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "Color keys in text output",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress bar on stderr while reading input",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.StringFlag{
				Name:  "pprof",
				Usage: "Enable pprof profiling and write to specified prefix (creates <prefix>.cpu.pprof and <prefix>.mem.pprof)",
			},
		},
		Before: func(c *cli.Context) error {
			logging.Setup(c.App.ErrWriter, c.Bool("verbose"))

			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				cpuFile, err := os.Create(pprofPrefix + ".cpu.pprof")
				if err != nil {
					return fmt.Errorf("failed to create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(cpuFile); err != nil {
					cpuFile.Close()
					return fmt.Errorf("failed to start CPU profile: %w", err)
				}
				c.App.Metadata["pprofCPU"] = cpuFile
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				pprof.StopCPUProfile()
				if cpuFile, ok := c.App.Metadata["pprofCPU"].(*os.File); ok {
					cpuFile.Close()
					color.Green("CPU profile written to %s.cpu.pprof", pprofPrefix)
				}

				memFile, err := os.Create(pprofPrefix + ".mem.pprof")
				if err != nil {
					return fmt.Errorf("failed to create memory profile: %w", err)
				}
				defer memFile.Close()

				runtime.GC() // Get up-to-date statistics
				if err := pprof.WriteHeapProfile(memFile); err != nil {
					return fmt.Errorf("failed to write memory profile: %w", err)
				}
				color.Green("Memory profile written to %s.mem.pprof", pprofPrefix)
			}
			return nil
		},
		Action: runCompute,
		Commands: []*cli.Command{
			configCmd(),
			initCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
