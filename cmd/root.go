package cmd

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/koki-develop/img2ascii/internal/config"
	"github.com/koki-develop/img2ascii/internal/job"
	"github.com/koki-develop/img2ascii/internal/storage"
	"github.com/koki-develop/img2ascii/internal/ui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootFlags struct {
	opts    *config.Options
	quiet   bool
	verbose bool
	logFile string
}

func newRootCmd() *cobra.Command {
	fl := &rootFlags{opts: config.Default()}

	cmd := &cobra.Command{
		Use:           "img2ascii <img-file>",
		Short:         "Converts an image to ASCII art.",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fl, args[0])
		},
	}

	// -h is the height flag, so help only has the long form
	cmd.Flags().Bool("help", false, "Display this help message")

	opts := fl.opts
	f := cmd.Flags()
	f.StringVarP(&opts.Output, "out", "o", opts.Output, `Path to output file ("-" for stdout, s3://bucket/key for S3)`)
	f.IntVarP(&opts.MaxWidth, "width", "w", opts.MaxWidth, "Max width of ASCII output in chars")
	f.IntVarP(&opts.MaxHeight, "height", "h", opts.MaxHeight, "Max height of ASCII output in chars")
	f.IntVarP(&opts.FontSize, "font-size", "f", opts.FontSize, "Font size (1-12) to optimise size for; overrides --width, --height and --fit")
	f.StringVarP(&opts.Ramp, "ramp", "r", opts.Ramp, "Characters to draw with, darkest first")
	f.BoolVar(&opts.Fit, "fit", opts.Fit, "Take max width and height from the terminal size")
	f.StringVar(&opts.Sample, "sample", opts.Sample, `How a chunk of pixels becomes a character: "average" or "nearest"`)
	f.IntVar(&opts.Workers, "workers", opts.Workers, "Number of rows to convert in parallel (0 or 1 converts sequentially)")
	f.BoolVar(&opts.IgnoreWriteErrors, "ignore-write-errors", opts.IgnoreWriteErrors, "Log output write failures instead of failing")
	f.BoolVarP(&fl.quiet, "quiet", "q", false, "Do not show progress")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "Log each step to stderr")
	f.StringVar(&fl.logFile, "log-file", "", "Write logs to this file")

	return cmd
}

func run(cmd *cobra.Command, fl *rootFlags, source string) error {
	opts := *fl.opts
	opts.Source = source
	if err := opts.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLog(cmd, fl)
	if err != nil {
		return err
	}
	defer closeLog()

	j := job.New(&opts)

	// stdout and verbose logs on stderr would garble the spinner, and
	// without a terminal there is nothing to draw it on
	if fl.quiet || fl.verbose || opts.Output == storage.Stdio || !interactive(cmd) {
		s, err := j.Run(cmd.Context())
		if err != nil {
			return err
		}
		if !fl.quiet && opts.Output != storage.Stdio {
			cmd.PrintErrln(s)
		}
		return nil
	}

	_, err = ui.Start(&ui.Option{
		Runner: j,
		Options: []tea.ProgramOption{
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.ErrOrStderr()),
		},
	})
	return err
}

// interactive reports whether both stdin and stderr are terminals.
func interactive(cmd *cobra.Command) bool {
	return isTerminal(cmd.InOrStdin()) && isTerminal(cmd.ErrOrStderr())
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func setupLog(cmd *cobra.Command, fl *rootFlags) (func(), error) {
	log.SetFlags(0)
	log.SetPrefix("img2ascii: ")

	switch {
	case fl.logFile != "":
		f, err := tea.LogToFile(fl.logFile, "img2ascii")
		if err != nil {
			return nil, err
		}
		return func() { f.Close() }, nil
	case fl.verbose:
		log.SetOutput(cmd.ErrOrStderr())
	default:
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}

func Execute() {
	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
