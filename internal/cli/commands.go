// Package cli implements the errsum command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sirkon/errsum/internal/config"
	"github.com/sirkon/errsum/internal/generate"
	"github.com/sirkon/errsum/internal/report"
	"github.com/sirkon/errsum/internal/resolve"
)

// ErrAlreadyHandled is returned when diagnostics were printed already.
var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var ruleLabel = color.New(color.FgYellow, color.Bold)
var posLabel = color.New(color.FgHiWhite, color.Faint)

type options struct {
	configFile string
	resolve    config.ResolveMode
	workers    int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{resolve: config.ResolveAssumed}

	cmd := &cobra.Command{
		Use:   "errsum [command] [flags]",
		Short: "errsum - generates aggregate error types for Go functions",
		Long: `errsum rewrites Go files built with the errsum tag into ordinary Go files.

Every function annotated with an errors directive gets an aggregate error type
listing the errors it can return, and its error result becomes that type.

Examples:
  # Generate files for the package in the current directory
  errsum generate

  # Generate files for all packages of the module
  errsum generate ./...

  # Fail when generated files are missing or out of date
  errsum check ./...`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "", "", "Path to configuration file, "+config.DefaultFile+" is used when present")
	cmd.PersistentFlags().Var(&opts.resolve, "resolve", "Type reference resolution: assumed or packages")
	cmd.PersistentFlags().IntVarP(&opts.workers, "workers", "w", 0, "Number of files processed at once, 0 means GOMAXPROCS")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newRulesCmd())

	return cmd
}

// Execute runs the errsum command and exits on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, ErrAlreadyHandled) {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// newLogger creates the logger of a run, it only shows warnings unless verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// settings loads the config and applies flags set explicitly over it.
func (o *options) settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("resolve") {
		cfg.Resolve = o.resolve
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func newResolver(cfg *config.Config) resolve.Resolver {
	switch cfg.Resolve {
	case config.ResolvePackages:
		return resolve.NewPackages(cfg.Tag)
	default:
		return resolve.NewAssumed(cfg.Packages)
	}
}

// run runs the generator in the given mode and prints what it found.
func (o *options) run(cmd *cobra.Command, patterns []string, mode generate.Mode) (*generate.Result, error) {
	cfg, err := o.settings(cmd)
	if err != nil {
		return nil, err
	}

	log := newLogger(cmd.ErrOrStderr(), o.verbose)
	g := generate.New(cfg, newResolver(cfg), log)

	res, err := g.Run(cmd.Context(), patterns, mode)
	var d *report.Diagnostic
	if err != nil && !errors.As(err, &d) {
		return nil, err
	}

	if res.Reporter.Len() > 0 {
		printDiagnostics(cmd.ErrOrStderr(), res)
		return res, ErrAlreadyHandled
	}

	return res, nil
}

func printDiagnostics(w io.Writer, res *generate.Result) {
	if color.NoColor {
		res.Reporter.PrintSummary(w, res.Fset)
	} else {
		for _, d := range res.Reporter.Diagnostics(res.Fset) {
			if d.Position.IsValid() {
				posLabel.Fprintf(w, "%s: ", d.Position)
			}
			ruleLabel.Fprint(w, d.RuleCode)
			_, _ = fmt.Fprintf(w, ": %s\n", d.Message)
		}
	}

	errorLabel.Fprintf(w, "%d problem(s) found\n", res.Reporter.Len())
}
