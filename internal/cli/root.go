// Package cli implements the formkit command tree: render, fill, serve and
// schema.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

var version = "dev"

// Option configures the command tree. Tests use them to swap terminal I/O.
type Option func(*app)

// WithIO redirects the command streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

// WithPromptDriver replaces the survey prompts used by fill. It also skips
// the interactive terminal check.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	driver tui.PromptDriver

	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand assembles the formkit command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "formkit",
		Short: "Declarative forms, tables and dashboards",
		Long: `formkit renders dashboard, table and form pages from declarative schemas.

Forms validate field by field as values change and only hand values off
once every field passes.`,
		Example: `  # Write the stock form page to a file
  formkit render form -o form.html

  # Fill a form from the terminal and print JSON
  formkit fill --schema contact.yaml

  # Import a form schema from an OpenAPI operation
  formkit schema import openapi.yaml createItem`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a JSON config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		a.newRenderCommand(),
		a.newFillCommand(),
		a.newServeCommand(),
		a.newSchemaCommand(),
	)
	return root
}

// Execute runs the command tree with process I/O.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return nil
}

func (a *app) interactive() bool {
	if a.driver != nil {
		return true
	}
	f, ok := a.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeOutput writes data to path, or to the command output when path is "".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	return nil
}
