package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

// ErrNotInteractive is returned by fill when stdin is not a terminal.
var ErrNotInteractive = errors.New("fill needs an interactive terminal")

func (a *app) newFillCommand() *cobra.Command {
	var (
		schemaFile string
		format     string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively and print the submitted values",
		Long: `Fill prompts for every field of a form in order. A field is asked again
until its value is valid; the values are printed once the form submits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.interactive() {
				return ErrNotInteractive
			}
			outFormat, ok := tui.ParseOutputFormat(firstNonEmpty(format, a.cfg.OutputFormat))
			if !ok {
				return fmt.Errorf("unknown output format %q (want json, form or pretty)", format)
			}

			s, _, err := a.loadSchema(schemaFile)
			if err != nil {
				return err
			}
			f, err := form.New(s, form.WithLogger(a.logger))
			if err != nil {
				return err
			}

			opts := []tui.Option{tui.WithOutputFormat(outFormat), tui.WithLogger(a.logger)}
			if a.driver != nil {
				opts = append(opts, tui.WithPromptDriver(a.driver))
			} else {
				opts = append(opts, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
			}
			renderer, err := tui.New(opts...)
			if err != nil {
				return err
			}

			payload, err := renderer.Fill(cmd.Context(), f)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, append(payload, '\n'))
		},
	}
	cmd.Flags().StringVar(&schemaFile, "schema", "", "Schema document; defaults to config or the stock form")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, form, pretty); defaults to config")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}
