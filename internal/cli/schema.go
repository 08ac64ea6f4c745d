package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// importTimeout bounds fetching remote OpenAPI documents.
const importTimeout = 30 * time.Second

func (a *app) newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Check and import schema documents",
	}
	cmd.AddCommand(a.newSchemaCheckCommand(), a.newSchemaImportCommand())
	return cmd
}

func (a *app) newSchemaCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a schema document and list its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d fields\n", args[0], s.Len())
			for _, spec := range s.Fields() {
				rules := make([]string, len(spec.Constraints))
				for i, c := range spec.Constraints {
					rules[i] = c.Rule
				}
				line := fmt.Sprintf("  %s (%s)", spec.Name, spec.Kind.Name())
				if len(rules) > 0 {
					line += ": " + strings.Join(rules, ", ")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func (a *app) newSchemaImportCommand() *cobra.Command {
	var (
		format  string
		output  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "import <openapi> [operation]",
		Short: "Convert an OpenAPI operation request body into a schema document",
		Long: `Import reads an OpenAPI 3 document from a file or URL. Without an operation
it lists the operations it found; with one it writes the request body as a
schema document that check, render and fill accept.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openapi.ParseSource(args[0])
			if err != nil {
				return err
			}
			doc, err := openapi.NewLoader(openapi.WithHTTPFallback(timeout)).Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				ops, err := openapi.Operations(cmd.Context(), doc)
				if err != nil {
					return err
				}
				for _, id := range openapi.SortedIDs(ops) {
					op := ops[id]
					marker := ""
					if op.HasRequestBody() {
						marker = " [form]"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s%s\n", id, op.Method, op.Path, marker)
				}
				return nil
			}

			imported, err := openapi.ImportOperation(cmd.Context(), doc, args[1])
			if err != nil {
				return err
			}
			exported, skipped := schema.ExportDocument(imported.Schema)
			for _, name := range imported.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped property %s: no form equivalent\n", name)
			}
			for _, rule := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped constraint %s\n", rule)
			}
			a.logger.Debug("operation imported", "operation", args[1], "fields", imported.Schema.Len())

			data, err := encodeDocument(exported, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Document format (yaml, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().DurationVar(&timeout, "timeout", importTimeout, "Timeout for remote documents")
	return cmd
}

func encodeDocument(doc schema.Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(doc)
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown document format %q (want yaml or json)", format)
	}
}
