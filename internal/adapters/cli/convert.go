package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprints-go/internal/adapters/parser"
)

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	var (
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a blueprint file between puzzle text and YAML",
		Long: `Read a blueprint file (text or YAML) and write it in the other format.

Examples:
  blueprints convert input.txt --to yaml > blueprints.yaml
  blueprints convert blueprints.yaml --to text --output input.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blueprints, err := parser.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			switch to {
			case "yaml", "yml":
				return parser.EncodeYAML(out, blueprints)
			case "text", "txt":
				_, err := fmt.Fprint(out, parser.FormatBlueprints(blueprints))
				return err
			default:
				return fmt.Errorf("unknown format %q (expected yaml or text)", to)
			}
		},
	}

	cmd.Flags().StringVar(&to, "to", "yaml", "Output format: yaml or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
