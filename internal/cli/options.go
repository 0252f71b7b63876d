package cli

import (
	"fmt"
	"io"

	"github.com/Backland-Labs/dredd-runner/internal/dredd"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// optionView is the listing shape of a registry entry
type optionView struct {
	Name        string `yaml:"name"`
	Flag        string `yaml:"flag"`
	Kind        string `yaml:"kind"`
	Arity       int    `yaml:"arity"`
	NegatedName string `yaml:"negated_name,omitempty"`
	NegatedFlag string `yaml:"negated_flag,omitempty"`
}

func newOptionsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the dredd options accepted by --option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := optionViews(dredd.Options())
			switch format {
			case "text":
				return writeOptionsText(cmd.OutOrStdout(), views)
			case "yaml":
				return writeOptionsYAML(cmd.OutOrStdout(), views)
			default:
				return fmt.Errorf("--output must be one of: text, yaml; got: %s", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or yaml")
	return cmd
}

func optionViews(opts []dredd.Option) []optionView {
	views := make([]optionView, 0, len(opts))
	for _, opt := range opts {
		views = append(views, optionView{
			Name:        opt.Name,
			Flag:        opt.Flag,
			Kind:        string(opt.Kind),
			Arity:       opt.Arity,
			NegatedName: opt.NegatedName(),
			NegatedFlag: opt.NegatedFlag(),
		})
	}
	return views
}

func writeOptionsText(w io.Writer, views []optionView) error {
	for _, v := range views {
		line := fmt.Sprintf("%-14s %-17s %s", v.Name, v.Flag, v.Kind)
		if v.NegatedName != "" {
			line += fmt.Sprintf(" (%s: %s)", v.NegatedName, v.NegatedFlag)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeOptionsYAML(w io.Writer, views []optionView) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(views); err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	return enc.Close()
}
