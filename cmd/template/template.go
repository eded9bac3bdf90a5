// Package template contains the "template" command, which prints the raw
// job script templates.
package template

import (
	"fmt"
	"io"
	"strings"

	"github.com/ohsu-comp-bio/simbatch/batch"
	"github.com/spf13/cobra"
)

// NewCommand returns the template command
func NewCommand() *cobra.Command {
	var placeholders bool

	cmd := &cobra.Command{
		Use:   "template <kind>",
		Short: "Print a job script template.",
		Long: fmt.Sprintf(`Print the bash template of a job script kind.

Kinds: %s
Aliases: mpi, slurm, torque, pbs`, strings.Join(kindNames(), ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := batch.ParseKind(args[0])
			if err != nil {
				return err
			}
			if placeholders {
				return printPlaceholders(cmd.OutOrStdout(), kind)
			}
			tpl, err := batch.BashTemplate(kind)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tpl)
			return err
		},
	}

	cmd.Flags().BoolVarP(&placeholders, "placeholders", "p", false, "List the template placeholders instead")
	return cmd
}

func printPlaceholders(w io.Writer, kind batch.Kind) error {
	ph, err := batch.Placeholders(kind)
	if err != nil {
		return err
	}
	for i, p := range ph {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", i+1, p); err != nil {
			return err
		}
	}
	return nil
}

func kindNames() []string {
	var out []string
	for _, k := range batch.Kinds {
		out = append(out, string(k))
	}
	return out
}
