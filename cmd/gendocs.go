package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var genMarkdownCmd = &cobra.Command{
	Use:    "genmarkdown [dir]",
	Short:  "generate markdown formatted documentation for the simbatch commands",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./simbatch-cmd-docs"
		if len(args) == 1 {
			dir = args[0]
		}
		return doc.GenMarkdownTree(RootCmd, dir)
	},
}
