// Package cmd contains the simbatch CLI commands.
package cmd

import (
	"github.com/ohsu-comp-bio/simbatch/cmd/script"
	"github.com/ohsu-comp-bio/simbatch/cmd/sigfig"
	"github.com/ohsu-comp-bio/simbatch/cmd/template"
	"github.com/ohsu-comp-bio/simbatch/cmd/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "simbatch",
	Short:         "Generate batch job scripts for simulations.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.AddCommand(completionCmd)
	RootCmd.AddCommand(genMarkdownCmd)
	RootCmd.AddCommand(script.NewCommand())
	RootCmd.AddCommand(sigfig.NewCommand())
	RootCmd.AddCommand(template.NewCommand())
	RootCmd.AddCommand(version.Cmd)
}
