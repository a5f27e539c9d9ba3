package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/textable/command"
)

// commandsCmd represents the commands command
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the registered commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommands(cmd.OutOrStdout(), command.Default())
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands(w io.Writer, reg *command.Registry) error {
	for _, name := range reg.List() {
		var args []string
		for _, a := range reg.Get(name).SupportedArguments() {
			if a != "" {
				args = append(args, a)
			}
		}
		if _, err := fmt.Fprintf(w, "%-8s %s\n", name, strings.Join(args, " ")); err != nil {
			return err
		}
	}
	return nil
}
