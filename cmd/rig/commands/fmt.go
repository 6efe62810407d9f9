package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite the manifest in canonical form",
		Long:  "Print the manifest in canonical form: one declaration per line, no comments, no spaces inside constraints. With --write the file is rewritten in place.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write, _ := cmd.Flags().GetBool("write")

			res, err := c.app.Format(cmd.Context(), write)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !write {
				_, err = out.Write(res.Canonical)
				return err
			}

			if res.Changed {
				fmt.Fprintf(out, "formatted %s\n", res.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Write the canonical form back to the manifest")
	return cmd
}
