package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the declared tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			decls, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, d := range decls {
				constraint := d.Constraint.String()
				if constraint == "" {
					constraint = "*"
				}
				fmt.Fprintf(w, "%s\t%s\n", d.Name, constraint)
			}
			return w.Flush()
		},
	}
}
