package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.rigtool.dev/rig/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest",
		Long:  "Check that rig.txt is well formed: names are valid and unique, constraints parse and are satisfiable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Check(cmd.Context())
			if err != nil && !errors.Is(err, domain.ErrManifestInvalid) {
				return err
			}

			out := cmd.OutOrStdout()
			ok, fail, _ := marks(cmd)

			if !res.OK() {
				for _, issue := range res.Issues {
					fmt.Fprintf(out, "%s %s\n", fail, issue.String())
				}
				fmt.Fprintf(out, "%d issue(s) found\n", len(res.Issues))
				return err
			}

			fmt.Fprintf(out, "%s manifest ok: %d tool(s)\n", ok, res.Manifest.Len())
			return nil
		},
	}
}
