package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.rigtool.dev/rig/internal/core/domain"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Resolve declarations and write the lock file",
		Long:  "Resolve every declaration to the highest version satisfying its constraint and write rig.lock next to the manifest.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.app.Lock(cmd.Context())

			out := cmd.OutOrStdout()
			ok, fail, _ := marks(cmd)

			if errors.Is(err, domain.ErrResolutionFailed) && !plan.Diagnostics.OK() {
				for _, u := range plan.Diagnostics.Unresolved {
					name := u.Name
					if u.Constraint != "" {
						name += " " + u.Constraint
					}
					fmt.Fprintf(out, "%s %s: %s\n", fail, name, u.Reason)
				}
				return err
			}
			if err != nil {
				return err
			}

			for _, pin := range plan.Pins {
				if pin.Constraint != "" {
					fmt.Fprintf(out, "%s %s %s (%s)\n", ok, pin.Name, pin.Version, pin.Constraint)
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n", ok, pin.Name, pin.Version)
			}
			fmt.Fprintf(out, "locked %d tool(s)\n", len(plan.Pins))
			return nil
		},
	}
}
