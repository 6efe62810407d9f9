package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.rigtool.dev/rig/internal/core/domain"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the lock file matches the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ok, _, warn := marks(cmd)

			switch res.State {
			case domain.LockFresh:
				fmt.Fprintf(out, "%s lock is fresh: %d tool(s) pinned\n", ok, len(res.Lock.Pins))
			case domain.LockStale:
				fmt.Fprintf(out, "%s lock is stale, manifest changed since it was written; run 'rig lock'\n", warn)
			case domain.LockMissing:
				fmt.Fprintf(out, "%s no lock file; run 'rig lock'\n", warn)
			}
			return nil
		},
	}
}
