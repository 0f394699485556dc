package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newHealthCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server readiness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}

			h, herr := c.Health(cmd.Context())
			out := cmd.OutOrStdout()
			if h.Status != "" {
				fmt.Fprintf(out, "status: %s\n", h.Status)
			}
			names := make([]string, 0, len(h.Checks))
			for name := range h.Checks {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %s\n", name, h.Checks[name])
			}
			return herr
		},
	}
}
