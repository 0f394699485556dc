package main

import (
	"fmt"

	"aspiro/internal/client"

	"github.com/spf13/cobra"
)

func newRegisterCmd(root *rootOptions) *cobra.Command {
	var (
		email    string
		fullName string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := client.CreateUserInput{Email: email, Password: password}
			if cmd.Flags().Changed("full-name") {
				in.FullName = &fullName
			}

			c, err := root.client()
			if err != nil {
				return err
			}
			u, err := c.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}

			name := "-"
			if u.FullName != nil {
				name = *u.FullName
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered user %d: %s (%s), active=%t\n", u.ID, u.Email, name, u.IsActive)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
