package main

import (
	"os"
	"time"

	"aspiro/internal/client"

	"github.com/spf13/cobra"
)

const envAPIURL = "SKILLCTL_API_URL"

type rootOptions struct {
	apiURL  string
	timeout time.Duration
}

func (o *rootOptions) client() (*client.Client, error) {
	return client.New(o.apiURL, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "skillctl",
		Short:         "Client for the skill extraction API",
		Long:          "skillctl sends text to the skill extraction API and prints the skills it finds. It can also register users and probe server health.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultURL := os.Getenv(envAPIURL)
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", defaultURL, "API base URL (env "+envAPIURL+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Request timeout")

	cmd.AddCommand(
		newExtractCmd(opts),
		newRegisterCmd(opts),
		newHealthCmd(opts),
	)
	return cmd
}
