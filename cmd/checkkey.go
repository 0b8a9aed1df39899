package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-soiladvisor/advisory"
	"go-soiladvisor/config"
)

var checkKeyCmd = &cobra.Command{
	Use:   "check-key",
	Short: "Verify the API key by listing available models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.Gemini.Backend == config.BackendMock {
			fmt.Fprintln(out, warnStyle.Render("mock backend configured, no API key needed"))
			return nil
		}

		msg, ok := advisory.NewClient(cfg.Gemini, logger).CheckKey(cmd.Context())
		if !ok {
			fmt.Fprintln(out, errorStyle.Render(msg))
			return errors.New("api key check failed")
		}
		fmt.Fprintln(out, successStyle.Render(msg))
		return nil
	},
}
