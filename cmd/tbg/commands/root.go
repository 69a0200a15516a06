package commands

import (
	"context"
	"fmt"
	"os"

	"tbgclient/lib/configutil"
	"tbgclient/session"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// sess is shared by every subcommand, built in the root's PersistentPreRunE.
var sess *session.Session

var rootCmd = &cobra.Command{
	Use:   "tbg",
	Short: "tbg is a CLI for reading and posting to an SMF-style forum.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := configutil.ReadRecursively[Config]("tbgclient.json5")
		if err != nil {
			return fmt.Errorf("could not read tbgclient.json5: %w", err)
		}

		sess, err = session.New(session.Options{BaseURL: config.BaseUrl})
		if err != nil {
			return err
		}
		if config.Username != "" {
			err = sess.Login(cmd.Context(), config.Username, config.Password)
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
