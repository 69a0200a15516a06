package commands

import (
	"fmt"
	"os"
	"strconv"

	"tbgclient/forum"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(quoteCmd)
}

var quoteCmd = &cobra.Command{
	Use:   "quote <mid>",
	Short: "Prints the raw markup of a message via the quotefast action.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mid, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		message, err := forum.NewMessage(sess).Update(cmd.Context(), forum.MessageOptions{
			Method: forum.MethodQuoteFast,
			Fields: forum.MessageFields{MID: forum.Int(mid)},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(deref(message.Content))
	},
}
