package commands

import (
	"fmt"
	"os"
	"strconv"

	"tbgclient/forum"

	"github.com/spf13/cobra"
)

var (
	editSubject string
	editMessage string
	editReason  string
)

func init() {
	editCmd.Flags().StringVar(&editSubject, "subject", "", "new subject of the message")
	editCmd.Flags().StringVar(&editMessage, "message", "", "new markup of the message")
	editCmd.Flags().StringVar(&editReason, "reason", "", "reason shown in the edit footer")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <tid> <mid>",
	Short: "Overwrites one of your messages.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tid, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		mid, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		_, err = forum.NewMessage(sess).Submit(cmd.Context(), forum.MessageOptions{
			Method: forum.MethodEdit,
			Fields: forum.MessageFields{
				TID:     forum.Int(tid),
				MID:     forum.Int(mid),
				Subject: forum.String(editSubject),
				Content: forum.String(editMessage),
			},
			Params: forum.Params{Reason: editReason},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println("edited")
	},
}
