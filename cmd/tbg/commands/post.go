package commands

import (
	"fmt"
	"os"
	"strconv"

	"tbgclient/forum"

	"github.com/spf13/cobra"
)

var (
	postSubject string
	postMessage string
	postIcon    string
)

func init() {
	postCmd.Flags().StringVar(&postSubject, "subject", "", "subject of the message")
	postCmd.Flags().StringVar(&postMessage, "message", "", "markup of the message")
	postCmd.Flags().StringVar(&postIcon, "icon", string(forum.IconStandard), "post icon name")
	rootCmd.AddCommand(postCmd)
}

var postCmd = &cobra.Command{
	Use:   "post <tid>",
	Short: "Posts a new message to a topic.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tid, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		icon, err := forum.ParsePostIcon(postIcon)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		_, err = forum.NewMessage(sess).Submit(cmd.Context(), forum.MessageOptions{
			Fields: forum.MessageFields{
				TID:     forum.Int(tid),
				Subject: forum.String(postSubject),
				Content: forum.String(postMessage),
				Icon:    &icon,
			},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println("posted")
	},
}
