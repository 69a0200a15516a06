package commands

import (
	"fmt"
	"os"
	"strconv"

	"tbgclient/forum"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var topicPage int

func init() {
	topicCmd.Flags().IntVar(&topicPage, "page", 1, "page of the topic to show")
	rootCmd.AddCommand(topicCmd)
}

var topicCmd = &cobra.Command{
	Use:   "topic <tid>",
	Short: "Prints a page of a topic's messages.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tid, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		topic := forum.NewTopic(sess)
		_, err = topic.Update(cmd.Context(), forum.TopicOptions{
			Fields: forum.TopicFields{TID: forum.Int(tid)},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		messages, err := topic.GetPage(cmd.Context(), topicPage)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		fmt.Printf("%s (page %d of %d)\n", deref(topic.TopicName), topicPage, topic.GetSize())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Mid", "User", "Date", "Subject"})
		for _, m := range messages {
			user := ""
			if m.User != nil {
				user = deref(m.User.Name)
			}
			t.AppendRow(table.Row{derefInt(m.MID), user, deref(m.Date), deref(m.Subject)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
