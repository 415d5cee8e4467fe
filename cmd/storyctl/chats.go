package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Inspect dialogue branches",
}

var recentLimit int

var chatsRecentCmd = &cobra.Command{
	Use:   "recent <characterId>",
	Short: "List the most recently active branches of a character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		branches, err := store.Services.RecentChats.ListRecentChats(args[0], recentLimit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, b := range branches {
			mark := " "
			if b.IsCurrent {
				mark = "*"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", mark, b.NodeID, b.MessageCount, b.UpdatedAt.Format("2006-01-02 15:04"), b.Title)
		}
		return w.Flush()
	},
}

var chatsSwitchCmd = &cobra.Command{
	Use:   "switch <characterId> <nodeId>",
	Short: "Make a branch the current conversation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.Services.RecentChats.SwitchChat(args[0], args[1])
	},
}

func init() {
	chatsRecentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "number of branches (default from STORYLOOM_RECENT_CHAT_LIMIT)")
	chatsCmd.AddCommand(chatsRecentCmd, chatsSwitchCmd)
	rootCmd.AddCommand(chatsCmd)
}
