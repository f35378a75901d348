package main

import (
	"fmt"
	"strconv"

	"github.com/smartsort-ai/plasticnet/internal/cli"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the classification history",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent classifications, newest first",
		RunE:  runHistoryList,
	}

	cmd.Flags().Int("limit", 50, "Number of entries to show")
	cmd.Flags().Int("offset", 0, "Entries to skip")

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	entries, err := store.GetHistory(ctx, limit, offset)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No classifications recorded yet"))
		return nil
	}

	for _, entry := range entries {
		name := entry.ImageName
		if name == "" {
			name = "-"
		}
		fmt.Printf("#%-5d %s  %-6s %.1f%%  %s\n",
			entry.ID,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.PlasticType,
			entry.Confidence*100,
			cli.SubtleStyle.Render(name))
	}
	return nil
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	}
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q: %w", args[0], err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	existed, err := store.DeleteHistoryEntry(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("No history entry #%d", id)))
		return nil
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted history entry #%d", id)))
	return nil
}
