package main

import (
	"fmt"

	"github.com/smartsort-ai/plasticnet/internal/cli"
	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate classification statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.GetStatistics(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Classification statistics"))
	fmt.Printf("%s %d\n", cli.BoldStyle.Render("Total classifications:"), stats.TotalClassifications)
	fmt.Printf("%s %.4f\n", cli.BoldStyle.Render("Average confidence:"), stats.AverageConfidence)
	fmt.Printf("%s %d\n", cli.BoldStyle.Render("Registered facilities:"), stats.TotalFacilities)
	fmt.Printf("%s %d\n", cli.BoldStyle.Render("Last 24 hours:"), stats.RecentActivity24h)

	if len(stats.ByType) > 0 {
		fmt.Println(cli.SubtleStyle.Render("By type:"))
		for _, t := range model.AllTypes() {
			if count, ok := stats.ByType[t]; ok {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  %-6s %d", t, count)))
			}
		}
	}

	clf, err := newClassifierForStatus()
	if err == nil {
		fmt.Printf("%s %s\n", cli.BoldStyle.Render("Model state:"), clf.State())
	}
	return nil
}
