package main

import (
	"fmt"

	"github.com/smartsort-ai/plasticnet/internal/cli"
	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/spf13/cobra"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <type>",
		Short: "Show recycling guidance for a plastic type",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(_ *cobra.Command, args []string) error {
	plasticType, err := model.ParsePlasticType(args[0])
	if err != nil {
		return err
	}

	material, ok := model.MaterialFor(plasticType)
	if !ok {
		return fmt.Errorf("no material data for %s", plasticType)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s: %s (%s)", plasticType, material.FullName, material.RecyclingCode)))
	fmt.Printf("%s %s\n", cli.BoldStyle.Render("Recyclability:"), material.Recyclability)
	fmt.Printf("%s $%.2f/kg\n", cli.BoldStyle.Render("Scrap value:"), material.ValuePerKG)
	fmt.Printf("%s %v\n", cli.BoldStyle.Render("Curbside accepted:"), material.CurbsideAccepted)
	fmt.Printf("%s %s\n", cli.BoldStyle.Render("Instructions:"), material.Instructions)
	fmt.Println(cli.SubtleStyle.Render("Common items:"))
	for _, item := range material.CommonItems {
		fmt.Println(cli.SubtleStyle.Render("  - " + item))
	}
	return nil
}
