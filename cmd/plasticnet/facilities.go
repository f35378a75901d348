package main

import (
	"fmt"

	"github.com/smartsort-ai/plasticnet/internal/cli"
	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func facilitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facilities",
		Short: "Find and register recycling facilities",
	}

	cmd.AddCommand(facilitiesNearbyCmd())
	cmd.AddCommand(facilitiesAddCmd())

	return cmd
}

func facilitiesNearbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List drop-off facilities near a location",
		Long: `List registered facilities within a radius of the given location,
sorted by distance. Filter with --type to only show facilities accepting a
specific plastic type (PET, HDPE, OTHER).`,
		RunE: runFacilitiesNearby,
	}

	cmd.Flags().Float64("lat", 0, "Latitude of the search origin")
	cmd.Flags().Float64("lon", 0, "Longitude of the search origin")
	cmd.Flags().String("type", "", "Only facilities accepting this plastic type")
	cmd.Flags().Float64("radius", 0, "Search radius in km (default from config)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func runFacilitiesNearby(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	radius, _ := cmd.Flags().GetFloat64("radius")
	if radius <= 0 {
		radius = viper.GetFloat64("facilities.default_radius_km")
	}

	var plasticType *model.PlasticType
	if typeArg, _ := cmd.Flags().GetString("type"); typeArg != "" {
		parsed, err := model.ParsePlasticType(typeArg)
		if err != nil {
			return err
		}
		plasticType = &parsed
	}

	matches, err := store.GetNearbyFacilities(ctx, lat, lon, plasticType, radius)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("No facilities within %.1f km", radius)))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%d facilities within %.1f km", len(matches), radius)))
	for _, match := range matches {
		fmt.Printf("%s  %.2f km (%s)\n",
			cli.BoldStyle.Render(match.Name), match.DistanceKM, formatTypes(match.AcceptedTypes))
		fmt.Println(cli.SubtleStyle.Render("  " + match.Address))
		if match.Hours != "" {
			fmt.Println(cli.SubtleStyle.Render("  " + match.Hours))
		}
		if match.Phone != "" {
			fmt.Println(cli.SubtleStyle.Render("  " + match.Phone))
		}
	}
	return nil
}

func facilitiesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new recycling facility",
		RunE:  runFacilitiesAdd,
	}

	cmd.Flags().String("name", "", "Facility name")
	cmd.Flags().Float64("lat", 0, "Latitude")
	cmd.Flags().Float64("lon", 0, "Longitude")
	cmd.Flags().String("address", "", "Street address")
	cmd.Flags().Bool("accepts-pet", true, "Facility accepts PET")
	cmd.Flags().Bool("accepts-hdpe", true, "Facility accepts HDPE")
	cmd.Flags().Bool("accepts-other", false, "Facility accepts OTHER plastics")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().String("hours", "", "Opening hours")
	cmd.Flags().String("website", "", "Website URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func runFacilitiesAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	facility := &model.Facility{}
	facility.Name, _ = cmd.Flags().GetString("name")
	facility.Latitude, _ = cmd.Flags().GetFloat64("lat")
	facility.Longitude, _ = cmd.Flags().GetFloat64("lon")
	facility.Address, _ = cmd.Flags().GetString("address")
	facility.AcceptsPET, _ = cmd.Flags().GetBool("accepts-pet")
	facility.AcceptsHDPE, _ = cmd.Flags().GetBool("accepts-hdpe")
	facility.AcceptsOther, _ = cmd.Flags().GetBool("accepts-other")
	facility.Phone, _ = cmd.Flags().GetString("phone")
	facility.Hours, _ = cmd.Flags().GetString("hours")
	facility.Website, _ = cmd.Flags().GetString("website")

	id, err := store.RegisterFacility(ctx, facility)
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Registered facility #%d: %s", id, facility.Name)))
	return nil
}
