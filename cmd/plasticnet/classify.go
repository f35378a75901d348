package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/smartsort-ai/plasticnet/internal/cli"
	"github.com/smartsort-ai/plasticnet/internal/common"
	"github.com/smartsort-ai/plasticnet/internal/engine"
	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/smartsort-ai/plasticnet/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <image-or-directory>",
		Short: "Classify plastic waste from a photo",
		Long: `Classify a photograph of plastic waste into a material category and
record the result in the classification history.

Pass a directory to classify every image in it. Supply --lat and --lon to
also list nearby drop-off facilities that accept the predicted type.

Examples:
  plasticnet classify bottle.jpg
  plasticnet classify bottle.jpg --lat 12.9716 --lon 77.5946
  plasticnet classify ./photos --radius 25`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Float64("lat", 0, "Latitude for nearby facility lookup")
	cmd.Flags().Float64("lon", 0, "Longitude for nearby facility lookup")
	cmd.Flags().Float64("radius", 0, "Facility search radius in km (default from config)")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	clf, err := initClassifier(ctx)
	if err != nil {
		fmt.Println(cli.ErrorStyle.Render("Classification unavailable"))
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("reason: %s (%s)", err, common.KindOf(err))))
		return nil
	}

	eng := engine.New(store, clf, engine.Config{
		DefaultRadiusKM: viper.GetFloat64("facilities.default_radius_km"),
	})

	var lat, lon *float64
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		latVal, _ := cmd.Flags().GetFloat64("lat")
		lonVal, _ := cmd.Flags().GetFloat64("lon")
		lat, lon = &latVal, &lonVal
	}
	radius, _ := cmd.Flags().GetFloat64("radius")

	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	if info.IsDir() {
		return classifyDirectory(cmd, eng, store, args[0], lat, lon, radius)
	}
	return classifyOne(cmd, eng, store, args[0], lat, lon, radius, true)
}

func classifyOne(cmd *cobra.Command, eng *engine.Engine, store service.Storage, path string, lat, lon *float64, radius float64, verbose bool) error {
	ctx := cmd.Context()

	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	result, err := eng.Classify(ctx, engine.Request{
		Image:     image,
		ImageName: filepath.Base(path),
		Latitude:  lat,
		Longitude: lon,
		RadiusKM:  radius,
	})
	if err != nil {
		// A failed prediction is an informative outcome, not a crash.
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("Could not classify %s", filepath.Base(path))))
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("reason: %s (%s)", err, common.KindOf(err))))
		return nil
	}

	// Persist after a successful prediction; transient store errors are
	// retried here, never inside the core.
	var historyID int64
	appendErr := common.WithRetry(ctx, func() error {
		var err error
		historyID, err = store.AppendClassification(ctx, result.Prediction.Type, result.Prediction.Confidence, filepath.Base(path))
		return err
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: 200 * time.Millisecond})
	if appendErr != nil {
		return appendErr
	}

	if verbose {
		renderResult(path, result, historyID)
	} else {
		fmt.Printf("%s  %s  %.1f%%\n",
			filepath.Base(path),
			cli.BoldStyle.Render(string(result.Prediction.Type)),
			result.Prediction.Confidence*100)
	}
	return nil
}

func classifyDirectory(cmd *cobra.Command, eng *engine.Engine, store service.Storage, dir string, lat, lon *float64, radius float64) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif":
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)

	if len(images) == 0 {
		fmt.Println(cli.WarningStyle.Render("No images found in " + dir))
		return nil
	}

	bar := progressbar.Default(int64(len(images)), "classifying")
	for _, path := range images {
		if err := classifyOne(cmd, eng, store, path, lat, lon, radius, false); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

func renderResult(path string, result *engine.Result, historyID int64) {
	p := result.Prediction

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s: %s", filepath.Base(path), p.Type)))
	fmt.Printf("%s %s (%s)\n", cli.BoldStyle.Render("Material:"), p.Material.FullName, p.Material.RecyclingCode)
	fmt.Printf("%s %.1f%% (%s)\n", cli.BoldStyle.Render("Confidence:"), p.Confidence*100, result.Tier)
	fmt.Printf("%s %s\n", cli.BoldStyle.Render("Recyclability:"), p.Material.Recyclability)
	fmt.Printf("%s %s\n", cli.BoldStyle.Render("Instructions:"), p.Material.Instructions)
	fmt.Printf("%s $%.2f/kg, curbside: %v\n", cli.BoldStyle.Render("Scrap value:"), p.Material.ValuePerKG, p.Material.CurbsideAccepted)

	fmt.Println(cli.SubtleStyle.Render("Probabilities:"))
	for _, t := range model.AllTypes() {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  %-6s %.4f", t, p.Probabilities[t])))
	}

	if len(result.Facilities) > 0 {
		fmt.Println(cli.TitleStyle.Render("Nearby facilities"))
		for _, f := range result.Facilities {
			fmt.Printf("  %s  %.2f km (%s)\n",
				cli.BoldStyle.Render(f.Name), f.DistanceKM, formatTypes(f.AcceptedTypes))
			fmt.Println(cli.SubtleStyle.Render("    " + f.Address))
		}
	}

	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("recorded as history entry #%d", historyID)))
}

func formatTypes(types []model.PlasticType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
