package main

import (
	"fmt"
	"strconv"

	"github.com/smartsort-ai/plasticnet/internal/cli"
	"github.com/smartsort-ai/plasticnet/internal/model"
	"github.com/spf13/cobra"
)

func feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback <classification-id>",
		Short: "Record feedback on a classification",
		Long: `Record whether a classification was correct. When it wasn't, supply
the actual plastic type with --actual.`,
		Args: cobra.ExactArgs(1),
		RunE: runFeedback,
	}

	cmd.Flags().Bool("correct", false, "The prediction was correct")
	cmd.Flags().String("actual", "", "The actual plastic type (PET, HDPE, OTHER)")
	cmd.Flags().String("comments", "", "Free-text comments")

	return cmd
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	classificationID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid classification id %q: %w", args[0], err)
	}

	feedback := &model.Feedback{ClassificationID: classificationID}
	feedback.Correct, _ = cmd.Flags().GetBool("correct")
	feedback.Comments, _ = cmd.Flags().GetString("comments")

	if actual, _ := cmd.Flags().GetString("actual"); actual != "" {
		parsed, err := model.ParsePlasticType(actual)
		if err != nil {
			return err
		}
		feedback.ActualType = parsed
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.SaveFeedback(ctx, feedback)
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded feedback #%d for classification #%d", id, classificationID)))
	return nil
}
