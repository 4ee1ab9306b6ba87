package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/property-checklist/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		url, _ := cmd.Flags().GetString("listing-url")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		list, err := st.ListAssessments(ctx, store.AssessmentFilter{ListingURL: url, Limit: limit, Offset: offset})
		if err != nil {
			return eris.Wrap(err, "history list")
		}
		if len(list) == 0 {
			fmt.Fprintln(os.Stderr, "No assessments found.")
			return nil
		}
		formatAssessmentList(os.Stdout, list)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show a saved assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		a, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "history show")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(os.Stdout, a)
		}
		formatAssessment(os.Stdout, *a, true)
		return nil
	},
}

func init() {
	historyCmd.Flags().String("listing-url", "", "only assessments of this listing")
	historyCmd.Flags().Int("limit", 20, "maximum number of assessments")
	historyCmd.Flags().Int("offset", 0, "number of assessments to skip")
	historyShowCmd.Flags().Bool("json", false, "print the assessment as JSON")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
