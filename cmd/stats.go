package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/screens/stats"
	"github.com/recall-cli/recall/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, catalog, st, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		engine := session.NewEngine(catalog, st.ProgressRepo(), st.EventRepo(), st.StatsRepo(), cfg)
		rows, err := stats.Collect(cmd.Context(), engine, catalog, st.StatsRepo())
		if err != nil {
			return err
		}

		totalCards, totalMastered := 0, 0
		for _, r := range rows {
			totalCards += r.Total
			totalMastered += r.Mastered
		}
		fmt.Printf("Overall: %d/%d cards mastered\n\n", totalMastered, totalCards)

		for _, r := range rows {
			line := fmt.Sprintf("%-24s %2d/%-2d mastered", r.Theme, r.Mastered, r.Total)
			if r.Stats.Attempts > 0 {
				line += fmt.Sprintf("  %3.0f%% accuracy", r.Stats.Accuracy()*100)
			}
			if r.Stats.Flames > 0 {
				line += fmt.Sprintf("  ~ %d", r.Stats.Flames)
			}
			fmt.Println(line)
		}
		return nil
	},
}
