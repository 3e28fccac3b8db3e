package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, catalog, st, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		units, err := st.ProgressRepo().LoadAll(cmd.Context())
		if err != nil {
			return err
		}

		for _, theme := range catalog.Themes() {
			mastered := 0
			for _, c := range catalog.ByTheme(theme) {
				if units[c.Key()].Mastered {
					mastered++
				}
			}
			fmt.Printf("%-24s %d cards, %d mastered\n", theme, catalog.ThemeSize(theme), mastered)
		}
		return nil
	},
}
