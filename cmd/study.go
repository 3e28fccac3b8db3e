package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/app"
	"github.com/recall-cli/recall/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study [theme]",
	Short: "Start a study session",
	Long:  "Open the trainer. With a theme argument, jump straight into a session over that theme.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme := ""
		if len(args) == 1 {
			theme = args[0]
		}
		return runApp(cmd, theme)
	},
}

// runApp opens the store, builds the engine, and launches the TUI.
func runApp(cmd *cobra.Command, startTheme string) error {
	cfg, catalog, st, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if startTheme != "" && catalog.ThemeSize(startTheme) == 0 {
		return fmt.Errorf("unknown theme %q; run `recall themes` to list them", startTheme)
	}

	engine := session.NewEngine(catalog, st.ProgressRepo(), st.EventRepo(), st.StatsRepo(), cfg)

	return app.Run(app.Options{
		Engine:     engine,
		Catalog:    catalog,
		Stats:      st.StatsRepo(),
		StartTheme: startTheme,
	})
}
