package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset [theme]",
	Short: "Delete stored progress",
	Long:  "Delete stored progress for one theme, or for everything when no theme is given. Theme flame counters are cleared too.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme := ""
		if len(args) == 1 {
			theme = args[0]
		}

		scope := "ALL themes"
		if theme != "" {
			scope = "theme " + theme
		}
		if !resetYes {
			fmt.Printf("This deletes progress for %s. Type 'yes' to continue: ", scope)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		_, _, st, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProgressRepo().Reset(cmd.Context(), theme); err != nil {
			return err
		}

		fmt.Printf("Progress for %s deleted.\n", scope)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}
