package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline numbers from the newest coverage analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		path, err := store.LatestPriorityPath()
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("no coverage analysis found, run 'mbcscope analyze' first")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc := gjson.ParseBytes(data)

		fmt.Printf("Analysis file:   %s\n", path)
		fmt.Printf("Critical gaps:   %d\n", doc.Get("critical_gaps.#").Int())
		fmt.Printf("High priority:   %d\n", doc.Get("high_priority_gaps.#").Int())
		fmt.Printf("Medium priority: %d\n", doc.Get("medium_priority_gaps.#").Int())
		fmt.Printf("Adequate:        %d\n", doc.Get("adequate_coverage.#").Int())
		fmt.Printf("Scouts impacted: %d\n", doc.Get("scouts_impacted").Int())

		if crit := doc.Get(`critical_gaps.#.badge_name`); crit.Exists() && len(crit.Array()) > 0 {
			fmt.Println("\nCritical badges:")
			for _, b := range crit.Array() {
				fmt.Printf("  %s\n", b.String())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
