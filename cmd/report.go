package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the HTML report suite",
	Long: `Assembles the joined dataset and the newest coverage analysis into the
four HTML reports (troop counselors, non-counselor leaders, badge
coverage, recruitment priorities) under a timestamped output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		joined, err := store.LoadJoined()
		if err != nil {
			return err
		}
		analysis, _, err := store.LatestPriority()
		if err != nil {
			return err
		}
		if analysis == nil {
			return fmt.Errorf("no coverage analysis found, run 'mbcscope analyze' first")
		}

		exclusionFile, _ := cmd.Flags().GetString("exclusion-file")
		excl, err := loadExclusion(exclusionFile)
		if err != nil {
			return err
		}

		outputDir, _ := cmd.Flags().GetString("output-dir")

		rep := report.Assemble(joined, analysis, excl, time.Now())
		renderer, err := report.NewRenderer()
		if err != nil {
			return err
		}

		dir := filepath.Join(outputDir, report.OutputDirName(rep))
		files, err := renderer.RenderAll(rep, dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			utils.Log.Infof("wrote %s", f)
		}
		fmt.Printf("Wrote %d reports to %s\n", len(files), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("exclusion-file", "", "Exclusion list (one full name per line)")
	reportCmd.Flags().String("output-dir", "reports", "Directory to create the report folder in")
}
