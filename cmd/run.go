package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/report"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline",
	Long: `Joins rosters with the previously scraped counselor data, aggregates
demand, computes recruitment priorities, and renders the report suite in
one shot. Scraping stays a separate step since it needs credentials and
network access; run 'mbcscope scrape' first to refresh counselor data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		universe, err := loadUniverse(cmd)
		if err != nil {
			return err
		}

		rosterDir, _ := cmd.Flags().GetString("roster-dir")
		supplementalFile, _ := cmd.Flags().GetString("supplemental-file")
		signupFile, _ := cmd.Flags().GetString("signup-file")
		requestFile, _ := cmd.Flags().GetString("request-file")
		exclusionFile, _ := cmd.Flags().GetString("exclusion-file")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		dbPath, _ := cmd.Flags().GetString("dbpath")

		excl, err := loadExclusion(exclusionFile)
		if err != nil {
			return err
		}

		// Stage 1: join
		joined, err := runJoin(store, universe, rosterDir, supplementalFile)
		if err != nil {
			return err
		}
		if _, err := store.SaveJoined(joined); err != nil {
			return err
		}
		if dbPath != "" {
			if err := recordHistory(dbPath, joined); err != nil {
				return err
			}
		}

		// Stage 2: demand
		demandAnalysis, _, err := store.LatestDemand()
		if err != nil {
			return err
		}
		if signupFile != "" || requestFile != "" {
			demandAnalysis, err = runDemand(universe, signupFile, requestFile)
			if err != nil {
				return err
			}
			if _, err := store.SaveDemand(demandAnalysis, time.Now()); err != nil {
				return err
			}
		} else if demandAnalysis == nil {
			utils.Log.Warn("no demand inputs or prior demand analysis, priorities use coverage alone")
		}

		// Stage 3: coverage priorities
		analysis := runAnalyze(universe, joined, demandAnalysis, excl)
		if _, err := store.SavePriority(analysis, time.Now()); err != nil {
			return err
		}

		// Stage 4: reports
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

		fmt.Printf("Adults: %d  Counselor matches: %d\n", joined.TotalAdults, joined.MBCMatches)
		fmt.Printf("Critical: %d  High: %d  Medium: %d  Scouts impacted: %d\n",
			len(analysis.Critical), len(analysis.High), len(analysis.Medium), analysis.ScoutsImpacted)
		fmt.Printf("Wrote %d reports to %s\n", len(files), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("roster-dir", "data/input", "Directory containing roster HTML exports")
	runCmd.Flags().String("supplemental-file", "", "Supplemental counselor list (one \"Name, Unit\" per line)")
	runCmd.Flags().String("signup-file", "", "Merit badge signup export (CSV)")
	runCmd.Flags().String("request-file", "", "Merit badge request list (XLSX)")
	runCmd.Flags().String("exclusion-file", "", "Exclusion list (one full name per line)")
	runCmd.Flags().String("output-dir", "reports", "Directory to create the report folder in")
	runCmd.Flags().String("dbpath", "mbcscope.sqlite", "Path to SQLite DB file (empty to skip history)")
}
