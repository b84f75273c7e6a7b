package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/scoutbook"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the Merit Badge Counselor search results",
	Long: `Logs in to the counselor search site with the credentials from the
config file, walks every page of the unit's proximity search, and saves
the extracted counselor records (plus the raw HTML pages when a capture
directory is set).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username := viper.GetString("scoutbook.username")
		password := viper.GetString("scoutbook.password")
		if username == "" || password == "" {
			return errors.New("scoutbook.username and scoutbook.password must be set in the config file")
		}

		params := scoutbook.SearchParams{
			UnitID:     viper.GetString("scoutbook.unit_id"),
			Zip:        viper.GetString("scoutbook.zip"),
			CouncilID:  viper.GetString("scoutbook.council_id"),
			DistrictID: viper.GetString("scoutbook.district_id"),
			Proximity:  viper.GetInt("scoutbook.proximity"),
		}
		captureDir, _ := cmd.Flags().GetString("capture-dir")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		client, err := scoutbook.New()
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := client.Login(ctx, username, password); err != nil {
			return err
		}
		counselors, err := client.ScrapeAll(ctx, params, captureDir)
		if err != nil {
			return err
		}

		path, err := store.SaveCounselors(counselors, time.Now())
		if err != nil {
			return err
		}
		utils.Log.Infof("saved %d counselors to %s", len(counselors), path)
		fmt.Printf("Extracted %d counselors\n", len(counselors))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().String("capture-dir", "data/scraped", "Directory for raw HTML page captures (empty to disable)")
}
