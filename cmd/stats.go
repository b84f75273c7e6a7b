package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/pkg/storage"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints per-badge counselor counts from the database.",
	Long:  "Prints per-badge counselor counts from the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("dbpath")
		if dbPath == "" {
			dbPath = "mbcscope.sqlite"
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("database file not found: %s", dbPath)
			}
			return err
		}
		defer db.Close()

		ctx := context.Background()
		stats, err := db.GetStats(ctx)
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No data in the database to generate stats.")
			return nil
		}

		total, err := db.CountCounselors(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "MERIT BADGE\tCOUNSELORS\t")

		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t\n", s.Badge, s.Counselors)
		}

		fmt.Fprintln(w, " \t \t")
		fmt.Fprintf(w, "TOTAL COUNSELORS\t%d\t\n", total)

		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: mbcscope.sqlite in CWD)")
}
