package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/join"
	"github.com/troop32/mbcscope/pkg/roster"
	"github.com/troop32/mbcscope/pkg/snapshot"
	"github.com/troop32/mbcscope/pkg/storage"
)

// joinCmd represents the join command
var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join unit rosters with the scraped counselor records",
	Long: `Parses the newest roster export per unit, folds in the supplemental
counselor list, matches everyone against the scraped counselor records,
and saves the joined dataset. When a database path is set the counselor
history is updated and changes since the last run are reported.`,
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

		result, err := runJoin(store, universe, rosterDir, supplementalFile)
		if err != nil {
			return err
		}

		path, err := store.SaveJoined(result)
		if err != nil {
			return err
		}
		utils.Log.Infof("saved joined dataset to %s", path)
		fmt.Printf("Adults: %d  Counselor matches: %d  Supplemental: %d\n",
			result.TotalAdults, result.MBCMatches, result.SupplementalMatches)

		dbPath, _ := cmd.Flags().GetString("dbpath")
		if dbPath != "" {
			if err := recordHistory(dbPath, result); err != nil {
				return err
			}
		}
		return nil
	},
}

// runJoin executes the roster/counselor/supplemental join against the
// newest inputs. It is shared with the run command.
func runJoin(store *snapshot.Store, universe *badge.Universe, rosterDir, supplementalFile string) (*join.Result, error) {
	var counselors []join.RawCounselor
	doc, err := store.LoadCounselors()
	switch {
	case err == nil:
		counselors = doc.Counselors
	case errors.Is(err, os.ErrNotExist):
		utils.Log.Warn("no scraped counselor data found, joining rosters only")
	default:
		return nil, err
	}

	var adults []join.RawAdult
	if rosterDir != "" {
		latest, err := roster.DetectLatest(rosterDir)
		if err != nil {
			return nil, err
		}
		for unit, path := range latest {
			unitAdults, err := roster.ParseFile(path, join.NormalizeUnit(unit))
			if err != nil {
				return nil, err
			}
			adults = append(adults, unitAdults...)
		}
	}

	var supplemental []join.SupplementalEntry
	if supplementalFile != "" {
		f, err := os.Open(supplementalFile)
		if err != nil {
			return nil, fmt.Errorf("opening supplemental list: %w", err)
		}
		entries, diags, perr := join.ParseSupplemental(f)
		f.Close()
		if perr != nil {
			return nil, fmt.Errorf("parsing supplemental list: %w", perr)
		}
		for _, d := range diags {
			utils.Log.Warn(d)
		}
		supplemental = entries
	}

	return join.New(universe).Join(adults, counselors, supplemental)
}

func recordHistory(dbPath string, result *join.Result) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entries := storage.BuildEntries(result.TroopCounselors)
	changes, err := db.RecordRun(context.Background(), entries)
	if err != nil {
		return err
	}
	if len(changes) > 0 {
		fmt.Printf("%d counselor change(s) since last run; see 'mbcscope changes'\n", len(changes))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(joinCmd)
	joinCmd.Flags().String("roster-dir", "data/input", "Directory containing roster HTML exports")
	joinCmd.Flags().String("supplemental-file", "", "Supplemental counselor list (one \"Name, Unit\" per line)")
	joinCmd.Flags().String("dbpath", "mbcscope.sqlite", "Path to SQLite DB file (empty to skip history)")
}
