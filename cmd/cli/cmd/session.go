// Package cmd - session command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"pottery-cost/adapters/storage"
	"pottery-cost/core/cost"
	"pottery-cost/core/output"
	"pottery-cost/core/session"
	"pottery-cost/core/types"
	"pottery-cost/internal/config"
	"pottery-cost/internal/errors"
	"pottery-cost/internal/logging"
)

var (
	listPrefix string
	listLimit  int
	exportFile string
	sessionID  string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Save, list and compare costing sessions",
	Long: `Keep named costing sessions in the local database and compare how
the per-piece cost moved between two of them.

Examples:
  potcost session save "Mugs spring" mugs.hcl
  potcost session list --prefix mugs
  potcost session show 3f1c... --export mugs.json
  potcost session compare OLD_ID NEW_ID`,
}

// withStore opens the configured store for the length of fn
func withStore(fn func(ctx context.Context, s storage.Store) error) error {
	ctx := context.Background()
	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save NAME [profile]",
	Short: "Save a session under a name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadSession(args[1:])
		if err != nil {
			return err
		}
		sess := p.Session
		if p.Preset != "" {
			if _, err := applyPreset(context.Background(), p.Preset, &sess); err != nil {
				return err
			}
		}

		est, err := cost.NewEngine(logging.Named("engine")).Estimate(context.Background(), sess.Request())
		if err != nil {
			return err
		}
		rec := &storage.Record{
			ID:        sessionID,
			Name:      args[0],
			TotalCost: decimal.NewFromFloat(est.Breakdown.Total).Round(2),
			Session:   sess,
		}
		return withStore(func(ctx context.Context, s storage.Store) error {
			if err := s.Save(ctx, rec); err != nil {
				return err
			}
			newWriter().Success("Saved %q as %s (%s per piece)", rec.Name, rec.ID,
				output.MoneyDecimal(rec.TotalCost, config.Get().Currency))
			return nil
		})
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listLimit < 0 {
			return errors.Input("--limit must not be negative")
		}
		return withStore(func(ctx context.Context, s storage.Store) error {
			recs, err := s.List(ctx, &storage.ListFilter{NamePrefix: listPrefix, Limit: listLimit})
			if err != nil {
				return err
			}
			w := newWriter()
			if len(recs) == 0 {
				w.Println("No saved sessions.")
				return nil
			}
			cur := config.Get().Currency
			table := w.NewTable("ID", "Name", "Cost/piece", "Updated").AlignRight(2)
			for _, r := range recs {
				table.AddRow(r.ID, r.Name, output.MoneyDecimal(r.TotalCost, cur), r.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			table.Render()
			return nil
		})
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a saved session, or export it as a settings file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s storage.Store) error {
			rec, err := s.Get(ctx, args[0])
			if err != nil {
				return err
			}
			doc, err := session.Encode(rec.Session)
			if err != nil {
				return err
			}
			if exportFile != "" {
				if err := os.WriteFile(exportFile, doc, 0644); err != nil {
					return errors.Wrap(errors.TypeInput, "write settings file", err)
				}
				newWriter().Success("Exported %q to %s", rec.Name, exportFile)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		})
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s storage.Store) error {
			if err := s.Delete(ctx, args[0]); err != nil {
				return err
			}
			newWriter().Success("Deleted %s", args[0])
			return nil
		})
	},
}

var sessionCompareCmd = &cobra.Command{
	Use:   "compare OLD NEW",
	Short: "Compare the per-piece cost of two saved sessions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s storage.Store) error {
			cmp, err := storage.Compare(ctx, s, args[0], args[1])
			if err != nil {
				return err
			}
			cur := config.Get().Currency
			w := newWriter()
			table := w.NewTable("", "").AlignRight(1)
			table.AddRow("Old", output.MoneyDecimal(cmp.OldCost, cur))
			table.AddRow("New", output.MoneyDecimal(cmp.NewCost, cur))
			table.AddRow("Change", fmt.Sprintf("%s (%s%%)", signed(cmp.Delta, cur), cmp.DeltaPercent.StringFixed(2)))
			table.Render()
			return nil
		})
	},
}

func signed(d decimal.Decimal, c types.Currency) string {
	if d.IsNegative() {
		return "-" + output.MoneyDecimal(d.Neg(), c)
	}
	return "+" + output.MoneyDecimal(d, c)
}

func init() {
	sessionSaveCmd.Flags().StringVar(&sessionID, "id", "", "overwrite the session with this ID")
	sessionListCmd.Flags().StringVar(&listPrefix, "prefix", "", "only names starting with this (case-insensitive)")
	sessionListCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of sessions (0 is all)")
	sessionShowCmd.Flags().StringVar(&exportFile, "export", "", "write the settings file here instead of stdout")

	sessionCmd.AddCommand(sessionSaveCmd, sessionListCmd, sessionShowCmd, sessionDeleteCmd, sessionCompareCmd)
	rootCmd.AddCommand(sessionCmd)
}
