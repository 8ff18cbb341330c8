package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
)

var doctorDelete bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Scan stored snapshots for unreadable data",
	Long:  `Load every stored snapshot and report the ones that no longer decode. With --delete the corrupt entries are removed.`,
	RunE:  runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorDelete, "delete", false, "delete snapshots that fail to decode")
}

// doctorReport summarizes a scan
type doctorReport struct {
	Checked int
	Corrupt []string
	Deleted []string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		report, err := diagnose(cmd.Context(), a.repo, cmd.OutOrStdout(), doctorDelete)
		if err != nil {
			return err
		}
		if len(report.Corrupt) > len(report.Deleted) {
			return errors.DataLossf("%d corrupt snapshots left in place", len(report.Corrupt)-len(report.Deleted))
		}
		return nil
	})
}

func diagnose(ctx context.Context, repo snapshot.Repository, w io.Writer, deleteCorrupt bool) (*doctorReport, error) {
	list, err := repo.List(ctx, snapshot.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}

	report := &doctorReport{}
	for _, userID := range list.UserIDs {
		report.Checked++
		_, err := repo.Get(ctx, snapshot.GetInput{UserID: userID})
		switch {
		case err == nil, errors.IsNotFound(err):
			continue
		case errors.IsDataLoss(err):
			fmt.Fprintf(w, "corrupt: %s (%s)\n", userID, errors.GetMessage(err))
			report.Corrupt = append(report.Corrupt, userID)
		default:
			return report, errors.Wrapf(err, "failed to load snapshot for %s", userID)
		}
	}

	fmt.Fprintf(w, "checked %d snapshots, %d corrupt\n", report.Checked, len(report.Corrupt))
	if !deleteCorrupt {
		return report, nil
	}

	for _, userID := range report.Corrupt {
		if _, err := repo.Delete(ctx, snapshot.DeleteInput{UserID: userID}); err != nil {
			fmt.Fprintf(w, "failed to delete %s: %v\n", userID, err)
			continue
		}
		fmt.Fprintf(w, "deleted %s\n", userID)
		report.Deleted = append(report.Deleted, userID)
	}
	return report, nil
}
