package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
)

var (
	statusUserID string
	questsUserID string
	questsForce  bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a user's level, stats and pillars",
	RunE:  runStatus,
}

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Print a user's active quests, generating them when due",
	RunE:  runQuests,
}

func init() {
	statusCmd.Flags().StringVar(&statusUserID, "user", "", "user to show")
	_ = statusCmd.MarkFlagRequired("user")

	questsCmd.Flags().StringVar(&questsUserID, "user", "", "user to show")
	questsCmd.Flags().BoolVar(&questsForce, "force", false, "regenerate even when the current set is still valid")
	_ = questsCmd.MarkFlagRequired("user")
}

func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()
	return fn(a)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		out, err := a.coach.GetState(cmd.Context(), &coach.GetStateInput{UserID: statusUserID})
		if err != nil {
			return err
		}
		renderStatus(cmd.OutOrStdout(), out.Snapshot)
		return nil
	})
}

func runQuests(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		out, err := a.coach.GenerateQuests(cmd.Context(), &coach.GenerateQuestsInput{
			UserID: questsUserID,
			Force:  questsForce,
		})
		if err != nil {
			return err
		}
		renderQuests(cmd.OutOrStdout(), out)
		return nil
	})
}

func renderStatus(w io.Writer, snap *fitness.Snapshot) {
	u := snap.User

	profile := table.NewWriter()
	profile.SetOutputMirror(w)
	profile.SetStyle(table.StyleLight)
	profile.AppendRows([]table.Row{
		{"Name", u.Name},
		{"Rank", u.Rank},
		{"Level", u.Level},
		{"XP", fmt.Sprintf("%d / %d", u.Exp, u.ExpToNextLevel)},
		{"Tier", u.AthleteTier},
		{"Streak", u.Streak},
		{"Workouts", u.TotalWorkouts},
	})
	profile.AppendSeparator()
	for _, name := range fitness.StatNames {
		v, _ := u.Stats.Get(name)
		profile.AppendRow(table.Row{name, v})
	}
	profile.Render()

	pillars := table.NewWriter()
	pillars.SetOutputMirror(w)
	pillars.SetStyle(table.StyleLight)
	pillars.AppendHeader(table.Row{"Pillar", "Level", "XP", "Skills"})
	for _, p := range fitness.AllPillars {
		pl := u.Pillar(p)
		if pl == nil {
			pillars.AppendRow(table.Row{p, 0, "-", 0})
			continue
		}
		pillars.AppendRow(table.Row{p, pl.Level, fmt.Sprintf("%d / %d", pl.XP, pl.XPToNext), len(pl.UnlockedSkills)})
	}
	pillars.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	pillars.Render()

	if len(u.Debuffs) > 0 {
		debuffs := table.NewWriter()
		debuffs.SetOutputMirror(w)
		debuffs.SetStyle(table.StyleLight)
		debuffs.AppendHeader(table.Row{"Debuff", "Affects"})
		for _, d := range u.Debuffs {
			debuffs.AppendRow(table.Row{d.Name, fmt.Sprint(d.AffectedExercises)})
		}
		debuffs.Render()
	}
}

func renderQuests(w io.Writer, out *coach.GenerateQuestsOutput) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Quest", "Pillar", "Sets x Reps", "XP", "Status"})
	appendQuests := func(quests []fitness.Quest) {
		for _, q := range quests {
			t.AppendRow(table.Row{q.Type, q.Name, q.Pillar, fmt.Sprintf("%d x %s", q.Sets, q.Reps), q.XPReward, q.Status})
		}
	}
	appendQuests(out.Daily)
	t.AppendSeparator()
	appendQuests(out.Weekly)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight}})

	switch {
	case out.Fallback:
		t.SetCaption("AI gateway unavailable, built locally.")
	case !out.Generated:
		t.SetCaption("Current set is still valid.")
	}
	t.Render()
}
