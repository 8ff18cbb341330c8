// Package main is the entry point for the rpg-fitness binary
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rpg-fitness",
	Short: "Fitness RPG progression engine",
	Long: `rpg-fitness turns training into an RPG: daily and weekly quests, XP, levels,
ranks and skill trees, with an AI coach that mutates the profile through tools.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(doctorCmd)
}
