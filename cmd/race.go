/*
Copyright © 2026 Krzysztof Grykiel
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/KGrykiel/eriast-derby/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var raceCmd = &cobra.Command{
	Use:   "race [track]",
	Short: "Start an interactive race",
	Long: `Loads a track and a roster of vehicle presets, then opens the race
console. Player-controlled vehicles pause the race and wait for a
command each turn.

Usage:
	> attack ironclad
	> move
	> pass`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vehicles, _ := cmd.Flags().GetStringSlice("vehicles")
		historyPath, _ := cmd.Flags().GetString("history")

		if len(vehicles) == 0 {
			fmt.Println("Error: must specify at least one vehicle with --vehicles")
			os.Exit(1)
		}

		app, err := session.NewSession(session.Config{
			DataDirs:    dataDirs(),
			Track:       args[0],
			Vehicles:    vehicles,
			Seed:        viper.GetInt64("seed"),
			HistoryPath: historyPath,
		})
		if err != nil {
			fmt.Printf("Failed to bootstrap race session: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		if err := RunTUI(app, args[0]); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(raceCmd)
	raceCmd.Flags().StringSliceP("vehicles", "v", nil, "vehicle presets to enter, in turn order")
	raceCmd.Flags().String("history", "", "path to a JSONL race log (optional)")
}
