/*
Copyright © 2026 Krzysztof Grykiel
*/
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/KGrykiel/eriast-derby/internal/session"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// maxPlayerPasses bounds the auto-pass loop so a roster that never
// finishes cannot hang a batch run.
const maxPlayerPasses = 10000

var simulateCmd = &cobra.Command{
	Use:   "simulate [track]",
	Short: "Run headless races in bulk",
	Long: `Runs a batch of races without the console and prints win statistics.
Player-controlled vehicles auto-pass their turns, so rosters meant for
simulation should use AI control.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vehicles, _ := cmd.Flags().GetStringSlice("vehicles")
		races, _ := cmd.Flags().GetInt("races")
		seed := viper.GetInt64("seed")

		if len(vehicles) == 0 {
			fmt.Println("Error: must specify at least one vehicle with --vehicles")
			os.Exit(1)
		}
		if races < 1 {
			races = 1
		}

		wins := map[string]int{}
		draws := 0
		totalRounds := 0

		bar := progressbar.Default(int64(races), "Simulating")

		for i := 0; i < races; i++ {
			raceSeed := seed
			if raceSeed != 0 {
				raceSeed += int64(i)
			}

			app, err := session.NewSession(session.Config{
				DataDirs: dataDirs(),
				Track:    args[0],
				Vehicles: vehicles,
				Seed:     raceSeed,
			})
			if err != nil {
				fmt.Printf("\nFailed to bootstrap race %d: %v\n", i+1, err)
				os.Exit(1)
			}

			if err := runHeadless(app); err != nil {
				fmt.Printf("\nRace %d aborted: %v\n", i+1, err)
				os.Exit(1)
			}

			machine := app.Machine()
			if w := machine.Winner(); w != nil {
				wins[w.Name]++
			} else {
				draws++
			}
			totalRounds += machine.Round()
			app.Close()

			_ = bar.Add(1)
		}

		fmt.Printf("\nRaces: %d, average rounds: %.1f\n", races, float64(totalRounds)/float64(races))

		names := make([]string, 0, len(wins))
		for name := range wins {
			names = append(names, name)
		}
		sort.Slice(names, func(a, b int) bool { return wins[names[a]] > wins[names[b]] })
		for _, name := range names {
			fmt.Printf("  %-20s %d wins (%.0f%%)\n", name, wins[name], 100*float64(wins[name])/float64(races))
		}
		if draws > 0 {
			fmt.Printf("  %-20s %d\n", "no winner", draws)
		}
	},
}

// runHeadless drives a session to completion, passing through any
// player pauses.
func runHeadless(app *session.Session) error {
	if err := app.Start(); err != nil {
		return err
	}
	for passes := 0; !app.Machine().IsGameOver(); passes++ {
		if passes >= maxPlayerPasses {
			return fmt.Errorf("race did not finish after %d player passes", maxPlayerPasses)
		}
		if err := app.Pass(); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringSliceP("vehicles", "v", nil, "vehicle presets to enter, in turn order")
	simulateCmd.Flags().IntP("races", "n", 100, "number of races to run")
}
