package main

import (
	"github.com/spf13/cobra"

	"paddleball/server"
	"paddleball/tui"
)

var (
	playAutopilot bool
	playCols      int
	playRows      int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(appCfg.Game, tui.Options{
			Cols:      playCols,
			Rows:      playRows,
			FPS:       appCfg.TickRate,
			Autopilot: playAutopilot,
			Logger:    server.Log.Desugar(),
		})
	},
}

func init() {
	playCmd.Flags().BoolVar(&playAutopilot, "autopilot", false, "let the autopilot steer")
	playCmd.Flags().IntVar(&playCols, "cols", tui.DefaultCols, "canvas width in characters")
	playCmd.Flags().IntVar(&playRows, "rows", tui.DefaultRows, "canvas height in characters")
}
