package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"paddleball/game"
	"paddleball/server"
)

var (
	simFrames    int
	simAutopilot bool
	simHitMode   string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session and print a summary",
	RunE:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&simFrames, "frames", 3600, "maximum frames to simulate")
	simCmd.Flags().BoolVar(&simAutopilot, "autopilot", true, "steer with the autopilot (otherwise the paddle never moves)")
	simCmd.Flags().StringVar(&simHitMode, "hit-mode", "", "override paddle hit mode: center or radius")
}

// simResult 一次无界面模拟的结果
type simResult struct {
	Session       string
	Status        game.Status
	Frames        int
	PaddleBounces int
	WallBounces   int
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg := appCfg.Game
	if simHitMode != "" {
		cfg.HitMode = game.HitMode(simHitMode)
	}
	res, err := simulate(cfg, simFrames, simAutopilot, server.Log.Desugar())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "session %s: %s after %d frames, %d paddle bounces, %d wall bounces\n",
		res.Session, res.Status, res.Frames, res.PaddleBounces, res.WallBounces)
	return nil
}

// simulate 用 FrameQueue 直接驱动主循环，不经过任何定时器
func simulate(cfg game.Config, frames int, autopilot bool, log *zap.Logger) (simResult, error) {
	q := game.NewFrameQueue()
	rec := &game.Recorder{}
	loop, err := game.NewLoop(cfg, q, rec, game.WithLogger(log))
	if err != nil {
		return simResult{}, err
	}

	loop.Start()
	n := 1
	for n < frames && loop.Status() == game.StatusRunning {
		if autopilot {
			snap, _ := loop.Snapshot()
			loop.SetInput(game.Autopilot(cfg, snap.State))
		}
		n += q.RunFrame()
		rec.Take()
	}

	snap, _ := loop.Snapshot()
	return simResult{
		Session:       snap.ID,
		Status:        snap.State.Status,
		Frames:        n,
		PaddleBounces: snap.State.PaddleBounces,
		WallBounces:   snap.State.WallBounces,
	}, nil
}
