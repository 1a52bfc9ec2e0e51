package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paddleball/config"
	"paddleball/server"
)

var (
	configPath string
	logFile    string
	logLevel   string

	appCfg config.Config
)

// rootCmd 入口：serve 启动 WebSocket 服务，play 在终端本地游玩，sim 无界面模拟
var rootCmd = &cobra.Command{
	Use:   "paddleball",
	Short: "Single-player paddle and ball game",
	Long: `paddleball runs a one-paddle bouncing ball game.

  serve  authoritative WebSocket server, browsers replay the recorded draw commands
  play   play locally in the terminal
  sim    headless run driven by the autopilot`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-file") {
			cfg.Log.File = logFile
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		// 终端模式下屏幕归 UI 所有，日志只写文件
		if cmd.Name() == "play" {
			cfg.Log.Stderr = false
		}
		appCfg = cfg

		return server.InitLogger(server.LogOptions{
			File:   cfg.Log.File,
			Level:  cfg.Log.Level,
			Stderr: cfg.Log.Stderr,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		server.SyncLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "paddleball.yaml", "config file (missing file means defaults)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "paddleball.log", "log file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "debug", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd, playCmd, simCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
