package server

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 是全局可用的 SugaredLogger，用于统一日志输出到文件
var Log = zap.NewNop().Sugar()

// LogOptions 日志初始化参数
type LogOptions struct {
	File   string // 日志文件路径，如 "paddleball.log"
	Level  string // debug/info/warn/error
	Stderr bool   // 是否同时输出到标准错误（终端模式下应关闭）
}

// InitLogger 初始化 zap 日志到本地文件（支持滚动）
func InitLogger(opts LogOptions) error {
	level := zapcore.DebugLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
	}

	// 文件滚动策略：10MB 每文件，保留3个备份
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   false,
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	ws := zapcore.AddSync(lj)
	if opts.Stderr {
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.Lock(os.Stderr))
	}
	core := zapcore.NewCore(encoder, ws, level)

	// 添加调用者信息（文件:行号）
	Log = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// SyncLogger 清理和同步缓冲
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
