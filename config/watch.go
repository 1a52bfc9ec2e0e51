package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce 编辑器保存时常连续触发多次写事件，合并后再加载
const DefaultDebounce = 300 * time.Millisecond

// Watcher 监听配置文件变化并回调新配置
type Watcher struct {
	path     string
	debounce time.Duration
	log      *zap.SugaredLogger
	onChange func(Config)
}

// NewWatcher 创建监听器；onChange 只会收到校验通过的配置
func NewWatcher(path string, log *zap.SugaredLogger, onChange func(Config)) *Watcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		log:      log,
		onChange: onChange,
	}
}

// Run 阻塞直到 ctx 取消。监听所在目录而非文件本身，以兼容"写临时文件再重命名"的保存方式
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.log.Infof("watching config %s", abs)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("config watcher: %v", err)
		case <-timer.C:
			cfg, err := Load(abs)
			if err != nil {
				w.log.Warnf("config reload rejected: %v", err)
				continue
			}
			w.log.Infof("config reloaded from %s", abs)
			w.onChange(cfg)
		}
	}
}
