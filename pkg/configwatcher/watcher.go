package configwatcher

import (
	"path/filepath"
	"time"

	"medipublish_backend/internal/config"
	"medipublish_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigReloader receives the freshly parsed configuration after a change
// to the watched file has settled.
type ConfigReloader func(cfg *config.Config)

const debounce = time.Second

// Watch blocks, reloading the config whenever the file is rewritten.
// Editors tend to fire several write events per save, so reloads are
// debounced. Intended to run in its own goroutine.
func Watch(configPath string, reloader ConfigReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(absPath); err != nil {
		return err
	}

	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-timer.C:
			cfg, err := config.LoadConfig(filepath.Dir(configPath))
			if err != nil {
				logger.Log.Error("Config reload failed, keeping previous settings", zap.Error(err))
				continue
			}
			logger.Log.Info("Configuration reloaded", zap.String("path", absPath))
			reloader(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
