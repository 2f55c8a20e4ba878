package resources

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = 500 * time.Millisecond

// watchDir calls callback after a burst of changes in directory settles.
// It blocks until ctx is done.
func watchDir(
	ctx context.Context,
	directory string,
	delay time.Duration,
	callback func(),
	log *zap.Logger,
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = watcher.Add(directory)
	if err != nil {
		return err
	}

	reload := make(chan struct{}, 1)
	go scheduleReload(ctx, reload, delay, callback)
	handleWatcher(ctx, watcher, reload, log)
	return nil
}

func handleWatcher(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	reload chan<- struct{},
	log *zap.Logger,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Create|fsnotify.Rename) != 0 {
				select {
				case reload <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("resource watcher error", zap.Error(err))
		}
	}
}

func scheduleReload(
	ctx context.Context,
	reload <-chan struct{},
	delay time.Duration,
	callback func(),
) {
	var timer *time.Timer = nil
	var c <-chan time.Time = nil
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case <-reload:
			if timer != nil {
				timer.Reset(delay)
			} else {
				timer = time.NewTimer(delay)
				c = timer.C
			}

		case <-c:
			c = nil
			timer = nil
			callback()
		}
	}
}
