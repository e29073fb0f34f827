//go:build !linux

package system

import "context"

// WatchKeys needs evdev; elsewhere it only logs.
func WatchKeys(ctx context.Context, l logger, handlers KeyHandlers) {
	if l != nil && len(handlers) > 0 {
		l.Infof("input", "key watcher not supported on this platform")
	}
}
