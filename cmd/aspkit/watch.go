package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/syncthing/notify"

	"aspkit/internal/driver"
)

const watchDebounce = 150 * time.Millisecond

// watchAndDiagnose runs check once, then again after every burst of
// changes to pages under path, until ctx is done. opts decides which
// files count as pages.
func watchAndDiagnose(ctx context.Context, path string, opts driver.Options, check func() error) error {
	if err := check(); err != nil {
		return err
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	target := root
	if info.IsDir() {
		target = filepath.Join(root, "...")
	} else {
		root = filepath.Dir(root)
	}

	// Notify drops events when the receiver lags; the buffer covers a burst.
	c := make(chan notify.EventInfo, 64)
	if err := notify.Watch(target, c, notify.Create, notify.Write, notify.Remove, notify.Rename); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer notify.Stop(c)
	fmt.Fprintf(os.Stderr, "watching %s for changes (Ctrl+C to stop)\n", path)

	var timer *time.Timer
	timeout := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c:
			if !watched(root, ev.Path(), opts) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(watchDebounce)
		case <-timeout():
			timer = nil
			fmt.Fprintf(os.Stderr, "\n--- %s\n", time.Now().Format(time.TimeOnly))
			if err := check(); err != nil {
				return err
			}
		}
	}
}

// watched skips files the checker ignores and everything under hidden
// directories below root, such as the disk cache.
func watched(root, path string, opts driver.Options) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return false
		}
	}
	return opts.Accepts(path)
}
