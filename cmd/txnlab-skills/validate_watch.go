package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/txnlab/skills/pkg/logger"
	"github.com/txnlab/skills/pkg/skills"
)

func (a *app) watchSkills(ctx context.Context, root, only string, config *ValidateConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := os.Stat(root); err != nil {
		return errors.Wrapf(err, "cannot watch skills directory %s", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := watchTree(ctx, watcher, root); err != nil {
		return err
	}

	if only != "" {
		a.validateNamed(root, only)
	} else {
		scanner, err := skills.NewScanner(skills.WithRoot(root))
		if err != nil {
			return err
		}
		if err := a.validateAll(scanner); err != nil && !errors.Is(err, errValidationFailed) {
			return err
		}
	}

	changes := make(chan string)
	batches := make(chan []string)
	go debounceSkillEvents(ctx, changes, time.Duration(config.DebounceTime)*time.Millisecond, batches)

	a.presenter.Info("")
	a.presenter.Info("Watching " + root + " for changes... Press Ctrl+C to stop")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := skillNameForPath(root, event.Name)
			if name == "" || (only != "" && name != only) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(ctx, watcher, event.Name); err != nil {
						logger.G(ctx).WithError(err).WithField("directory", event.Name).Warn("failed to watch new directory")
					}
				}
			}
			logger.G(ctx).WithField("file", event.Name).WithField("operation", event.Op.String()).Debug("skill change detected")

			select {
			case changes <- name:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.G(ctx).WithError(err).Error("error watching skills")
		case batch := <-batches:
			a.presenter.Info("")
			a.presenter.Section("Change detected: " + strings.Join(batch, ", "))
			for _, name := range batch {
				a.validateNamed(root, name)
			}
		case <-ctx.Done():
			a.presenter.Info("")
			return nil
		}
	}
}

// watchTree adds dir and every directory below it to the watcher
func watchTree(ctx context.Context, watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		logger.G(ctx).WithField("directory", path).Debug("adding directory to watcher")
		return errors.Wrapf(watcher.Add(path), "failed to watch %s", path)
	})
}

// skillNameForPath maps a changed path to the skill directory it belongs to.
// Paths outside a skill directory map to "".
func skillNameForPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	name := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	if strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}

// debounceSkillEvents collects skill names from in and emits them on out as
// one sorted, de-duplicated batch once delay has passed without a new event.
// All state is owned by this goroutine, and input is still accepted while a
// batch waits to be received.
func debounceSkillEvents(ctx context.Context, in <-chan string, delay time.Duration, out chan<- []string) {
	pending := make(map[string]struct{})
	var (
		timer  <-chan time.Time
		ready  []string
		sendCh chan<- []string
	)

	flush := func() {
		for _, name := range ready {
			pending[name] = struct{}{}
		}
		ready = make([]string, 0, len(pending))
		for name := range pending {
			ready = append(ready, name)
		}
		sort.Strings(ready)
		pending = make(map[string]struct{})
	}

	for {
		select {
		case name, ok := <-in:
			if !ok {
				if len(pending) > 0 || len(ready) > 0 {
					flush()
					select {
					case out <- ready:
					case <-ctx.Done():
					}
				}
				return
			}
			pending[name] = struct{}{}
			timer = time.After(delay)
		case <-timer:
			timer = nil
			flush()
			sendCh = out
		case sendCh <- ready:
			ready = nil
			sendCh = nil
		case <-ctx.Done():
			return
		}
	}
}
