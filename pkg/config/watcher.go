package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/burrowdns/burrow/pkg/log"
)

// EventType classifies what happened to the watched config file
type EventType int

const (
	// Created means the file appeared where it previously did not exist
	Created EventType = iota
	// Changed means the file's content was rewritten
	Changed
	// Removed means the file no longer exists
	Removed
)

func (t EventType) String() string {
	switch t {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one settled change to the config file
type Event struct {
	Type EventType
	Path string
}

// Watcher observes a single configuration file. It watches the file's
// parent directory so that editor rename-into-place writes and file
// creation/removal are all seen, and coalesces bursts of notifications
// with a debounce window before classifying what actually happened.
type Watcher struct {
	path     string
	interval time.Duration

	fs        *fsnotify.Watcher
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching the config file at path. The interval is the
// debounce window applied before an event is emitted. The file itself may
// not exist yet; its directory must.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		interval: interval,
		fs:       fs,
		events:   make(chan Event, 4),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events returns the channel of settled file events. It is closed after
// Close has been called.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.events)

	logger := log.WithComponent("config")
	exists := fileExists(w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.interval)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.interval)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Str("path", w.path).Msg("config watch error")

		case <-timerC:
			timer = nil
			timerC = nil

			now := fileExists(w.path)
			var event *Event
			switch {
			case now && !exists:
				event = &Event{Type: Created, Path: w.path}
			case now && exists:
				event = &Event{Type: Changed, Path: w.path}
			case !now && exists:
				event = &Event{Type: Removed, Path: w.path}
			}
			exists = now

			if event == nil {
				continue
			}
			logger.Debug().Str("path", w.path).Stringer("event", event.Type).Msg("config file event")
			select {
			case w.events <- *event:
			case <-w.done:
				return
			}

		case <-w.done:
			return
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
