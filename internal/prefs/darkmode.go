package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glabrego/rickmorty-cli/internal/logging"
	"github.com/glabrego/rickmorty-cli/internal/storage"
)

const (
	DarkModeKey = "isDarkMode"

	storeTimeout = 3 * time.Second
)

// DarkMode is the global light/dark display preference.
type DarkMode struct {
	kv  storage.KV
	log *zap.Logger

	mu     sync.Mutex
	loaded bool
	value  bool

	subs subscribers[func(bool)]
}

func NewDarkMode(kv storage.KV, logger *zap.Logger) *DarkMode {
	return &DarkMode{kv: kv, log: logging.OrNop(logger)}
}

// Get returns the current value, reading storage on first access.
// Absent, malformed or unreadable values count as false.
func (d *DarkMode) Get() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loaded {
		d.value = readBool(d.kv, d.log, DarkModeKey)
		d.loaded = true
	}
	return d.value
}

// Set stores v in memory, writes it through to storage and notifies
// subscribers. A write error is returned after subscribers have run.
func (d *DarkMode) Set(v bool) error {
	d.mu.Lock()
	d.value = v
	d.loaded = true
	err := writeBool(d.kv, DarkModeKey, v)
	d.mu.Unlock()

	if err != nil {
		d.log.Warn("persist dark mode failed", zap.Bool("value", v), zap.Error(err))
	}
	d.subs.each(func(fn func(bool)) { fn(v) })
	return err
}

func (d *DarkMode) Toggle() (bool, error) {
	d.mu.Lock()
	if !d.loaded {
		d.value = readBool(d.kv, d.log, DarkModeKey)
		d.loaded = true
	}
	next := !d.value
	d.mu.Unlock()
	return next, d.Set(next)
}

// Subscribe registers fn for every change. The returned func unsubscribes.
func (d *DarkMode) Subscribe(fn func(bool)) func() {
	return d.subs.add(fn)
}

func readBool(kv storage.KV, log *zap.Logger, key string) bool {
	if kv == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		log.Warn("read preference failed, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	log.Warn("malformed preference, using default", zap.String("key", key), zap.String("raw", raw))
	return false
}

func writeBool(kv storage.KV, key string, v bool) error {
	if kv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := kv.Set(ctx, key, strconv.FormatBool(v)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
