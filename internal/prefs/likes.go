package prefs

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/glabrego/rickmorty-cli/internal/logging"
	"github.com/glabrego/rickmorty-cli/internal/storage"
)

const likedKeyPrefix = "liked-"

// LikedKey is the storage key for one character's liked flag.
func LikedKey(characterID string) string {
	return likedKeyPrefix + characterID
}

// Likes holds the per-character liked flags. Every view of the same id
// reads through the same Likes value, so they always agree.
type Likes struct {
	kv  storage.KV
	log *zap.Logger

	mu    sync.Mutex
	cache map[string]bool

	subs subscribers[func(id string, liked bool)]
}

func NewLikes(kv storage.KV, logger *zap.Logger) *Likes {
	return &Likes{
		kv:    kv,
		log:   logging.OrNop(logger),
		cache: make(map[string]bool),
	}
}

func (l *Likes) IsLiked(characterID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lookupLocked(characterID)
}

func (l *Likes) lookupLocked(characterID string) bool {
	if v, ok := l.cache[characterID]; ok {
		return v
	}
	v := readBool(l.kv, l.log, LikedKey(characterID))
	l.cache[characterID] = v
	return v
}

// SetLiked persists v for characterID only and notifies subscribers.
func (l *Likes) SetLiked(characterID string, v bool) error {
	l.mu.Lock()
	l.cache[characterID] = v
	err := writeBool(l.kv, LikedKey(characterID), v)
	l.mu.Unlock()

	if err != nil {
		l.log.Warn("persist like failed", zap.String("character_id", characterID), zap.Bool("value", v), zap.Error(err))
	}
	l.subs.each(func(fn func(string, bool)) { fn(characterID, v) })
	return err
}

// ToggleLiked flips the flag for characterID and returns the new value.
func (l *Likes) ToggleLiked(characterID string) (bool, error) {
	l.mu.Lock()
	next := !l.lookupLocked(characterID)
	l.mu.Unlock()
	return next, l.SetLiked(characterID, next)
}

func (l *Likes) Subscribe(fn func(id string, liked bool)) func() {
	return l.subs.add(fn)
}

// LikedIDs lists every character id whose persisted flag is true, in
// numeric order.
func (l *Likes) LikedIDs() ([]string, error) {
	if l.kv == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	keys, err := l.kv.Keys(ctx, likedKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list liked keys: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id := strings.TrimPrefix(key, likedKeyPrefix)
		if l.IsLiked(id) {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids, nil
}
