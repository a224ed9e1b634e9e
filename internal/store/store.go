// Package store owns the canonical item collection and keeps it in sync
// with a KV backend. Every mutation is persisted before it returns.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/model"
)

// Store holds the items newest first.
// It is not safe for concurrent use; callers drive it from one goroutine.
type Store struct {
	kv    KV
	key   string
	items []model.Item

	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDFunc replaces the UUID generator.
func WithIDFunc(f func() string) Option { return func(s *Store) { s.newID = f } }

// New returns an empty store persisting under key. Call Load to read
// previously saved items.
func New(kv KV, key string, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   key,
		now:   time.Now,
		newID: uuid.NewString,
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one.
// Missing data leaves the store empty. Data that does not decode as an
// item array is discarded; only a backend read failure is returned.
func (s *Store) Load() error {
	s.items = nil

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok || raw == "" {
		return nil
	}

	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("discarding corrupt item data",
			zap.String("key", s.key), zap.Error(err))
		return nil
	}

	seen := make(map[string]bool, len(items))
	kept := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			s.log.Warn("dropping item with missing or duplicate id",
				zap.String("id", it.ID), zap.String("text", it.Text))
			continue
		}
		seen[it.ID] = true
		kept = append(kept, it)
	}
	s.items = kept
	s.log.Debug("loaded items", zap.Int("count", len(kept)))
	return nil
}

// Items returns a copy of the collection, newest first.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Get looks up an item by id.
func (s *Store) Get(id string) (model.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// Add validates text and inserts a new item at the head.
// Validation errors leave the collection untouched.
func (s *Store) Add(text, category string) (model.Item, error) {
	title, err := model.ValidateTitle(text)
	if err != nil {
		return model.Item{}, err
	}

	it := model.Item{
		ID:        s.uniqueID(),
		Text:      title,
		Category:  category,
		CreatedAt: s.now().UnixMilli(),
	}

	prev := s.items
	s.items = append([]model.Item{it}, s.items...)
	if err := s.persist(prev); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Remove deletes the item with id. An unknown id is not an error.
func (s *Store) Remove(id string) error {
	prev := s.items
	next := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	s.items = next
	return s.persist(prev)
}

// Update replaces the text of the item with id. It reports found=false
// and does nothing when no such item exists.
func (s *Store) Update(id, text string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	title, err := model.ValidateTitle(text)
	if err != nil {
		return true, err
	}

	prev := s.items
	s.items = append([]model.Item(nil), s.items...)
	s.items[i].Text = title
	return true, s.persist(prev)
}

// Clear removes every item.
func (s *Store) Clear() error {
	prev := s.items
	s.items = nil
	return s.persist(prev)
}

// persist writes the current collection; on failure it restores prev
// so memory never runs ahead of storage.
func (s *Store) persist(prev []model.Item) error {
	items := s.items
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		s.items = prev
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(s.key, string(b)); err != nil {
		s.items = prev
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	s.log.Debug("persisted items", zap.Int("count", len(items)))
	return nil
}

func (s *Store) index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}
