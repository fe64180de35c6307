package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// PackStore is the persistence boundary. The pipeline writes whole packs and
// never patches persisted structures in place.
type PackStore interface {
	Save(ctx context.Context, pack *model.Pack) error
	Load(ctx context.Context, id string) (*model.Pack, error)
}

// UsageGate is the plan-limit boundary: a yes/no gate plus a counter
type UsageGate interface {
	Allow(userID string) bool
	Increment(userID string)
}

// UnlimitedGate allows everything; the default when no quota system is wired
type UnlimitedGate struct{}

func (UnlimitedGate) Allow(string) bool { return true }
func (UnlimitedGate) Increment(string)  {}

// FileStore persists packs as JSON documents in a directory
type FileStore struct {
	dir string
}

// NewFileStore creates a pack store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Save writes the pack document, replacing any previous version
func (s *FileStore) Save(ctx context.Context, pack *model.Pack) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pack: %w", err)
	}

	if err := os.WriteFile(s.path(pack.ID), data, 0644); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}
	return nil
}

// Load reads a pack document by id
func (s *FileStore) Load(ctx context.Context, id string) (*model.Pack, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}

	var pack model.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse pack: %w", err)
	}
	return &pack, nil
}

// Recent returns up to limit of the user's most recently updated maps,
// newest first. Unreadable documents are skipped.
func (s *FileStore) Recent(ctx context.Context, userID string, limit int) ([]model.AuthorityMap, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list store dir: %w", err)
	}

	var packs []*model.Pack
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		pack, err := s.Load(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil || pack.UserID != userID {
			continue
		}
		packs = append(packs, pack)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].UpdatedAt.After(packs[j].UpdatedAt)
	})
	if limit > 0 && len(packs) > limit {
		packs = packs[:limit]
	}

	maps := make([]model.AuthorityMap, 0, len(packs))
	for _, pack := range packs {
		maps = append(maps, pack.Map)
	}
	return maps, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
