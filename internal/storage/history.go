package storage

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/google/uuid"
)

// HistoryStore appends recommendation runs to a JSON array.
type HistoryStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewHistoryStore returns a store backed by dataDir/recommendations_history.json.
func NewHistoryStore(dataDir string) *HistoryStore {
	return &HistoryStore{path: filepath.Join(dataDir, HistoryFile), now: time.Now}
}

// Path returns the backing file.
func (h *HistoryStore) Path() string {
	return h.path
}

func (h *HistoryStore) load() ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry
	if err := readJSON(h.path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendHistory records a recommendation run and returns the stored entry.
func (h *HistoryStore) AppendHistory(_ context.Context, student *types.StudentProfile, set *types.RecommendationSet) (types.HistoryEntry, error) {
	entry := types.HistoryEntry{
		ID:              uuid.New().String(),
		Timestamp:       h.now().UTC(),
		StudentID:       student.ID,
		StudentName:     student.Name,
		FallbackUsed:    set.FallbackUsed,
		Recommendations: set.Recommendations,
	}
	if entry.Recommendations == nil {
		entry.Recommendations = []types.Recommendation{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.load()
	if err != nil {
		return types.HistoryEntry{}, err
	}
	entries = append(entries, entry)
	if err := writeJSON(h.path, entries); err != nil {
		return types.HistoryEntry{}, err
	}
	return entry, nil
}

// ListHistory returns entries in insertion order, filtered to studentID when
// non-empty.
func (h *HistoryStore) ListHistory(_ context.Context, studentID string) ([]types.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries, err := h.load()
	if err != nil {
		return nil, err
	}
	out := make([]types.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if studentID == "" || e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ClearHistory empties the history.
func (h *HistoryStore) ClearHistory(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return writeJSON(h.path, []types.HistoryEntry{})
}
