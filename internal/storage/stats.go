package storage

import "context"

// Stats summarizes what the data directory holds.
type Stats struct {
	TotalStudents        int     `json:"total_students"`
	TotalRecommendations int     `json:"total_recommendations"`
	StorageSizeKB        float64 `json:"storage_size_kb"`
}

// Manager bundles the file stores rooted at one data directory.
type Manager struct {
	DataDir    string
	Students   *StudentStore
	History    *HistoryStore
	Selections *SelectionLog
}

// NewManager creates the stores for dataDir.
func NewManager(dataDir string) *Manager {
	return &Manager{
		DataDir:    dataDir,
		Students:   NewStudentStore(dataDir),
		History:    NewHistoryStore(dataDir),
		Selections: NewSelectionLog(dataDir),
	}
}

// Stats counts stored students and history entries.
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	students, err := m.Students.ListStudents(ctx)
	if err != nil {
		return Stats{}, err
	}
	history, err := m.History.ListHistory(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	size := fileSize(m.Students.Path()) + fileSize(m.History.Path()) + fileSize(m.Selections.Path())
	return Stats{
		TotalStudents:        len(students),
		TotalRecommendations: len(history),
		StorageSizeKB:        float64(size) / 1024,
	}, nil
}
