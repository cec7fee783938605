package storage

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// StudentStore keeps student profiles in one JSON object keyed by student ID.
// Every call re-reads the file so edits made by other tools are picked up.
type StudentStore struct {
	mu   sync.Mutex
	path string
}

// NewStudentStore returns a store backed by dataDir/students.json.
func NewStudentStore(dataDir string) *StudentStore {
	return &StudentStore{path: filepath.Join(dataDir, StudentsFile)}
}

// Path returns the backing file.
func (s *StudentStore) Path() string {
	return s.path
}

func (s *StudentStore) load() (map[string]*types.StudentProfile, error) {
	students := make(map[string]*types.StudentProfile)
	if err := readJSON(s.path, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// mutate validates student, applies check under the lock and writes the file.
func (s *StudentStore) mutate(student *types.StudentProfile, check func(exists bool) error) error {
	if err := student.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.load()
	if err != nil {
		return err
	}
	_, exists := students[student.ID]
	if err := check(exists); err != nil {
		return err
	}
	students[student.ID] = student
	return writeJSON(s.path, students)
}

// SaveStudent creates or replaces a profile.
func (s *StudentStore) SaveStudent(_ context.Context, student *types.StudentProfile) error {
	return s.mutate(student, func(bool) error { return nil })
}

// CreateStudent stores a new profile and fails if the ID exists.
func (s *StudentStore) CreateStudent(_ context.Context, student *types.StudentProfile) error {
	return s.mutate(student, func(exists bool) error {
		if exists {
			return &types.StudentExistsError{StudentID: student.ID}
		}
		return nil
	})
}

// UpdateStudent replaces an existing profile.
func (s *StudentStore) UpdateStudent(_ context.Context, student *types.StudentProfile) error {
	return s.mutate(student, func(exists bool) error {
		if !exists {
			return &types.StudentNotFoundError{StudentID: student.ID}
		}
		return nil
	})
}

// GetStudent returns a profile, or nil, nil when the ID is unknown.
func (s *StudentStore) GetStudent(_ context.Context, id string) (*types.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.load()
	if err != nil {
		return nil, err
	}
	return students[id], nil
}

// StudentExists reports whether a profile is stored under id.
func (s *StudentStore) StudentExists(ctx context.Context, id string) (bool, error) {
	student, err := s.GetStudent(ctx, id)
	return student != nil, err
}

// DeleteStudent removes a profile.
func (s *StudentStore) DeleteStudent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := students[id]; !ok {
		return &types.StudentNotFoundError{StudentID: id}
	}
	delete(students, id)
	return writeJSON(s.path, students)
}

// ListStudents returns every profile ordered by ID.
func (s *StudentStore) ListStudents(_ context.Context) ([]*types.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]*types.StudentProfile, 0, len(students))
	for _, st := range students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
