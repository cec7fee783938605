package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/availability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// SelectionHeader is the column layout of the selection log.
var SelectionHeader = []string{"student_id", "student_name", "topic_id", "topic_title", "score", "selected_date"}

// SelectedDateLayout is the timestamp format of the selected_date column.
const SelectedDateLayout = "2006-01-02 15:04:05"

// SelectionLog is a CSV ledger of claimed topics. It implements
// availability.Store.
type SelectionLog struct {
	mu   sync.Mutex
	path string
}

// NewSelectionLog returns a log backed by dataDir/selected_topics.csv.
func NewSelectionLog(dataDir string) *SelectionLog {
	return &SelectionLog{path: filepath.Join(dataDir, SelectionsFile)}
}

// Path returns the backing file.
func (l *SelectionLog) Path() string {
	return l.path
}

// LoadClaims reads every row. A missing file is an empty ledger.
func (l *SelectionLog) LoadClaims(_ context.Context) ([]types.Claim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLocked()
}

func (l *SelectionLog) readLocked() ([]types.Claim, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &FileError{Path: l.path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &FileError{Path: l.path, Message: "failed to parse CSV", Cause: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"student_id", "topic_id"} {
		if _, ok := cols[required]; !ok {
			return nil, &FileError{Path: l.path, Message: fmt.Sprintf("missing column %s", required)}
		}
	}

	claims := make([]types.Claim, 0, len(rows)-1)
	for n, row := range rows[1:] {
		claim, err := parseRow(cols, row)
		if err != nil {
			return nil, &FileError{Path: l.path, Message: fmt.Sprintf("invalid row %d", n+2), Cause: err}
		}
		if claim.TopicID == "" {
			continue
		}
		claims = append(claims, claim)
	}
	return claims, nil
}

func parseRow(cols map[string]int, row []string) (types.Claim, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	claim := types.Claim{
		StudentID:   get("student_id"),
		StudentName: get("student_name"),
		TopicID:     get("topic_id"),
		TopicTitle:  get("topic_title"),
	}
	if s := get("score"); s != "" {
		score, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.Claim{}, fmt.Errorf("score %q: %w", s, err)
		}
		claim.Score = score
	}
	if s := get("selected_date"); s != "" {
		at, err := time.ParseInLocation(SelectedDateLayout, s, time.UTC)
		if err != nil {
			return types.Claim{}, fmt.Errorf("selected_date %q: %w", s, err)
		}
		claim.ClaimedAt = at
	}
	return claim, nil
}

// SaveClaim appends one row, writing the header first when the file is new.
// The file is re-read first so a topic another writer already appended is
// reported as an *availability.AlreadyClaimedError instead of logged twice.
func (l *SelectionLog) SaveClaim(_ context.Context, claim types.Claim) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.readLocked()
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.TopicID == claim.TopicID {
			return &availability.AlreadyClaimedError{TopicID: c.TopicID, ClaimedBy: c.StudentID}
		}
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return &FileError{Path: l.path, Message: "failed to create directory", Cause: err}
	}
	needHeader := fileSize(l.path) == 0

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return &FileError{Path: l.path, Message: "failed to open file", Cause: err}
	}

	w := csv.NewWriter(f)
	if needHeader {
		_ = w.Write(SelectionHeader)
	}
	_ = w.Write([]string{
		claim.StudentID,
		claim.StudentName,
		claim.TopicID,
		claim.TopicTitle,
		strconv.FormatFloat(claim.Score, 'f', -1, 64),
		claim.ClaimedAt.UTC().Format(SelectedDateLayout),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return &FileError{Path: l.path, Message: "failed to write row", Cause: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Path: l.path, Message: "failed to write row", Cause: err}
	}
	return nil
}

// ClearClaims truncates the log to its header row.
func (l *SelectionLog) ClearClaims(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return writeFile(l.path, []byte(strings.Join(SelectionHeader, ",")+"\n"))
}
