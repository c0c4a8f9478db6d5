package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/openkraft/javaqc/internal/domain"
)

const (
	historyFile = "history.json"
	filePrefix  = "quality-check-report-"
	fileStamp   = "20060102-150405"
)

// ErrNoReports is returned by Latest when dir holds no saved report.
var ErrNoReports = errors.New("no quality reports found")

// FileStore implements domain.ReportStore with JSON files in a results directory.
type FileStore struct {
	now func() time.Time
}

func New() *FileStore {
	return &FileStore{now: time.Now}
}

// NewWithClock fixes the time used to name report files.
func NewWithClock(now func() time.Time) *FileStore {
	return &FileStore{now: now}
}

// Save writes report to dir/quality-check-report-<stamp>.json and returns the path.
func (s *FileStore) Save(dir string, report *domain.QualityReport) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating results dir: %w", err)
	}

	fp := filepath.Join(dir, filePrefix+s.now().Format(fileStamp)+".json")
	if err := writeJSON(fp, report); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return fp, nil
}

// Latest loads the most recent report in dir. Stamps sort lexically in
// time order, so the last file name wins.
func (s *FileStore) Latest(dir string) (*domain.QualityReport, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.json"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	sort.Strings(matches)

	data, err := os.ReadFile(matches[len(matches)-1])
	if err != nil {
		return nil, err
	}
	var r domain.QualityReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", matches[len(matches)-1], err)
	}
	return &r, nil
}

func (s *FileStore) AppendHistory(dir string, entry domain.HistoryEntry) error {
	entries, err := s.History(dir)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, historyFile), entries)
}

func (s *FileStore) History(dir string) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return entries, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
