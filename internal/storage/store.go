package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/visualearn/internal/experiment"
)

// ErrRunNotFound indicates a run id with no recorded metadata.
var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Simulation string             `json:"simulation"`
	Timestamp  time.Time          `json:"timestamp"`
	Frames     int                `json:"frames"`
	Params     map[string]float64 `json:"params"`
	Fields     []string           `json:"fields"`
	Units      []string           `json:"units,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv under a fresh run directory.
func (s *Store) Save(result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", result.Simulation, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Simulation: result.Simulation,
		Timestamp:  now,
		Frames:     result.Frames,
		Params:     result.Params,
		Fields:     result.Fields,
		Units:      result.Units,
		Metrics:    result.Metrics,
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, statesFile), func(w io.Writer) error {
			return WriteCSV(w, result)
		})
	}
	if err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// writeFile creates path, fills it with write and reports the close error.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes a header of time plus field names, then one row per frame.
func WriteCSV(out io.Writer, result *experiment.Result) error {
	w := csv.NewWriter(out)

	header := append([]string{"time"}, result.Fields...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range result.Rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every recorded run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadResult rebuilds the recorded run from its metadata and CSV trace.
func (s *Store) LoadResult(runID string) (*experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", runID, err)
	}

	result := &experiment.Result{
		Simulation: meta.Simulation,
		Params:     meta.Params,
		Units:      meta.Units,
		Metrics:    meta.Metrics,
		Times:      []float64{},
		Rows:       [][]float64{},
	}
	if len(records) == 0 {
		return result, nil
	}
	result.Fields = records[0][1:]

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for _, cell := range record[1:] {
			val, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				val = 0
			}
			row = append(row, val)
		}
		result.Times = append(result.Times, t)
		result.Rows = append(result.Rows, row)
	}
	result.Frames = len(result.Times)
	return result, nil
}
