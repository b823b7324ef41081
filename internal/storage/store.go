package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/linsolve/internal/linsys"
)

const (
	StatusSolved    = "solved"
	StatusNoValue   = "no-value"
	StatusDimension = "dimension"
	StatusSingular  = "singular"
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
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Rows        int       `json:"rows"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	ParseMode   string    `json:"parse_mode"`
	Tolerance   float64   `json:"tolerance"`
	Determinant float64   `json:"determinant"`
	Residual    float64   `json:"residual"`
	Pivots      []float64 `json:"pivots,omitempty"`
}

// Record is everything kept about one solve attempt. System is the
// unreduced input; it is nil when parsing failed.
type Record struct {
	Meta     RunMetadata
	System   *linsys.Matrix
	Solution []float64
	Inverse  [][]float64
}

// createRunDir makes a fresh directory for a run stamped at t. Two runs
// landing on the same nanosecond get a numeric suffix instead of sharing
// a directory.
func createRunDir(base string, t time.Time) (string, error) {
	id := fmt.Sprintf("run_%d", t.UnixNano())
	for i := 1; ; i++ {
		err := os.Mkdir(filepath.Join(base, id), 0755)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		id = fmt.Sprintf("run_%d_%d", t.UnixNano(), i)
	}
}

func (s *Store) Save(rec *Record) (string, error) {
	now := time.Now()
	if err := s.Init(); err != nil {
		return "", err
	}
	runID, err := createRunDir(s.baseDir, now)
	if err != nil {
		return "", err
	}
	runDir := filepath.Join(s.baseDir, runID)

	meta := rec.Meta
	meta.ID = runID
	meta.Timestamp = now
	if rec.System != nil {
		meta.Rows = rec.System.Rows
	}
	// encoding/json rejects NaN and Inf
	meta.Determinant = finite(meta.Determinant)
	meta.Residual = finite(meta.Residual)
	if meta.Pivots != nil {
		pivots := make([]float64, len(meta.Pivots))
		for i, p := range meta.Pivots {
			pivots[i] = finite(p)
		}
		meta.Pivots = pivots
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if rec.System != nil {
		if err := writeCSV(filepath.Join(runDir, "system.csv"), rec.System.Data); err != nil {
			return "", err
		}
	}
	if rec.Solution != nil {
		rows := make([][]float64, len(rec.Solution))
		for i, v := range rec.Solution {
			rows[i] = []float64{v}
		}
		if err := writeCSV(filepath.Join(runDir, "solution.csv"), rows); err != nil {
			return "", err
		}
	}
	if rec.Inverse != nil {
		if err := writeCSV(filepath.Join(runDir, "inverse.csv"), rec.Inverse); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func writeCSV(path string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, r := range rows {
		rec := make([]string, len(r))
		for j, v := range r {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([][]float64, 0, len(records))
	for _, record := range records {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	return out, nil
}

// List returns the stored runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadRecord reads a run back including whichever CSV files it has.
func (s *Store) LoadRecord(runID string) (*Record, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	rec := &Record{Meta: *meta}
	runDir := filepath.Join(s.baseDir, runID)

	if rows, err := readCSV(filepath.Join(runDir, "system.csv")); err == nil {
		if rec.System, err = linsys.FromRows(rows); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if rows, err := readCSV(filepath.Join(runDir, "solution.csv")); err == nil {
		rec.Solution = make([]float64, len(rows))
		for i, r := range rows {
			if len(r) > 0 {
				rec.Solution[i] = r[0]
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if rows, err := readCSV(filepath.Join(runDir, "inverse.csv")); err == nil {
		rec.Inverse = rows
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return rec, nil
}

type ExportData struct {
	RunMetadata
	System   [][]float64 `json:"system,omitempty"`
	Solution []float64   `json:"solution,omitempty"`
	Inverse  [][]float64 `json:"inverse,omitempty"`
}

// ExportJSON writes a run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	rec, err := s.LoadRecord(runID)
	if err != nil {
		return err
	}
	data := ExportData{
		RunMetadata: rec.Meta,
		Solution:    rec.Solution,
		Inverse:     rec.Inverse,
	}
	if rec.System != nil {
		data.System = rec.System.Data
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
