package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lintrans/internal/transform"
	"gonum.org/v1/gonum/mat"
)

// Store keeps one directory per run with its metadata and the matrix used at
// every interpolation step.
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
	ID          string      `json:"id"`
	Preset      string      `json:"preset"`
	Timestamp   time.Time   `json:"timestamp"`
	Dimension   int         `json:"dimension"`
	Steps       int         `json:"steps"`
	Points      int         `json:"points"`
	Matrix      [][]float64 `json:"matrix"`
	Determinant float64     `json:"determinant"`
	Color       string      `json:"color"`
	Markers     int         `json:"markers"`
	FrameDir    string      `json:"frame_dir"`
	Frames      int         `json:"frames"`
	Animation   string      `json:"animation"`
	ElapsedMS   int64       `json:"elapsed_ms"`
}

// Save records a run. ID, Timestamp and the sequence-derived fields of meta
// are filled in here.
func (s *Store) Save(meta RunMetadata, seq *transform.Sequence) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = seq.Len() - 1
	meta.Matrix = Rows(seq.Target)
	meta.Determinant = mat.Det(seq.Target)
	meta.Dimension, _ = seq.Target.Dims()
	if seq.Len() > 0 {
		_, meta.Points = seq.Steps[0].Points.Dims()
		if m := seq.Steps[0].Markers; m != nil {
			_, meta.Markers = m.Dims()
		}
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

	csvFile, err := os.Create(filepath.Join(runDir, "steps.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	n := meta.Dimension
	header := []string{"step", "t"}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			header = append(header, fmt.Sprintf("m%d%d", i, j))
		}
	}
	header = append(header, "det")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, st := range seq.Steps {
		row := []string{strconv.Itoa(st.Index), strconv.FormatFloat(st.T, 'f', 6, 64)}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				row = append(row, strconv.FormatFloat(st.Matrix.At(i, j), 'g', -1, 64))
			}
		}
		row = append(row, strconv.FormatFloat(mat.Det(st.Matrix), 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns all readable runs, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
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

// StepRecord is one row of steps.csv.
type StepRecord struct {
	Step        int
	T           float64
	Matrix      *mat.Dense
	Determinant float64
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "steps.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	// header: step, t, n*n entries, det
	n := 0
	for n*n < len(records[0])-3 {
		n++
	}
	if n*n != len(records[0])-3 {
		return nil, fmt.Errorf("steps.csv: unexpected header with %d columns", len(records[0]))
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		vals := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("steps.csv: %w", err)
			}
			vals[i] = v
		}
		steps = append(steps, StepRecord{
			Step:        int(vals[0]),
			T:           vals[1],
			Matrix:      mat.NewDense(n, n, vals[2:2+n*n]),
			Determinant: vals[2+n*n],
		})
	}
	return steps, nil
}

// Rows converts a matrix to row slices.
func Rows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return rows
}
