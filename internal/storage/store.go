// Package storage persists simulation runs: one directory per run with
// JSON metadata and the sampled metric series as CSV, plus optional field
// snapshots for offline inspection.
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

	"github.com/vortsim/vortsim/internal/solver"
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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	NX        int                `json:"nx"`
	NY        int                `json:"ny"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// Save writes metadata.json and series.csv for a completed run and returns
// the run ID.
func (s *Store) Save(preset string, nx, ny int, duration float64, res *solver.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	warnings := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, w.Error())
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		NX:        nx,
		NY:        ny,
		Duration:  duration,
		Steps:     res.StepsTaken,
		Metrics:   res.Metrics,
		Warnings:  warnings,
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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	names := seriesNames(res)
	header := append([]string{"time", "dt"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i := range res.Times {
		row := []string{
			strconv.FormatFloat(res.Times[i], 'g', -1, 64),
			strconv.FormatFloat(res.Dts[i], 'g', -1, 64),
		}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(res.Series[name][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func seriesNames(res *solver.Result) []string {
	names := make([]string, 0, len(res.Series))
	for name := range res.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

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

// LoadSeries reads series.csv back as times, dts and named columns.
func (s *Store) LoadSeries(runID string) (times, dts []float64, series map[string][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 1 || len(records[0]) < 2 {
		return nil, nil, nil, fmt.Errorf("storage: malformed series for run %s", runID)
	}

	header := records[0]
	series = make(map[string][]float64, len(header)-2)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		dt, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		dts = append(dts, dt)
		for c := 2; c < len(rec); c++ {
			v, err := strconv.ParseFloat(rec[c], 64)
			if err != nil {
				v = 0
			}
			series[header[c]] = append(series[header[c]], v)
		}
	}
	return times, dts, series, nil
}
