package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/vortsim/vortsim/internal/grid"
)

type ExportData struct {
	ID       string               `json:"id"`
	Preset   string               `json:"preset"`
	Duration float64              `json:"duration"`
	Steps    int                  `json:"steps"`
	Times    []float64            `json:"times"`
	Dts      []float64            `json:"dts"`
	Series   map[string][]float64 `json:"series"`
	Metrics  map[string]float64   `json:"metrics"`
}

// ExportJSON streams a stored run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, times, dts []float64, series map[string][]float64) error {
	data := ExportData{
		ID:       meta.ID,
		Preset:   meta.Preset,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Times:    times,
		Dts:      dts,
		Series:   series,
		Metrics:  meta.Metrics,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteFieldCSV dumps one scalar field, interior cells only, as an
// NY-columns-per-row CSV snapshot.
func WriteFieldCSV(w io.Writer, f *grid.Scalar) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	row := make([]string, f.NY-2)
	for i := 1; i <= f.NX-2; i++ {
		for j := 1; j <= f.NY-2; j++ {
			row[j-1] = strconv.FormatFloat(f.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
