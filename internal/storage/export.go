package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lintrans/internal/colorize"
	"github.com/san-kum/lintrans/internal/transform"
)

type ExportStep struct {
	Step    int         `json:"step"`
	T       float64     `json:"t"`
	Matrix  [][]float64 `json:"matrix"`
	Points  [][]float64 `json:"points"`
	Markers [][]float64 `json:"markers,omitempty"`
}

type ExportData struct {
	Preset string         `json:"preset"`
	Target [][]float64    `json:"target"`
	Colors []colorize.RGB `json:"colors"`
	Steps  []ExportStep   `json:"steps"`
}

// ExportJSON writes the whole transformed sequence. Points and markers are
// written row-wise, one slice per coordinate axis.
func ExportJSON(w io.Writer, preset string, seq *transform.Sequence, colors []colorize.RGB) error {
	data := ExportData{
		Preset: preset,
		Target: Rows(seq.Target),
		Colors: colors,
		Steps:  make([]ExportStep, len(seq.Steps)),
	}

	for i, st := range seq.Steps {
		data.Steps[i] = ExportStep{
			Step:   st.Index,
			T:      st.T,
			Matrix: Rows(st.Matrix),
			Points: Rows(st.Points),
		}
		if st.Markers != nil {
			data.Steps[i].Markers = Rows(st.Markers)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
