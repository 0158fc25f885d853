package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/visualearn/internal/experiment"
)

type ExportData struct {
	Simulation string             `json:"simulation"`
	Params     map[string]float64 `json:"params"`
	Frames     int                `json:"frames"`
	Fields     []string           `json:"fields"`
	Units      []string           `json:"units,omitempty"`
	Times      []float64          `json:"times"`
	Rows       [][]float64        `json:"rows"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewExportData(result *experiment.Result) ExportData {
	return ExportData{
		Simulation: result.Simulation,
		Params:     result.Params,
		Frames:     len(result.Times),
		Fields:     result.Fields,
		Units:      result.Units,
		Times:      result.Times,
		Rows:       result.Rows,
		Metrics:    result.Metrics,
	}
}

// ExportJSON writes the run as indented JSON.
func ExportJSON(w io.Writer, result *experiment.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(result))
}
