package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravsim/internal/sim"
)

type ExportData struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Frames      []sim.Frame        `json:"frames"`
}

// ExportJSON writes a run and its frames as one indented JSON document.
// Each body in a frame has the same shape as a step response.
func ExportJSON(w io.Writer, meta *RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		ID:          meta.ID,
		Preset:      meta.Preset,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Steps:       meta.Steps,
		EnergyDrift: meta.EnergyDrift,
		Metrics:     meta.Metrics,
		Frames:      frames,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
