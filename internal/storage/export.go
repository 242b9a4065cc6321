package storage

import (
	"encoding/json"
	"io"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
)

type ExportData struct {
	Scenario  string             `json:"scenario"`
	Params    trajectory.Params  `json:"params"`
	Constants physics.Constants  `json:"constants"`
	Stats     trajectory.Stats   `json:"stats"`
	Samples   int                `json:"samples"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a self-contained JSON document of the trajectory.
func ExportJSON(w io.Writer, scenario string, tr *trajectory.Trajectory, metrics map[string]float64) error {
	data := ExportData{
		Scenario:  scenario,
		Params:    tr.Params,
		Constants: tr.Constants,
		Stats:     tr.Stats,
		Samples:   tr.Len(),
		Times:     tr.Times,
		States:    make([][]float64, len(tr.States)),
		Metrics:   metrics,
	}

	for i, s := range tr.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
