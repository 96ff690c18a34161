package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	fieldsPer    = 4
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

// BodyInfo is the part of a body that does not change during a run.
type BodyInfo struct {
	ID   gravity.Value `json:"id"`
	Mass float64       `json:"mass"`
	Tone gravity.Value `json:"tone"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Bodies      []BodyInfo         `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes result under a new run directory and returns its id. Metrics
// without a finite value are left out of the metadata.
func (s *Store) Save(preset string, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	if preset == "" {
		preset = "custom"
	}
	runID, runDir, err := s.createRunDir(fmt.Sprintf("%s_%d", preset, now.UnixMilli()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Preset:      preset,
		Timestamp:   now,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Metrics:     make(map[string]float64, len(result.Metrics)),
	}
	for name, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[name] = v
		}
	}
	if len(result.Frames) > 0 {
		for _, b := range result.Frames[0].Bodies {
			meta.Bodies = append(meta.Bodies, BodyInfo{ID: b.ID, Mass: b.Mass, Tone: b.Tone})
		}
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	if err := writeStates(filepath.Join(runDir, statesFile), meta.Bodies, result.Frames); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

// createRunDir claims a fresh directory for base, appending _2, _3 and so
// on when an earlier run already holds the name.
func (s *Store) createRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeStates(path string, bodies []BodyInfo, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteCSV(f, bodies, frames)
}

// WriteCSV writes one row per frame: the time, then x, y, vx and vy of each
// body in order.
func WriteCSV(out io.Writer, bodies []BodyInfo, frames []sim.Frame) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for i, b := range bodies {
		label := columnLabel(i, b.ID)
		header = append(header, label+"_x", label+"_y", label+"_vx", label+"_vy")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range frames {
		row := make([]string, 0, 1+fieldsPer*len(frame.Bodies))
		row = append(row, strconv.FormatFloat(frame.Time, 'f', 6, 64))
		for _, b := range frame.Bodies {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.VX, 'f', 6, 64),
				strconv.FormatFloat(b.VY, 'f', 6, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// columnLabel uses a string id when there is one, otherwise the body index.
func columnLabel(i int, id gravity.Value) string {
	if s := id.String(); s != "" && s != "null" {
		return s
	}
	return fmt.Sprintf("b%d", i)
}

// List returns all runs ordered by timestamp, oldest first.
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames rebuilds the recorded frames of a run. Mass, tone and id come
// from the run metadata.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
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

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) != 1+fieldsPer*len(meta.Bodies) {
			return nil, fmt.Errorf("run %s: row %d: expected %d columns, got %d",
				runID, line+1, 1+fieldsPer*len(meta.Bodies), len(record))
		}

		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, line+1, err)
			}
			values[j] = v
		}

		frame := sim.Frame{Time: values[0], Bodies: make([]gravity.Result, len(meta.Bodies))}
		for i, info := range meta.Bodies {
			col := 1 + fieldsPer*i
			frame.Bodies[i] = gravity.Result{
				X:    values[col],
				Y:    values[col+1],
				VX:   values[col+2],
				VY:   values[col+3],
				Tone: info.Tone,
				Mass: info.Mass,
				ID:   info.ID,
			}
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
