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

	"github.com/san-kum/starfield/internal/starfield"
)

const (
	metadataFile = "metadata.json"
	frameFile    = "final.txt"
	starsFile    = "stars.csv"
)

// Store keeps a log of finished runs, one directory per run.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Preset     string    `json:"preset,omitempty"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Density    float64   `json:"density"`
	Frames     int       `json:"frames"`
	Delay      float64   `json:"delay"`
	Seed       int64     `json:"seed"`
	DirectionX int       `json:"direction_x"`
	DirectionY int       `json:"direction_y"`
	Stars      int       `json:"stars"`
	Visible    int       `json:"visible"`
}

// Save records the configuration of sc and frame as the final frame. An
// empty frame falls back to sc.String(). preset and seed are informational.
func (s *Store) Save(sc *starfield.Screen, frame, preset string, seed int64, visible int) (string, error) {
	if frame == "" {
		frame = sc.String()
	}
	ts := s.now()
	runID := fmt.Sprintf("run_%d", ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	dir := sc.Direction()
	meta := RunMetadata{
		ID:         runID,
		Timestamp:  ts,
		Preset:     preset,
		Width:      sc.Width(),
		Height:     sc.Height(),
		Density:    sc.Density(),
		Frames:     sc.Frames(),
		Delay:      sc.Delay().Seconds(),
		Seed:       seed,
		DirectionX: dir.X(),
		DirectionY: dir.Y(),
		Stars:      len(sc.Stars()),
		Visible:    visible,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(runDir, frameFile), []byte(frame), 0644); err != nil {
		return "", err
	}

	if err := writeStars(filepath.Join(runDir, starsFile), sc.Stars()); err != nil {
		return "", err
	}

	return runID, nil
}

func writeStars(path string, stars []starfield.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range stars {
		if err := w.Write([]string{strconv.Itoa(p.X()), strconv.Itoa(p.Y())}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all readable runs, oldest first.
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
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFinalFrame(runID string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, frameFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadStars reads the final star positions. Malformed rows are skipped.
func (s *Store) LoadStars(runID string) ([]starfield.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, starsFile))
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
		return []starfield.Point{}, nil
	}

	stars := make([]starfield.Point, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		x, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		y, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		stars = append(stars, starfield.NewPoint(x, y))
	}
	return stars, nil
}
