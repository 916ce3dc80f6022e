package storage

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/sim"
	"github.com/san-kum/slitsim/internal/viz"
)

const (
	metadataFile = "metadata.json"
	imageFile    = "heatmap.png"
)

// Store keeps snapshots of the visible heatmap, one directory per snapshot.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SnapshotMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Params    dynamo.Params      `json:"params"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Offset    float64            `json:"time_offset"`
	TimeStep  float64            `json:"time_step"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes the heatmap as PNG next to its metadata and returns the
// snapshot id.
func (s *Store) Save(meta SnapshotMetadata, h *viz.Heatmap) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("snapshot_%d", now.UnixNano())
	meta.Timestamp = now
	meta.Width, meta.Height = h.Width(), h.Height()

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	imgFile, err := os.Create(filepath.Join(dir, imageFile))
	if err != nil {
		return "", err
	}
	defer imgFile.Close()

	if err := png.Encode(imgFile, h.Image()); err != nil {
		return "", fmt.Errorf("encode %s: %w", imageFile, err)
	}

	return meta.ID, nil
}

// SaveLoop snapshots the loop's current heatmap together with its parameters,
// time offset and metric values.
func (s *Store) SaveLoop(l *sim.Loop) (string, error) {
	r := l.Renderer()
	return s.Save(SnapshotMetadata{
		Params:   l.Params(),
		Offset:   r.Offset(),
		TimeStep: r.TimeStep(),
		Ticks:    l.Ticks(),
		Metrics:  l.MetricValues(),
	}, r.Heatmap())
}

// Restore loads snapshot id into l so the next tick continues the saved
// waterfall. l must not be ticking.
func (s *Store) Restore(id string, l *sim.Loop) (*SnapshotMetadata, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	h, err := s.LoadImage(id)
	if err != nil {
		return nil, err
	}
	if err := l.SetParams(meta.Params); err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}
	r := l.Renderer()
	r.Replace(h)
	r.SetOffset(meta.Offset)
	return meta, nil
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadImage decodes the stored heatmap of a snapshot.
func (s *Store) LoadImage(id string) (*viz.Heatmap, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, imageFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return viz.HeatmapFromImage(img)
}
