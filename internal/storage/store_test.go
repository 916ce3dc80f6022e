package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/sim"
	"github.com/san-kum/slitsim/internal/viz"
)

func testHeatmap(t *testing.T) *viz.Heatmap {
	t.Helper()
	h, err := viz.NewHeatmap(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	r := viz.NewRenderer(h, 0, 1)
	for i := 0; i < 3; i++ {
		r.Tick(dynamo.DefaultParams())
	}
	return h
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	h := testHeatmap(t)
	id, err := st.Save(SnapshotMetadata{
		Params:   dynamo.DefaultParams(),
		Offset:   0.06,
		TimeStep: 0.02,
		Ticks:    3,
		Metrics:  map[string]float64{"visibility": 0.9},
	}, h)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty snapshot id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Params != dynamo.DefaultParams() {
		t.Errorf("unexpected params %v", meta.Params)
	}
	if meta.Width != 8 || meta.Height != 4 || meta.Ticks != 3 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["visibility"] != 0.9 {
		t.Errorf("expected visibility 0.9, got %v", meta.Metrics["visibility"])
	}

	loaded, err := st.LoadImage(id)
	if err != nil {
		t.Fatalf("load image failed: %v", err)
	}
	if !loaded.Equal(h) {
		t.Error("stored heatmap differs from the saved one")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("expected 0 snapshots, got %d", len(snaps))
	}

	if _, err := st.Save(SnapshotMetadata{Params: dynamo.DefaultParams()}, testHeatmap(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snaps, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("expected 1 snapshot, got %d", len(snaps))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	snaps, err := st.List()
	if err != nil || len(snaps) != 0 {
		t.Errorf("expected empty list, got %v, %v", snaps, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id, err := st.Save(SnapshotMetadata{Params: dynamo.DefaultParams()}, testHeatmap(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "heatmap.png"} {
		if _, err := os.Stat(filepath.Join(dir, id, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreSaveLoop(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	buf, _ := viz.NewHeatmap(16, 6)
	loop, err := sim.New(viz.NewRenderer(buf, 0, 1), dynamo.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		loop.Step()
	}

	id, err := st.SaveLoop(loop)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Ticks != 4 {
		t.Errorf("ticks = %d, want 4", meta.Ticks)
	}
	if meta.Width != 16 || meta.Height != 6 {
		t.Errorf("size = %dx%d, want 16x6", meta.Width, meta.Height)
	}
	if meta.Offset != loop.Renderer().Offset() {
		t.Errorf("offset = %v, want %v", meta.Offset, loop.Renderer().Offset())
	}

	img, err := st.LoadImage(id)
	if err != nil {
		t.Fatal(err)
	}
	if !img.Equal(loop.Heatmap()) {
		t.Error("stored heatmap differs from the live buffer")
	}
}

func TestStoreRestore(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	p := dynamo.Params{Slit1: 0.25, Slit2: 0.75, T: 2, K: 14}
	buf, _ := viz.NewHeatmap(16, 6)
	saved, err := sim.New(viz.NewRenderer(buf, 0, 1), p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		saved.Step()
	}
	id, err := st.SaveLoop(saved)
	if err != nil {
		t.Fatal(err)
	}

	fresh, _ := viz.NewHeatmap(8, 3)
	loop, err := sim.New(viz.NewRenderer(fresh, 0, 1), dynamo.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.Restore(id, loop); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if loop.Params() != p {
		t.Errorf("params = %v, want %v", loop.Params(), p)
	}
	if loop.Renderer().Offset() != saved.Renderer().Offset() {
		t.Errorf("offset = %v, want %v", loop.Renderer().Offset(), saved.Renderer().Offset())
	}
	if !loop.Heatmap().Equal(saved.Heatmap()) {
		t.Fatal("restored heatmap differs from the saved one")
	}

	saved.Step()
	loop.Step()
	if !loop.Heatmap().Equal(saved.Heatmap()) {
		t.Error("restored loop diverged after one tick")
	}
}

func TestStoreRestoreMissing(t *testing.T) {
	st := New(t.TempDir())
	buf, _ := viz.NewHeatmap(8, 3)
	loop, _ := sim.New(viz.NewRenderer(buf, 0, 1), dynamo.DefaultParams())
	if _, err := st.Restore("snapshot_0", loop); err == nil {
		t.Error("expected error for missing snapshot")
	}
	if loop.Heatmap().Width() != 8 {
		t.Error("failed restore should leave the loop untouched")
	}
}
