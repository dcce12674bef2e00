package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/gravgen/internal/motion"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p := motion.DefaultParams()
	p.InitialHeight = 12.7
	traj := motion.Trajectory{
		{Time: 0, Height: 12.7, Velocity: 0},
		{Time: 0.1, Height: 12.65, Velocity: -0.981},
		{Time: 0.2, Height: 12.5, Velocity: -1.962},
	}
	metricVals := map[string]float64{"bounce_count": 0, "peak_height": 12.7}

	runID, err := s.Save(p, traj, metricVals)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	meta, err := s.LoadMetadata(runID)
	if err != nil {
		t.Fatalf("load metadata failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("id: got %q, want %q", meta.ID, runID)
	}
	if meta.Params.InitialHeight != 12.7 {
		t.Errorf("params not preserved: %+v", meta.Params)
	}
	if meta.Metrics["peak_height"] != 12.7 {
		t.Errorf("metrics not preserved: %v", meta.Metrics)
	}

	loaded, err := s.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(loaded) != len(traj) {
		t.Fatalf("got %d states, want %d", len(loaded), len(traj))
	}
	for i := range traj {
		if math.Abs(loaded[i].Height-traj[i].Height) > 1e-6 ||
			math.Abs(loaded[i].Velocity-traj[i].Velocity) > 1e-6 ||
			math.Abs(loaded[i].Time-traj[i].Time) > 1e-6 {
			t.Errorf("state %d: got %+v, want %+v", i, loaded[i], traj[i])
		}
	}
}

func TestListOrdersByTimestamp(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	p := motion.DefaultParams()
	traj := motion.Trajectory{{Time: 0, Height: 1}}

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Save(p, traj, nil)
		if err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond) // distinct timestamps
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	for i := range runs {
		if runs[i].ID != ids[i] {
			t.Errorf("run %d: got %q, want %q (oldest first)", i, runs[i].ID, ids[i])
		}
	}
}

func TestListSkipsForeignDirs(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "not-a-run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("foreign directory listed as a run: %v", runs)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list on missing dir should not fail: %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %v", runs)
	}
}

func TestLoadTrajectoryMissingRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LoadTrajectory("ball_0"); err == nil {
		t.Error("expected error for missing run")
	}
}
