// Package task orchestrates dataset generation: it samples initial
// conditions, runs the simulation core, and persists the per-task artifacts
// (first frame, final frame, video, prompt, metadata).
package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/gravgen/internal/config"
	"github.com/san-kum/gravgen/internal/frames"
	"github.com/san-kum/gravgen/internal/metrics"
	"github.com/san-kum/gravgen/internal/motion"
	"github.com/san-kum/gravgen/internal/prompts"
	"github.com/san-kum/gravgen/internal/render"
	"github.com/san-kum/gravgen/internal/sampler"
	"github.com/san-kum/gravgen/internal/video"
)

const domain = "gravity_physics"

type Generator struct {
	cfg      *config.Config
	encoder  frames.Encoder
	videoExt string
	seed     int64
}

// Result describes one generated task.
type Result struct {
	TaskID       string             `json:"task_id"`
	Domain       string             `json:"domain"`
	Prompt       string             `json:"prompt"`
	Kind         prompts.Kind       `json:"kind"`
	Params       motion.Params      `json:"params"`
	Metrics      map[string]float64 `json:"metrics"`
	FirstFrame   string             `json:"first_frame"`
	FinalFrame   string             `json:"final_frame"`
	Video        string             `json:"video,omitempty"`
	VideoSkipped bool               `json:"video_skipped,omitempty"`
}

// New validates the config and selects a video backend. A missing ffmpeg is
// not fatal: mp4 requests degrade to the built-in GIF encoder.
func New(cfg *config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg, seed: cfg.Seed}
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}

	if cfg.GenerateVideos {
		switch cfg.VideoFormat {
		case "gif":
			g.encoder, g.videoExt = video.NewGIF(), "gif"
		default:
			ff := video.NewFFmpeg()
			if ff.Available() {
				g.encoder, g.videoExt = ff, "mp4"
			} else {
				g.encoder, g.videoExt = video.NewGIF(), "gif"
			}
		}
	}
	return g, nil
}

// Seed returns the effective batch seed (resolved if the config left it 0).
func (g *Generator) Seed() int64 { return g.seed }

// Generate produces the whole batch. Tasks are independent and run across a
// bounded worker pool; a failed task aborts the batch with its error.
func (g *Generator) Generate(ctx context.Context) ([]Result, error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	n := g.cfg.NumSamples
	results := make([]Result, n)
	errs := make([]error, n)

	workers := g.cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for idx := range jobs {
				results[idx], errs[idx] = g.generateOne(idx)
			}
			done <- struct{}{}
		}()
	}

	feed := func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}
	feed()
	for w := 0; w < workers; w++ {
		<-done
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// generateOne builds task idx. All randomness happens here, before the
// deterministic simulation core.
func (g *Generator) generateOne(idx int) (Result, error) {
	cfg := g.cfg
	rng := rand.New(rand.NewSource(g.seed + int64(idx)))

	height := uniform(rng, cfg.MinHeight, cfg.MaxHeight)
	velocity := uniform(rng, cfg.MinInitialVelocity, cfg.MaxInitialVelocity)
	gravity := uniform(rng, cfg.MinGravity, cfg.MaxGravity)

	params := cfg.Params(height, velocity, gravity)

	smp := sampler.New(params)
	smp.AddMetric(metrics.NewBounceCount())
	smp.AddMetric(metrics.NewPeakHeight())
	smp.AddMetric(metrics.NewImpactSpeed())
	smp.AddMetric(metrics.NewEnergyDecay(params.Gravity, params.GroundHeight))

	traj, err := smp.Run()
	if err != nil {
		return Result{}, fmt.Errorf("task %d: %w", idx, err)
	}

	renderer := render.New(cfg.RenderOptions(gravity))
	sel, err := frames.Select(traj, renderer)
	if err != nil {
		return Result{}, fmt.Errorf("task %d: %w", idx, err)
	}
	first, final, err := frames.RenderStills(sel, renderer)
	if err != nil {
		return Result{}, fmt.Errorf("task %d: %w", idx, err)
	}

	taskID := fmt.Sprintf("task_%05d", idx)
	taskDir := filepath.Join(cfg.OutputDir, taskID)
	if err := os.MkdirAll(taskDir, 0755); err != nil {
		return Result{}, err
	}

	res := Result{
		TaskID:     taskID,
		Domain:     domain,
		Kind:       prompts.KindFor(velocity),
		Params:     params,
		Metrics:    smp.Metrics(),
		FirstFrame: "first_frame.png",
		FinalFrame: "final_frame.png",
	}
	res.Prompt = prompts.Pick(rng, res.Kind)

	if err := writePNG(filepath.Join(taskDir, res.FirstFrame), first); err != nil {
		return Result{}, err
	}
	if err := writePNG(filepath.Join(taskDir, res.FinalFrame), final); err != nil {
		return Result{}, err
	}

	if g.encoder != nil {
		name := "ground_truth." + g.videoExt
		err := g.writeVideo(filepath.Join(taskDir, name), traj, renderer)
		switch {
		case err == nil:
			res.Video = name
		case errors.Is(err, video.ErrEncodingUnavailable):
			res.VideoSkipped = true
		default:
			return Result{}, fmt.Errorf("task %d: %w", idx, err)
		}
	}

	if err := os.WriteFile(filepath.Join(taskDir, "prompt.txt"), []byte(res.Prompt+"\n"), 0644); err != nil {
		return Result{}, err
	}
	if err := writeJSON(filepath.Join(taskDir, "metadata.json"), res); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (g *Generator) writeVideo(path string, traj motion.Trajectory, renderer frames.Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := frames.Project(traj, renderer, g.encoder, f, g.cfg.VideoFPS); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
