package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravgen/internal/motion"
	"github.com/san-kum/gravgen/internal/render"
)

const (
	DefaultNumSamples  = 10
	DefaultImageWidth  = 600
	DefaultImageHeight = 800
	DefaultVideoFPS    = 15
	DefaultBallRadius  = 25
	DefaultPixPerMeter = 25.0
	DefaultMinHeight   = 10.0
	DefaultMaxHeight   = 25.0
	DefaultMinVelocity = -5.0
	DefaultMaxVelocity = 10.0
	DefaultMinGravity  = 5.0
	DefaultMaxGravity  = 15.0
)

type Config struct {
	NumSamples int    `yaml:"num_samples"`
	Seed       int64  `yaml:"seed"`
	OutputDir  string `yaml:"output_dir"`
	Workers    int    `yaml:"workers"` // 0 = GOMAXPROCS

	ImageWidth  int `yaml:"image_width"`
	ImageHeight int `yaml:"image_height"`

	GenerateVideos bool   `yaml:"generate_videos"`
	VideoFPS       int    `yaml:"video_fps"`
	VideoFormat    string `yaml:"video_format"` // mp4 (ffmpeg) or gif

	BallRadius int      `yaml:"ball_radius"`
	BallColor  [3]uint8 `yaml:"ball_color"`

	MinHeight          float64 `yaml:"min_height"`
	MaxHeight          float64 `yaml:"max_height"`
	MinInitialVelocity float64 `yaml:"min_initial_velocity"`
	MaxInitialVelocity float64 `yaml:"max_initial_velocity"`
	MinGravity         float64 `yaml:"min_gravity"`
	MaxGravity         float64 `yaml:"max_gravity"`

	ShowVelocityArrow bool `yaml:"show_velocity_arrow"`
	ShowGravityArrow  bool `yaml:"show_gravity_arrow"`
	ShowHeightMarkers bool `yaml:"show_height_markers"`
	ShowGround        bool `yaml:"show_ground"`

	Duration       float64 `yaml:"simulation_duration"`
	SampleRate     float64 `yaml:"sample_rate"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	GroundHeight   float64 `yaml:"ground_height"`

	Restitution     float64 `yaml:"restitution"`
	Friction        float64 `yaml:"friction"`
	RestVelocityEps float64 `yaml:"rest_velocity_eps"`
	RestHeightEps   float64 `yaml:"rest_height_eps"`
}

func DefaultConfig() *Config {
	return &Config{
		NumSamples:         DefaultNumSamples,
		OutputDir:          "dataset",
		ImageWidth:         DefaultImageWidth,
		ImageHeight:        DefaultImageHeight,
		GenerateVideos:     true,
		VideoFPS:           DefaultVideoFPS,
		VideoFormat:        "mp4",
		BallRadius:         DefaultBallRadius,
		BallColor:          [3]uint8{220, 60, 60},
		MinHeight:          DefaultMinHeight,
		MaxHeight:          DefaultMaxHeight,
		MinInitialVelocity: DefaultMinVelocity,
		MaxInitialVelocity: DefaultMaxVelocity,
		MinGravity:         DefaultMinGravity,
		MaxGravity:         DefaultMaxGravity,
		ShowVelocityArrow:  true,
		ShowGravityArrow:   true,
		ShowHeightMarkers:  true,
		ShowGround:         true,
		Duration:           motion.DefaultDuration,
		SampleRate:         motion.DefaultSampleRate,
		PixelsPerMeter:     DefaultPixPerMeter,
		Restitution:        motion.DefaultRestitution,
		Friction:           motion.DefaultFriction,
		RestVelocityEps:    motion.DefaultRestVelocityEps,
		RestHeightEps:      motion.DefaultRestHeightEps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.NumSamples < 1 {
		return fmt.Errorf("config: num_samples must be >= 1, got %d", c.NumSamples)
	}
	if c.MinHeight > c.MaxHeight {
		return fmt.Errorf("config: min_height %g exceeds max_height %g", c.MinHeight, c.MaxHeight)
	}
	if c.MinInitialVelocity > c.MaxInitialVelocity {
		return fmt.Errorf("config: min_initial_velocity %g exceeds max_initial_velocity %g",
			c.MinInitialVelocity, c.MaxInitialVelocity)
	}
	if c.MinGravity > c.MaxGravity {
		return fmt.Errorf("config: min_gravity %g exceeds max_gravity %g", c.MinGravity, c.MaxGravity)
	}
	if c.MinHeight < c.GroundHeight {
		return fmt.Errorf("config: min_height %g below ground_height %g", c.MinHeight, c.GroundHeight)
	}
	if c.GenerateVideos && c.VideoFPS <= 0 {
		return fmt.Errorf("config: video_fps must be positive, got %d", c.VideoFPS)
	}
	switch c.VideoFormat {
	case "", "mp4", "gif":
	default:
		return fmt.Errorf("config: unknown video_format %q", c.VideoFormat)
	}
	// Per-simulation values are validated again with the concrete sampled
	// numbers; probing the range edges catches bad bounds up front.
	probe := c.Params(c.MinHeight, c.MinInitialVelocity, c.MinGravity)
	return probe.Validate()
}

// Params assembles simulation parameters for one sampled initial condition.
func (c *Config) Params(height, velocity, gravity float64) motion.Params {
	return motion.Params{
		InitialHeight:   height,
		InitialVelocity: velocity,
		Gravity:         gravity,
		Duration:        c.Duration,
		SampleRate:      c.SampleRate,
		Restitution:     c.Restitution,
		Friction:        c.Friction,
		GroundHeight:    c.GroundHeight,
		RestVelocityEps: c.RestVelocityEps,
		RestHeightEps:   c.RestHeightEps,
	}
}

// RenderOptions maps the visual settings onto the renderer.
func (c *Config) RenderOptions(gravity float64) render.Options {
	opts := render.DefaultOptions()
	opts.Width = c.ImageWidth
	opts.Height = c.ImageHeight
	opts.PixelsPerMeter = c.PixelsPerMeter
	opts.GroundHeight = c.GroundHeight
	opts.BallRadius = c.BallRadius
	opts.BallColor = color.RGBA{c.BallColor[0], c.BallColor[1], c.BallColor[2], 255}
	opts.Gravity = gravity
	opts.ShowVelocityArrow = c.ShowVelocityArrow
	opts.ShowGravityArrow = c.ShowGravityArrow
	opts.ShowHeightMarkers = c.ShowHeightMarkers
	opts.ShowGround = c.ShowGround
	return opts
}
