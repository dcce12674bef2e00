package config

// Presets bundle gravity regimes and bounce materials that produce visually
// distinct datasets.
var presets = map[string]func(*Config){
	"earth": func(c *Config) {
		c.MinGravity, c.MaxGravity = 9.81, 9.81
	},
	"moon": func(c *Config) {
		c.MinGravity, c.MaxGravity = 1.62, 1.62
		c.Duration = 6.0
	},
	"low-gravity": func(c *Config) {
		c.MinGravity, c.MaxGravity = 2.0, 5.0
		c.Duration = 5.0
	},
	"bouncy": func(c *Config) {
		c.Restitution = 0.85
		c.Friction = 0.05
	},
	"dead-drop": func(c *Config) {
		c.Restitution = 0.1
		c.Friction = 0.6
		c.MinInitialVelocity, c.MaxInitialVelocity = 0, 0
	},
	"stills-only": func(c *Config) {
		c.GenerateVideos = false
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil if
// the preset does not exist.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns the available preset names, unordered.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
