package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime defaults for the search CLI. Fields may be loaded
// from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Matching parameters
	Tolerance   int     `json:"tolerance"`
	Transparent string  `json:"transparent"`
	MinScale    float64 `json:"min_scale"`
	MaxScale    float64 `json:"max_scale"`
	ScaleStep   float64 `json:"scale_step"`

	// Result policy
	FindAll        bool `json:"find_all"`
	MaxResults     int  `json:"max_results"`
	CenterPos      bool `json:"center_pos"`
	MaxAnswerBytes int  `json:"max_answer_bytes"`

	// Default search region; zero Right/Bottom means the display edge.
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		Tolerance:      10,
		Transparent:    "none",
		MinScale:       1.0,
		MaxScale:       1.0,
		ScaleStep:      0.1,
		FindAll:        false,
		MaxResults:     0,
		CenterPos:      true,
		MaxAnswerBytes: 16384,
	}
}

// Validate clamps values to safe ranges.
func (c *Config) Validate() error {
	if c.Tolerance < 0 {
		c.Tolerance = 0
	}
	if c.Tolerance > 255 {
		c.Tolerance = 255
	}
	if c.Transparent == "" {
		c.Transparent = "none"
	}
	if c.MinScale <= 0 {
		c.MinScale = 0.1
	}
	if c.MaxScale < c.MinScale {
		c.MaxScale = c.MinScale
	}
	if c.ScaleStep <= 0 {
		c.ScaleStep = 0.1
	}
	if c.MaxResults < 0 {
		c.MaxResults = 0
	}
	if c.MaxAnswerBytes <= 0 {
		c.MaxAnswerBytes = 16384
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
