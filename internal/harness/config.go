package harness

import (
	"encoding/json"
	"io"
	"os"

	"github.com/zeebo/errs"
)

type Config struct {
	MallocFailPercent int   `json:"malloc_fail_percent"`
	StringLength      int   `json:"string_length"`
	ErrorLimit        int   `json:"error_limit"`
	Verbose           int   `json:"verbose"`
	Synchronized      bool  `json:"synchronized"`
	Seed              int64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		StringLength: 1024,
		ErrorLimit:   5,
		Verbose:      1,
	}
}

// LoadConfig reads a JSON config on top of the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, errs.Wrap(err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Config{}, errs.Wrap(err)
	}

	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, errs.New("invalid config %q: %w", path, err)
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	if c.MallocFailPercent < 0 || c.MallocFailPercent > 100 {
		return errs.New("malloc_fail_percent must be within 0..100, got %d", c.MallocFailPercent)
	}
	if c.StringLength <= 0 {
		return errs.New("string_length must be positive, got %d", c.StringLength)
	}
	if c.ErrorLimit <= 0 {
		return errs.New("error_limit must be positive, got %d", c.ErrorLimit)
	}
	return nil
}
