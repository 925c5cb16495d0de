package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/keyframe_browser/animation"
)

type Server struct {
	Addr string `yaml:"addr"`
	Web  string `yaml:"web"`
}

// Timeline describes playback range and speed
type Timeline struct {
	FPS   float64         `yaml:"fps"`
	Start animation.Frame `yaml:"start"`
	End   animation.Frame `yaml:"end"`
	Loop  bool            `yaml:"loop"`
}

type Export struct {
	Name string `yaml:"name"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	Timeline Timeline `yaml:"timeline"`
	Export   Export   `yaml:"export"`
	Encoding string   `yaml:"encoding"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Addr: ":8000",
			Web:  "web",
		},
		Timeline: Timeline{
			FPS:   30,
			Start: 0,
			End:   120,
			Loop:  true,
		},
		Export: Export{
			Name: "scene",
		},
		Encoding: GetEncoding().String(),
	}
}

// Load reads yaml config on top of defaults
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open config %q", path)
	}
	defer f.Close()

	c := Default()
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode config %q", path)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid config %q", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Timeline.FPS <= 0 {
		return errors.Errorf("timeline fps must be positive, got %v", c.Timeline.FPS)
	}
	if c.Timeline.End < c.Timeline.Start {
		return errors.Errorf("timeline end %d is before start %d", c.Timeline.End, c.Timeline.Start)
	}
	if c.Export.Name == "" {
		return errors.Errorf("export name is empty")
	}
	if _, err := findEncoding(c.Encoding); err != nil {
		return err
	}
	return nil
}
