package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/harshalkoli/3d-sphere/scene"
	"github.com/harshalkoli/3d-sphere/volume"
)

type Server struct {
	Addr    string `yaml:"addr"`
	WebPath string `yaml:"web_path"`
}

type Volume struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Depth       int    `yaml:"depth"`
	Layout      string `yaml:"layout"`
	Compression string `yaml:"compression"`
}

// Options converts the layout and compression names.
func (v Volume) Options() (volume.Options, error) {
	if v.Layout == "auto" || v.Compression == "auto" {
		return volume.Options{Auto: true}, nil
	}
	l, err := volume.ParseLayout(v.Layout)
	if err != nil {
		return volume.Options{}, err
	}
	c, err := volume.ParseCompression(v.Compression)
	if err != nil {
		return volume.Options{}, err
	}
	return volume.Options{Layout: l, Compression: c}, nil
}

type Config struct {
	Server Server       `yaml:"server"`
	Volume Volume       `yaml:"volume"`
	Scene  scene.Config `yaml:"scene"`
}

func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8000", WebPath: "web"},
		Volume: Volume{
			Width:       volume.DefaultSize,
			Height:      volume.DefaultSize,
			Depth:       volume.DefaultSize,
			Layout:      "linear",
			Compression: "zstd",
		},
		Scene: scene.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read config %q", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Unmarshaling error")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is empty")
	}
	if err := volume.CheckDimensions(c.Volume.Width, c.Volume.Height, c.Volume.Depth); err != nil {
		return errors.Wrap(err, "volume")
	}
	if _, err := c.Volume.Options(); err != nil {
		return errors.Wrap(err, "volume")
	}
	switch c.Scene.Material {
	case "physical", "volume":
	default:
		return errors.Errorf("scene.material must be physical or volume, got %q", c.Scene.Material)
	}
	return nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
