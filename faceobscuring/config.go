package faceobscuring

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config config
type Config struct {
	Angle            float64 `yaml:"angle"`
	CascadeFile      string  `yaml:"cascade_file"`
	MinSize          int     `yaml:"min_size"`
	MaxSize          int     `yaml:"max_size"`
	ShiftFactor      float64 `yaml:"shift_factor"`
	ScaleFactor      float64 `yaml:"scale_factor"`
	IouThreshold     float64 `yaml:"iou_threshold"`
	QualityThreshold float32 `yaml:"quality_threshold"`
	Workers          int     `yaml:"workers"`
	JPEGQuality      int     `yaml:"jpeg_quality"`

	Logger logrus.FieldLogger `yaml:"-"`
}

// LoadConfig reads a YAML config file. Missing fields keep their zero value
// and are filled with defaults when the config is handed to New.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can not read config file %s", path)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "can not parse config file %s", path)
	}
	return &config, nil
}

// withDefaults returns a copy of config with zero fields replaced by defaults.
func withDefaults(config *Config) *Config {
	var fd Config
	if config != nil {
		fd = *config
	}

	if fd.MinSize == 0 {
		fd.MinSize = 20
	}

	if fd.MaxSize == 0 {
		fd.MaxSize = 1000
	}

	if fd.ShiftFactor == 0 {
		fd.ShiftFactor = 0.1
	}

	if fd.ScaleFactor == 0 {
		fd.ScaleFactor = 1.1
	}

	if fd.IouThreshold == 0 {
		fd.IouThreshold = 0.2
	}

	if fd.QualityThreshold == 0 {
		fd.QualityThreshold = 5.0
	}

	if fd.Workers <= 0 {
		fd.Workers = runtime.NumCPU()
	}

	if fd.JPEGQuality <= 0 || fd.JPEGQuality > 100 {
		fd.JPEGQuality = 100
	}

	if fd.Logger == nil {
		fd.Logger = logrus.StandardLogger()
	}

	return &fd
}
