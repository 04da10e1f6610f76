// Package config 读取并校验YAML配置文件
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type CatalogueConfig struct {
	RejectDuplicateStops bool `yaml:"reject_duplicate_stops"`
	StrictRoadDistances  bool `yaml:"strict_road_distances"`
}

type RoutingConfig struct {
	// 冻结时预计算全部最短路树
	Precompute        bool `yaml:"precompute"`
	PrecomputeWorkers int  `yaml:"precompute_workers" validate:"gte=0"`
	// 非空时覆盖请求文档中的routing_settings
	BusWaitTime *int     `yaml:"bus_wait_time" validate:"omitempty,gte=0"`
	BusVelocity *float64 `yaml:"bus_velocity" validate:"omitempty,gt=0"`
}

// Config 配置文件结构，命令行参数非空时优先
type Config struct {
	LogLevel  string          `yaml:"log_level" validate:"omitempty,oneof=debug info warn error fatal panic"`
	Listen    string          `yaml:"listen" validate:"omitempty,hostname_port"`
	Pprof     string          `yaml:"pprof" validate:"omitempty,hostname_port"`
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Routing   RoutingConfig   `yaml:"routing"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Listen:   "localhost:52101",
	}
}

// Load 读取配置文件，path为空时返回默认配置；文件中缺省的字段取默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
