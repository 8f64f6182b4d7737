package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/recipekit/cluster"
	"github.com/rushteam/recipekit/cuisine"
)

// Config 是引擎的可调参数，通常来自 YAML 配置文件。
// 零值字段落回默认值，空配置等价于 DefaultConfig()。
type Config struct {
	Cluster    ClusterConfig    `yaml:"cluster" json:"cluster"`
	Cuisine    CuisineConfig    `yaml:"cuisine" json:"cuisine"`
	Recommend  RecommendConfig  `yaml:"recommend" json:"recommend"`
	Substitute SubstituteConfig `yaml:"substitute" json:"substitute"`
}

type ClusterConfig struct {
	K             int `yaml:"k" json:"k"`
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
}

type CuisineConfig struct {
	K int `yaml:"k" json:"k"` // 投票邻居数
}

type RecommendConfig struct {
	TopN int `yaml:"top_n" json:"top_n"`
}

type SubstituteConfig struct {
	TopN int `yaml:"top_n" json:"top_n"`
}

// DefaultConfig 返回默认参数：K=4 个营养簇、5 个投票邻居、top-5 截断。
func DefaultConfig() *Config {
	return &Config{
		Cluster:    ClusterConfig{K: cluster.DefaultK, MaxIterations: cluster.DefaultMaxIterations},
		Cuisine:    CuisineConfig{K: cuisine.DefaultK},
		Recommend:  RecommendConfig{TopN: 5},
		Substitute: SubstituteConfig{TopN: 5},
	}
}

// normalize 把零值字段填回默认值。
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Cluster.K <= 0 {
		c.Cluster.K = def.Cluster.K
	}
	if c.Cluster.MaxIterations <= 0 {
		c.Cluster.MaxIterations = def.Cluster.MaxIterations
	}
	if c.Cuisine.K <= 0 {
		c.Cuisine.K = def.Cuisine.K
	}
	if c.Recommend.TopN <= 0 {
		c.Recommend.TopN = def.Recommend.TopN
	}
	if c.Substitute.TopN <= 0 {
		c.Substitute.TopN = def.Substitute.TopN
	}
}

// LoadConfigFile 按扩展名加载配置：.yaml/.yml 走 YAML，.json 走 JSON。
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseConfigYAML(data)
	case ".json":
		return ParseConfigJSON(data)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// ParseConfigYAML 从 YAML 字节解析配置，缺失字段落回默认值。
func ParseConfigYAML(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	c.normalize()
	return &c, nil
}

// ParseConfigJSON 从 JSON 字节解析配置，缺失字段落回默认值。
func ParseConfigJSON(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config json: %w", err)
	}
	c.normalize()
	return &c, nil
}
