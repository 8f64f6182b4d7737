// Package dataset 提供数据目录的加载、校验与只读访问。
// 目录一旦构建完成即不可变，所有算法组件共享同一份 core.Dataset 视图。
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog 是目录的可序列化描述，对应 YAML/JSON 目录文件的结构。
// 它只是数据载体，真正的校验与索引在 NewMemoryDataset 里完成。
type Catalog struct {
	Ingredients []IngredientSpec `yaml:"ingredients" json:"ingredients"`
	Recipes     []RecipeSpec     `yaml:"recipes" json:"recipes"`
	Ratings     []RatingSpec     `yaml:"ratings" json:"ratings"`
	Bounds      *BoundsSpec      `yaml:"rating_bounds,omitempty" json:"rating_bounds,omitempty"`
}

// IngredientSpec 是目录文件中的一条食材记录。
// Nutrition 依次为 protein/carbs/fat/calories/fiber（每 100g）。
type IngredientSpec struct {
	Name      string    `yaml:"name" json:"name"`
	Nutrition []float64 `yaml:"nutrition" json:"nutrition"`
	Category  string    `yaml:"category,omitempty" json:"category,omitempty"`
}

// RecipeSpec 是目录文件中的一条菜谱记录。
// Features 依次为 prep_time/difficulty_score/spice_level。
type RecipeSpec struct {
	ID          int       `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Cuisine     string    `yaml:"cuisine" json:"cuisine"`
	Difficulty  string    `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Ingredients []string  `yaml:"ingredients" json:"ingredients"`
	Features    []float64 `yaml:"features" json:"features"`
}

// RatingSpec 是目录文件中一个用户的评分向量。
// Ratings 的 key 是菜谱 id，缺失的 key 表示"未评分"。
type RatingSpec struct {
	UserID  int             `yaml:"user_id" json:"user_id"`
	Ratings map[int]float64 `yaml:"ratings" json:"ratings"`
}

// BoundsSpec 是目录声明的评分边界，缺省为 [1,5]。
type BoundsSpec struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// LoadCatalogFile 按扩展名加载目录文件：.yaml/.yml 走 YAML，.json 走 JSON。
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseCatalogYAML(data)
	case ".json":
		return ParseCatalogJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
}

// ParseCatalogYAML 从 YAML 字节解析目录。
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return &c, nil
}

// ParseCatalogJSON 从 JSON 字节解析目录。
func ParseCatalogJSON(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return &c, nil
}
