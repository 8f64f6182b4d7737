package core

import (
	"fmt"
	"math"
)

// FeatureDims 是菜谱数值特征向量的固定维度。
const FeatureDims = 3

// FeatureNames 是菜谱特征向量各维度的名称。
var FeatureNames = [FeatureDims]string{"prep_time", "difficulty_score", "spice_level"}

// Features 是菜谱的数值特征向量：备餐时长、难度分、辣度。
type Features [FeatureDims]float64

// Validate 校验特征向量：每个分量必须是有限数值。
func (f Features) Validate(module string) error {
	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValidationError(module, fmt.Sprintf("feature %s is not a finite number", FeatureNames[i]))
		}
	}
	return nil
}

// FeaturesFromSlice 将任意长度的切片转为 Features，维度必须恰好为 3。
func FeaturesFromSlice(module string, values []float64) (Features, error) {
	var f Features
	if len(values) != FeatureDims {
		return f, ValidationError(module, fmt.Sprintf("feature vector must have %d values, got %d", FeatureDims, len(values)))
	}
	copy(f[:], values)
	if err := f.Validate(module); err != nil {
		return f, err
	}
	return f, nil
}

// Recipe 是菜谱目录中的一条记录。
// Ingredients 是集合语义（无重复），元素已归一化，保留编写顺序。
// ID 在进程生命周期内唯一且稳定。
type Recipe struct {
	ID          int
	Name        string
	Cuisine     string
	Difficulty  string
	Ingredients []string
	Features    Features
}

// IngredientSet 返回菜谱食材的集合视图。
func (r *Recipe) IngredientSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		set[ing] = struct{}{}
	}
	return set
}

// HasIngredient 判断菜谱是否包含某食材（name 需已归一化）。
func (r *Recipe) HasIngredient(name string) bool {
	for _, ing := range r.Ingredients {
		if ing == name {
			return true
		}
	}
	return false
}

// RatingBounds 是评分的闭区间边界。缺失评分用"未评分"表达，不占用边界内数值。
type RatingBounds struct {
	Min float64
	Max float64
}

// DefaultRatingBounds 是默认评分边界 [1,5]。
var DefaultRatingBounds = RatingBounds{Min: 1, Max: 5}

// Contains 判断评分是否落在边界内。
func (b RatingBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp 将预测评分收敛到边界内（外推超出观测极值时截断，见协同过滤）。
func (b RatingBounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}
