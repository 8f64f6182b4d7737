package core

import (
	"fmt"
	"math"
	"strings"
)

// NutrientDims 是营养向量的固定维度。
const NutrientDims = 5

// NutrientNames 是营养向量各维度的名称（顺序即平局裁决顺序）。
var NutrientNames = [NutrientDims]string{"protein", "carbs", "fat", "calories", "fiber"}

// Nutrition 是食材的营养向量：蛋白质、碳水、脂肪、热量、纤维（每 100g）。
type Nutrition [NutrientDims]float64

// Validate 校验营养向量：每个分量必须是有限且非负的数值。
// 不合法时返回 VALIDATION 错误，不做静默修正。
func (n Nutrition) Validate(module string) error {
	for i, v := range n {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValidationError(module, fmt.Sprintf("nutrition %s is not a finite number", NutrientNames[i]))
		}
		if v < 0 {
			return ValidationError(module, fmt.Sprintf("nutrition %s must be non-negative, got %v", NutrientNames[i], v))
		}
	}
	return nil
}

// NutritionFromSlice 将任意长度的切片转为 Nutrition，维度必须恰好为 5。
func NutritionFromSlice(module string, values []float64) (Nutrition, error) {
	var n Nutrition
	if len(values) != NutrientDims {
		return n, ValidationError(module, fmt.Sprintf("nutrition vector must have %d values, got %d", NutrientDims, len(values)))
	}
	copy(n[:], values)
	if err := n.Validate(module); err != nil {
		return n, err
	}
	return n, nil
}

// Ingredient 是食材目录中的一条记录。
// Name 已归一化（小写、去首尾空白），在目录内全局唯一。
type Ingredient struct {
	Name      string
	Nutrition Nutrition
	Category  string // 目录编写时给定；为空时视为 "other"
}

// NormalizeName 归一化食材名：小写 + 去首尾空白。
// 所有按名字的查找都先经过此函数，保证大小写/空白不敏感。
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeNames 归一化一组食材名并按集合语义去重（保留首次出现顺序）。
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		n := NormalizeName(raw)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
