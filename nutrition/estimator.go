// Package nutrition 基于食材目录估算菜谱营养。
//
// 估算是简单求和：菜谱里每个在营养目录中有记录的食材，
// 其营养向量按目录值（每 100g）累加；目录外的食材计入 missing，
// 不参与求和也不报错。这是粗粒度画像，不是膳食计算。
package nutrition

import (
	"fmt"

	"github.com/rushteam/recipekit/core"
)

// Estimate 是单道菜谱的营养估算结果。
type Estimate struct {
	RecipeID int            `json:"recipe_id"`
	Recipe   string         `json:"recipe"`
	Totals   core.Nutrition `json:"totals"`             // 维度顺序同 core.NutrientNames
	Covered  []string       `json:"covered"`            // 参与求和的食材，菜谱顺序
	Missing  []string       `json:"missing"`            // 目录外食材，菜谱顺序
	Coverage float64        `json:"coverage"`           // 覆盖率 [0,1]
	Message  string         `json:"message,omitempty"`  // 覆盖率为 0 时的提示
}

// Estimator 是营养估算器。
// 查询只读不可变数据集，没有派生模型，构建即就绪。
type Estimator struct {
	ds core.Dataset
}

func New(ds core.Dataset) *Estimator {
	return &Estimator{ds: ds}
}

// Estimate 估算单道菜谱的营养总量。未知菜谱返回 NOT_FOUND。
func (e *Estimator) Estimate(recipeID int) (*Estimate, error) {
	r, err := e.ds.GetRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	est := &Estimate{RecipeID: r.ID, Recipe: r.Name}
	for _, name := range r.Ingredients {
		ing, err := e.ds.GetIngredient(name)
		if err != nil {
			if core.IsNotFound(err) {
				est.Missing = append(est.Missing, name)
				continue
			}
			return nil, err
		}
		est.Covered = append(est.Covered, name)
		for d := 0; d < core.NutrientDims; d++ {
			est.Totals[d] += ing.Nutrition[d]
		}
	}

	if len(r.Ingredients) > 0 {
		est.Coverage = float64(len(est.Covered)) / float64(len(r.Ingredients))
	}
	if len(est.Covered) == 0 {
		est.Message = "no nutrition data for any ingredient"
	}
	return est, nil
}

// Compare 对多道菜谱逐一估算，便于外部层并排展示。
// 至少需要两道菜谱；任何一道未知都返回 NOT_FOUND。
func (e *Estimator) Compare(recipeIDs []int) ([]*Estimate, error) {
	if len(recipeIDs) < 2 {
		return nil, core.ValidationError(core.ModuleNutrition,
			fmt.Sprintf("comparison needs at least 2 recipes, got %d", len(recipeIDs)))
	}

	out := make([]*Estimate, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		est, err := e.Estimate(id)
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}
