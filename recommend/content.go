package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/pkg/utils"
)

// ContentBased 基于菜谱数值特征（备餐时长、难度分、辣度）推荐相似菜谱。
//
// 训练时对每个特征维度做 min-max 归一化并缓存；常量维度归一化为 0。
// 相似度是归一化向量的余弦，自相似恒为 1 且不出现在自己的结果里。
type ContentBased struct {
	core.Lifecycle

	ds    core.Dataset
	model atomic.Pointer[cbModel]
}

type cbModel struct {
	recipes []*core.Recipe
	norm    [][]float64 // 与 recipes 对齐
	byID    map[int]int // 菜谱 id -> recipes 下标
}

func NewContentBased(ds core.Dataset) *ContentBased {
	return &ContentBased{ds: ds}
}

// Train 归一化全部菜谱的特征向量并发布模型。
func (c *ContentBased) Train(ctx context.Context) error {
	recipes := c.ds.AllRecipes()
	if len(recipes) == 0 {
		return core.ValidationError(core.ModuleRecommend, "catalogue has no recipes")
	}

	c.BeginTraining()

	m := &cbModel{
		recipes: recipes,
		norm:    make([][]float64, len(recipes)),
		byID:    make(map[int]int, len(recipes)),
	}

	var mins, maxs [core.FeatureDims]float64
	for d := 0; d < core.FeatureDims; d++ {
		mins[d] = math.Inf(1)
		maxs[d] = math.Inf(-1)
	}
	for _, r := range recipes {
		for d := 0; d < core.FeatureDims; d++ {
			mins[d] = math.Min(mins[d], r.Features[d])
			maxs[d] = math.Max(maxs[d], r.Features[d])
		}
	}

	for i, r := range recipes {
		m.byID[r.ID] = i
		vec := make([]float64, core.FeatureDims)
		for d := 0; d < core.FeatureDims; d++ {
			if maxs[d] > mins[d] {
				vec[d] = (r.Features[d] - mins[d]) / (maxs[d] - mins[d])
			}
		}
		m.norm[i] = vec
	}

	c.model.Store(m)
	c.Publish()
	return nil
}

// SimilarTo 返回与指定菜谱最相似的 topN 道菜谱，
// 相似度降序，平局按菜谱 id 升序；不包含菜谱自身。
func (c *ContentBased) SimilarTo(ctx context.Context, recipeID, topN int) ([]*core.Item, error) {
	if err := c.RequireReady(core.ModuleRecommend); err != nil {
		return nil, err
	}
	m := c.model.Load()

	idx, ok := m.byID[recipeID]
	if !ok {
		return nil, core.NotFoundError(core.ModuleRecommend,
			fmt.Sprintf("recipe %d not found", recipeID))
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	items := make([]*core.Item, 0, len(m.recipes)-1)
	for j, r := range m.recipes {
		if j == idx {
			continue
		}
		item := core.NewItem(r.ID)
		item.Name = r.Name
		item.Score = cosine(m.norm[idx], m.norm[j])
		item.PutLabel("source", utils.Label{Value: "content", Source: "recommend"})
		item.PutLabel("cuisine", utils.Label{Value: r.Cuisine, Source: "recommend"})
		item.PutLabel("difficulty", utils.Label{Value: r.Difficulty, Source: "recommend"})
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	if len(items) > topN {
		items = items[:topN]
	}
	return items, nil
}

// Similarity 返回两道菜谱归一化特征向量的余弦相似度（对称）。
func (c *ContentBased) Similarity(recipeA, recipeB int) (float64, error) {
	if err := c.RequireReady(core.ModuleRecommend); err != nil {
		return 0, err
	}
	m := c.model.Load()

	ia, ok := m.byID[recipeA]
	if !ok {
		return 0, core.NotFoundError(core.ModuleRecommend,
			fmt.Sprintf("recipe %d not found", recipeA))
	}
	ib, ok := m.byID[recipeB]
	if !ok {
		return 0, core.NotFoundError(core.ModuleRecommend,
			fmt.Sprintf("recipe %d not found", recipeB))
	}
	// 自相似按定义恒为 1，零向量（全维度取 min 的菜谱）也不例外
	if ia == ib {
		return 1, nil
	}
	return cosine(m.norm[ia], m.norm[ib]), nil
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for d := range a {
		dot += a[d] * b[d]
		na += a[d] * a[d]
		nb += b[d] * b[d]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
