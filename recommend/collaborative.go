// Package recommend 提供两类菜谱推荐：
//   - Collaborative 基于用户评分行为（user-based 余弦相似度协同过滤）
//   - ContentBased 基于菜谱自身特征向量（min-max 归一化 + 余弦相似度）
//
// 两者都返回 core.Item 列表：Score 承载预测评分/相似度，
// Labels 标注结果来源与菜谱属性，供外部层按 CEL 表达式筛选。
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/pkg/utils"
)

// DefaultTopN 是默认返回条数
const DefaultTopN = 5

// similarityWorkers 限制相似度扫描的并发 goroutine 数
const similarityWorkers = 8

// Collaborative 是 user-based 协同过滤推荐器。
//
// 相似度只在两个用户共同评过分的菜谱子向量上计算余弦；
// 没有共同评分的用户相似度记 0，不进入邻域。
// 预测评分 = 正相似度邻居评分的相似度加权平均，并收敛到评分边界内。
type Collaborative struct {
	core.Lifecycle

	ds    core.Dataset
	model atomic.Pointer[cfModel]
}

type cfModel struct {
	users   []int
	ratings map[int]map[int]float64
	recipes []*core.Recipe
	bounds  core.RatingBounds
}

func NewCollaborative(ds core.Dataset) *Collaborative {
	return &Collaborative{ds: ds}
}

// Train 对评分矩阵做快照索引。协同过滤没有离线模型，重活在查询期。
func (c *Collaborative) Train(ctx context.Context) error {
	users := c.ds.AllUsers()
	if len(users) == 0 {
		return core.ValidationError(core.ModuleRecommend, "catalogue has no user ratings")
	}

	c.BeginTraining()

	m := &cfModel{
		users:   users,
		ratings: make(map[int]map[int]float64, len(users)),
		recipes: c.ds.AllRecipes(),
		bounds:  c.ds.RatingBounds(),
	}
	for _, uid := range users {
		vec, err := c.ds.RatingsForUser(uid)
		if err != nil {
			return err
		}
		m.ratings[uid] = vec
	}

	c.model.Store(m)
	c.Publish()
	return nil
}

// Recommend 为用户推荐未评分的菜谱，按预测评分降序（平局按菜谱 id 升序）。
// 未知用户返回 NOT_FOUND；没有任何正相似度邻居时返回 EMPTY_NEIGHBORHOOD。
func (c *Collaborative) Recommend(ctx context.Context, userID, topN int) ([]*core.Item, error) {
	if err := c.RequireReady(core.ModuleRecommend); err != nil {
		return nil, err
	}
	m := c.model.Load()

	mine, ok := m.ratings[userID]
	if !ok {
		return nil, core.NotFoundError(core.ModuleRecommend,
			fmt.Sprintf("user %d not found", userID))
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	sims, err := c.similarities(ctx, m, userID, mine)
	if err != nil {
		return nil, err
	}
	if len(sims) == 0 {
		return nil, core.EmptyNeighborhoodError(core.ModuleRecommend,
			fmt.Sprintf("user %d has no positively similar neighbor", userID))
	}

	var items []*core.Item
	for _, r := range m.recipes {
		if _, rated := mine[r.ID]; rated {
			continue
		}
		var num, den float64
		for other, sim := range sims {
			if rating, ok := m.ratings[other][r.ID]; ok {
				num += sim * rating
				den += sim
			}
		}
		if den == 0 {
			continue
		}

		item := core.NewItem(r.ID)
		item.Name = r.Name
		item.Score = m.bounds.Clamp(num / den)
		item.PutLabel("source", utils.Label{Value: "collaborative", Source: "recommend"})
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

// similarities 并发扫描全部其他用户，返回正相似度邻居 map[userID]sim。
func (c *Collaborative) similarities(ctx context.Context, m *cfModel, userID int, mine map[int]float64) (map[int]float64, error) {
	others := make([]int, 0, len(m.users)-1)
	for _, uid := range m.users {
		if uid != userID {
			others = append(others, uid)
		}
	}

	results := make([]float64, len(others))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(similarityWorkers)
	for i, other := range others {
		i, other := i, other
		g.Go(func() error {
			results[i] = coRatedCosine(mine, m.ratings[other])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sims := make(map[int]float64)
	for i, other := range others {
		if results[i] > 0 {
			sims[other] = results[i]
		}
	}
	return sims, nil
}

// coRatedCosine 在共同评分的菜谱子向量上计算余弦相似度；无交集记 0。
func coRatedCosine(a, b map[int]float64) float64 {
	var dot, na, nb float64
	for rid, ra := range a {
		rb, ok := b[rid]
		if !ok {
			continue
		}
		dot += ra * rb
		na += ra * ra
		nb += rb * rb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
