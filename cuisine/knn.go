// Package cuisine 用加权 Jaccard k-NN 在已标注菜谱上预测食材组合的菜系。
//
// 相似度 = |查询∩菜谱| / |查询∪菜谱|；取相似度最高的 k 道菜谱作邻居
// （平局取更小的菜谱 id），按菜系聚合相似度权重投票，
// 胜者权重占比即置信度（百分数）。
package cuisine

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/rushteam/recipekit/core"
)

const (
	// DefaultK 是默认邻居数
	DefaultK = 5
	// topCuisines 是返回的候选菜系数量
	topCuisines = 3
	// topNeighbors 是结果中展示的最近菜谱数量
	topNeighbors = 3
	// neighborIngredients 是展示的每道邻居菜谱的食材数上限
	neighborIngredients = 5
)

// Config 是分类器配置。零值字段在 Train 时落回默认值。
type Config struct {
	K int // 邻居数
}

// Score 是单个候选菜系的权重占比（百分数）。
type Score struct {
	Cuisine    string  `json:"cuisine"`
	Percentage float64 `json:"percentage"`
}

// Neighbor 是投票邻居的展示视图。
type Neighbor struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Ingredients []string `json:"ingredients"` // 最多展示前 5 个
	Similarity  float64  `json:"similarity"`
}

// Prediction 是 Predict 的结果。
type Prediction struct {
	PredictedCuisine     string     `json:"predicted_cuisine"`
	Confidence           float64    `json:"confidence"` // [0,100]
	TopPredictions       []Score    `json:"top_predictions"`
	MatchedIngredients   []string   `json:"matched_ingredients"`   // 升序
	UnmatchedIngredients []string   `json:"unmatched_ingredients"` // 保留输入顺序
	NearestRecipes       []Neighbor `json:"nearest_recipes"`
}

// model 是训练产物：菜谱的食材集合索引加词表。
type model struct {
	recipes []*core.Recipe
	sets    []map[string]struct{} // 与 recipes 对齐
	vocab   map[string]struct{}
}

// Classifier 是菜系分类器。
type Classifier struct {
	core.Lifecycle

	ds    core.Dataset
	cfg   Config
	model atomic.Pointer[model]
}

func New(ds core.Dataset, cfg Config) *Classifier {
	return &Classifier{ds: ds, cfg: cfg}
}

// Train 索引全部菜谱并发布模型。
func (c *Classifier) Train(ctx context.Context) error {
	recipes := c.ds.AllRecipes()
	if len(recipes) == 0 {
		return core.ValidationError(core.ModuleCuisine, "catalogue has no recipes to index")
	}

	c.BeginTraining()

	m := &model{
		recipes: recipes,
		sets:    make([]map[string]struct{}, len(recipes)),
		vocab:   make(map[string]struct{}),
	}
	for i, r := range recipes {
		m.sets[i] = r.IngredientSet()
		for _, ing := range r.Ingredients {
			m.vocab[ing] = struct{}{}
		}
	}

	c.model.Store(m)
	c.Publish()
	return nil
}

// Predict 预测食材组合的菜系。k<=0 时用配置值/默认值。
// 词表外的食材贡献零相似度但保留在 unmatched 回显里；
// 邻居总权重为零（查询与训练数据无任何交集）时返回 NO_MATCH。
func (c *Classifier) Predict(ingredients []string, k int) (*Prediction, error) {
	if err := c.RequireReady(core.ModuleCuisine); err != nil {
		return nil, err
	}
	m := c.model.Load()

	query := core.NormalizeNames(ingredients)
	if len(query) == 0 {
		return nil, core.ValidationError(core.ModuleCuisine, "ingredient list must not be empty")
	}
	if k <= 0 {
		k = c.cfg.K
	}
	if k <= 0 {
		k = DefaultK
	}

	querySet := make(map[string]struct{}, len(query))
	for _, ing := range query {
		querySet[ing] = struct{}{}
	}

	var matched, unmatched []string
	for _, ing := range query {
		if _, ok := m.vocab[ing]; ok {
			matched = append(matched, ing)
		} else {
			unmatched = append(unmatched, ing)
		}
	}
	sort.Strings(matched)

	type scored struct {
		sim    float64
		recipe *core.Recipe
	}
	sims := make([]scored, len(m.recipes))
	for i, r := range m.recipes {
		sims[i] = scored{sim: jaccard(querySet, m.sets[i]), recipe: r}
	}
	sort.Slice(sims, func(i, j int) bool {
		if sims[i].sim != sims[j].sim {
			return sims[i].sim > sims[j].sim
		}
		return sims[i].recipe.ID < sims[j].recipe.ID
	})
	if len(sims) > k {
		sims = sims[:k]
	}

	var total float64
	for _, s := range sims {
		total += s.sim
	}
	if total == 0 {
		return nil, core.NoMatchError(core.ModuleCuisine,
			"query shares no ingredients with any recipe")
	}

	weights := make(map[string]float64)
	for _, s := range sims {
		weights[s.recipe.Cuisine] += s.sim
	}
	ranked := make([]Score, 0, len(weights))
	for cui, w := range weights {
		ranked = append(ranked, Score{Cuisine: cui, Percentage: w / total * 100})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Percentage != ranked[j].Percentage {
			return ranked[i].Percentage > ranked[j].Percentage
		}
		return ranked[i].Cuisine < ranked[j].Cuisine
	})
	top := ranked
	if len(top) > topCuisines {
		top = top[:topCuisines]
	}

	neighbors := make([]Neighbor, 0, topNeighbors)
	for _, s := range sims {
		if len(neighbors) == topNeighbors {
			break
		}
		ings := s.recipe.Ingredients
		if len(ings) > neighborIngredients {
			ings = ings[:neighborIngredients]
		}
		neighbors = append(neighbors, Neighbor{
			Name:        s.recipe.Name,
			Cuisine:     s.recipe.Cuisine,
			Ingredients: ings,
			Similarity:  s.sim,
		})
	}

	return &Prediction{
		PredictedCuisine:     ranked[0].Cuisine,
		Confidence:           ranked[0].Percentage,
		TopPredictions:       top,
		MatchedIngredients:   matched,
		UnmatchedIngredients: unmatched,
		NearestRecipes:       neighbors,
	}, nil
}

// Stats 返回目录的菜系分布：菜系 -> 菜谱数，另给出总数。
func (c *Classifier) Stats() (map[string]int, int, error) {
	if err := c.RequireReady(core.ModuleCuisine); err != nil {
		return nil, 0, err
	}
	m := c.model.Load()

	dist := make(map[string]int)
	for _, r := range m.recipes {
		dist[r.Cuisine]++
	}
	return dist, len(m.recipes), nil
}

// jaccard 计算两个食材集合的 Jaccard 相似度；并集为空时取 0。
func jaccard(a, b map[string]struct{}) float64 {
	var inter int
	for ing := range a {
		if _, ok := b[ing]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
