// Package engine 是分析引擎的门面：持有全部算法组件，
// 并发训练、统一查询入口、结果过滤与视图装配都在这里。
package engine

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recipekit/cluster"
	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/cuisine"
	"github.com/rushteam/recipekit/filter"
	"github.com/rushteam/recipekit/nutrition"
	"github.com/rushteam/recipekit/pkg/utils"
	"github.com/rushteam/recipekit/recommend"
	"github.com/rushteam/recipekit/substitute"
)

// RecipeView 是 list recipes 操作的单条输出。
type RecipeView struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Cuisine     string     `json:"cuisine"`
	Difficulty  string     `json:"difficulty"`
	Ingredients []string   `json:"ingredients"`
	Features    [3]float64 `json:"features"`
}

// Recommendation 是 user recommendations 操作的单条输出。
type Recommendation struct {
	RecipeID        int     `json:"recipe_id"`
	Recipe          string  `json:"recipe"`
	PredictedRating float64 `json:"predicted_rating"`
}

// SimilarRecipe 是 similar recipes 操作的单条输出。
type SimilarRecipe struct {
	RecipeID        int     `json:"recipe_id"`
	Recipe          string  `json:"recipe"`
	SimilarityScore float64 `json:"similarity_score"` // [0,1]
}

// CuisineCount 是菜系分布的单条统计。
type CuisineCount struct {
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
}

// CuisineStats 是 cuisine stats 操作的输出。
type CuisineStats struct {
	TotalRecipes int            `json:"total_recipes"`
	Cuisines     []CuisineCount `json:"cuisines"` // 数量降序，平局按名字升序
}

// Engine 聚合全部算法组件，对外提供统一的查询门面。
// Train 之后所有查询并发安全；训练失败的引擎不进入就绪态。
type Engine struct {
	ds core.Dataset

	clusterer     *cluster.Clusterer
	classifier    *cuisine.Classifier
	collaborative *recommend.Collaborative
	content       *recommend.ContentBased
	substituter   *substitute.Engine
	estimator     *nutrition.Estimator

	recommendTopN  int // 配置的默认推荐/相似条数，查询未指定 topN 时生效
	substituteTopN int // 配置的默认替代候选条数
}

// New 构造引擎。cfg 为 nil 时使用默认配置。
func New(ds core.Dataset, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg.normalize()
	}

	return &Engine{
		ds:             ds,
		clusterer:      cluster.New(ds, cluster.Config{K: cfg.Cluster.K, MaxIterations: cfg.Cluster.MaxIterations}),
		classifier:     cuisine.New(ds, cuisine.Config{K: cfg.Cuisine.K}),
		collaborative:  recommend.NewCollaborative(ds),
		content:        recommend.NewContentBased(ds),
		substituter:    substitute.New(ds),
		estimator:      nutrition.New(ds),
		recommendTopN:  cfg.Recommend.TopN,
		substituteTopN: cfg.Substitute.TopN,
	}
}

// Train 并发训练全部组件。组件只依赖不可变数据集、互不依赖，
// 可以安全并行；任何一个失败则整体失败。
func (e *Engine) Train(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.clusterer.Train(ctx) })
	g.Go(func() error { return e.classifier.Train(ctx) })
	g.Go(func() error { return e.collaborative.Train(ctx) })
	g.Go(func() error { return e.content.Train(ctx) })
	g.Go(func() error { return e.substituter.Train(ctx) })
	return g.Wait()
}

// ListRecipes 返回全部菜谱视图，id 升序。
func (e *Engine) ListRecipes() []RecipeView {
	recipes := e.ds.AllRecipes()
	out := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeView{
			ID:          r.ID,
			Name:        r.Name,
			Cuisine:     r.Cuisine,
			Difficulty:  r.Difficulty,
			Ingredients: r.Ingredients,
			Features:    r.Features,
		}
	}
	return out
}

// Clusters 返回全部营养簇。
func (e *Engine) Clusters() ([]cluster.Info, error) {
	return e.clusterer.Clusters()
}

// PredictCluster 预测食材/营养向量的归属簇。
func (e *Engine) PredictCluster(name string, vec []float64) (*cluster.Prediction, error) {
	return e.clusterer.Predict(name, vec)
}

// PredictCuisine 预测食材组合的菜系。
func (e *Engine) PredictCuisine(ingredients []string, k int) (*cuisine.Prediction, error) {
	return e.classifier.Predict(ingredients, k)
}

// CuisineStats 返回目录的菜系分布。
func (e *Engine) CuisineStats() (*CuisineStats, error) {
	dist, total, err := e.classifier.Stats()
	if err != nil {
		return nil, err
	}

	stats := &CuisineStats{TotalRecipes: total}
	for cui, n := range dist {
		stats.Cuisines = append(stats.Cuisines, CuisineCount{Cuisine: cui, Count: n})
	}
	sort.Slice(stats.Cuisines, func(i, j int) bool {
		if stats.Cuisines[i].Count != stats.Cuisines[j].Count {
			return stats.Cuisines[i].Count > stats.Cuisines[j].Count
		}
		return stats.Cuisines[i].Cuisine < stats.Cuisines[j].Cuisine
	})
	return stats, nil
}

// RecommendForUser 基于协同过滤为用户推荐菜谱。
// filterExpr 是可选的 CEL 表达式，在排序之后、截断之前对结果筛选。
func (e *Engine) RecommendForUser(ctx context.Context, userID, topN int, filterExpr string) ([]Recommendation, error) {
	items, err := e.recommendItems(ctx, userID, topN, filterExpr)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, len(items))
	for i, it := range items {
		out[i] = Recommendation{RecipeID: it.ID, Recipe: it.Name, PredictedRating: it.Score}
	}
	return out, nil
}

func (e *Engine) recommendItems(ctx context.Context, userID, topN int, filterExpr string) ([]*core.Item, error) {
	if topN <= 0 {
		topN = e.recommendTopN
	}
	if filterExpr == "" {
		return e.collaborative.Recommend(ctx, userID, topN)
	}

	// 先取全量排序结果再过滤，保证过滤不吃掉本应返回的条数
	items, err := e.collaborative.Recommend(ctx, userID, e.ds.TotalRecipes())
	if err != nil {
		return nil, err
	}
	items, err = e.applyFilter(ctx, items, filterExpr)
	if err != nil {
		return nil, err
	}
	if len(items) > topN {
		items = items[:topN]
	}
	return items, nil
}

// SimilarRecipes 返回与指定菜谱特征最相似的菜谱。
func (e *Engine) SimilarRecipes(ctx context.Context, recipeID, topN int, filterExpr string) ([]SimilarRecipe, error) {
	if topN <= 0 {
		topN = e.recommendTopN
	}
	var items []*core.Item
	var err error
	if filterExpr == "" {
		items, err = e.content.SimilarTo(ctx, recipeID, topN)
	} else {
		items, err = e.content.SimilarTo(ctx, recipeID, e.ds.TotalRecipes())
		if err == nil {
			items, err = e.applyFilter(ctx, items, filterExpr)
		}
		if err == nil && len(items) > topN {
			items = items[:topN]
		}
	}
	if err != nil {
		return nil, err
	}

	out := make([]SimilarRecipe, len(items))
	for i, it := range items {
		out[i] = SimilarRecipe{RecipeID: it.ID, Recipe: it.Name, SimilarityScore: it.Score}
	}
	return out, nil
}

// SubstitutesFor 返回食材的替代候选，可按 CEL 表达式筛选候选
// （候选以 Item 形式暴露：score=confidence，label.category=候选类别）。
func (e *Engine) SubstitutesFor(ctx context.Context, name string, topN int, filterExpr string) (*substitute.Result, error) {
	if topN <= 0 {
		topN = e.substituteTopN
	}
	if filterExpr == "" {
		return e.substituter.SubstitutesFor(name, topN)
	}

	// 先取全量候选再过滤，保证过滤不吃掉本应返回的条数
	res, err := e.substituter.SubstitutesFor(name, len(e.ds.Vocabulary()))
	if err != nil {
		return nil, err
	}

	items := make([]*core.Item, len(res.Substitutes))
	byName := make(map[string]substitute.Candidate, len(res.Substitutes))
	for i, cand := range res.Substitutes {
		item := core.NewItem(0)
		item.Name = cand.Substitute
		item.Score = cand.Confidence
		item.PutLabel("source", utils.Label{Value: "substitute", Source: "substitute"})
		item.PutLabel("category", utils.Label{Value: cand.Category, Source: "substitute"})
		items[i] = item
		byName[cand.Substitute] = cand
	}
	items, err = e.applyFilter(ctx, items, filterExpr)
	if err != nil {
		return nil, err
	}

	kept := make([]substitute.Candidate, 0, len(items))
	for _, it := range items {
		if len(kept) == topN {
			break
		}
		kept = append(kept, byName[it.Name])
	}
	res.Substitutes = kept
	if len(kept) == 0 {
		res.Message = substitute.NoSubstitutesMessage
	} else {
		res.Message = ""
	}
	return res, nil
}

// IngredientInfo 返回食材的统计画像。
func (e *Engine) IngredientInfo(name string) (*substitute.Info, error) {
	return e.substituter.IngredientInfo(name)
}

// Vocabulary 返回菜谱食材词表（升序）。
func (e *Engine) Vocabulary() []string {
	return e.ds.Vocabulary()
}

// EstimateNutrition 估算单道菜谱的营养总量。
func (e *Engine) EstimateNutrition(recipeID int) (*nutrition.Estimate, error) {
	return e.estimator.Estimate(recipeID)
}

// CompareNutrition 并排估算多道菜谱的营养。
func (e *Engine) CompareNutrition(recipeIDs []int) ([]*nutrition.Estimate, error) {
	return e.estimator.Compare(recipeIDs)
}

func (e *Engine) applyFilter(ctx context.Context, items []*core.Item, expr string) ([]*core.Item, error) {
	f, err := filter.NewExprFilter(expr)
	if err != nil {
		return nil, core.ValidationError(core.ModuleEngine,
			fmt.Sprintf("invalid filter expression: %v", err))
	}
	return filter.Apply(ctx, items, f), nil
}

// 统一查询入口的操作名。外部层按操作名分发松散载荷，
// 载荷结构见 payload.go。
const (
	OpListRecipes      = "recipes.list"
	OpClusterList      = "cluster.list"
	OpClusterPredict   = "cluster.predict"
	OpCuisinePredict   = "cuisine.predict"
	OpCuisineStats     = "cuisine.stats"
	OpRecommend        = "recommend.user"
	OpSimilar          = "recommend.similar"
	OpSubstitute       = "substitute.lookup"
	OpVocabulary       = "vocabulary.list"
	OpNutritionSingle  = "nutrition.estimate"
	OpNutritionCompare = "nutrition.compare"
)

// Do 是松散载荷的统一查询入口：按操作名解析载荷并分发到对应组件。
// 未知操作返回 VALIDATION。
func (e *Engine) Do(ctx context.Context, op string, payload map[string]any) (any, error) {
	switch op {
	case OpListRecipes:
		return e.ListRecipes(), nil
	case OpClusterList:
		return e.Clusters()
	case OpClusterPredict:
		req, err := ParseClusterPredict(payload)
		if err != nil {
			return nil, err
		}
		return e.PredictCluster(req.Name, req.Nutrition)
	case OpCuisinePredict:
		req, err := ParseCuisinePredict(payload)
		if err != nil {
			return nil, err
		}
		return e.PredictCuisine(req.Ingredients, req.K)
	case OpCuisineStats:
		return e.CuisineStats()
	case OpRecommend:
		req, err := ParseRecommend(payload)
		if err != nil {
			return nil, err
		}
		return e.RecommendForUser(ctx, req.UserID, req.TopN, req.Filter)
	case OpSimilar:
		req, err := ParseSimilar(payload)
		if err != nil {
			return nil, err
		}
		return e.SimilarRecipes(ctx, req.RecipeID, req.TopN, req.Filter)
	case OpSubstitute:
		req, err := ParseSubstitute(payload)
		if err != nil {
			return nil, err
		}
		return e.SubstitutesFor(ctx, req.Ingredient, req.TopN, req.Filter)
	case OpVocabulary:
		return e.Vocabulary(), nil
	case OpNutritionSingle:
		req, err := ParseNutrition(payload)
		if err != nil {
			return nil, err
		}
		if req.RecipeID <= 0 {
			return nil, core.ValidationError(core.ModuleEngine, "nutrition estimate needs recipe_id")
		}
		return e.EstimateNutrition(req.RecipeID)
	case OpNutritionCompare:
		req, err := ParseNutrition(payload)
		if err != nil {
			return nil, err
		}
		return e.CompareNutrition(req.RecipeIDs)
	default:
		return nil, core.ValidationError(core.ModuleEngine,
			fmt.Sprintf("unknown operation %q", op))
	}
}
