package engine

import (
	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/pkg/conv"
)

// 松散载荷（map[string]any，通常来自外部层的 JSON 解码）到强类型请求的
// 边界解析。每个操作有独立的载荷结构，缺字段/类型不符在进入算法前报
// VALIDATION，不做静默强转。

// ClusterPredictRequest 是 cluster.predict 操作的请求。
type ClusterPredictRequest struct {
	Name      string
	Nutrition []float64 // 为空时按 Name 查目录
}

// ParseClusterPredict 解析 {"name": ..., "nutrition": [5]} 载荷。
func ParseClusterPredict(payload map[string]any) (*ClusterPredictRequest, error) {
	name := conv.PayloadGet(payload, "name", "")
	vec, hasVec := conv.SliceAnyToFloat64(payload["nutrition"])
	if name == "" && !hasVec {
		return nil, core.ValidationError(core.ModuleEngine,
			"cluster predict needs a name or a nutrition vector")
	}
	return &ClusterPredictRequest{Name: name, Nutrition: vec}, nil
}

// CuisinePredictRequest 是 cuisine.predict 操作的请求。
type CuisinePredictRequest struct {
	Ingredients []string
	K           int
}

// ParseCuisinePredict 解析 {"ingredients": [...], "k": n} 载荷。
func ParseCuisinePredict(payload map[string]any) (*CuisinePredictRequest, error) {
	ings := conv.SliceAnyToString(payload["ingredients"])
	if len(ings) == 0 {
		return nil, core.ValidationError(core.ModuleEngine,
			"cuisine predict needs a non-empty ingredients list")
	}
	return &CuisinePredictRequest{
		Ingredients: ings,
		K:           conv.PayloadGetInt(payload, "k", 0),
	}, nil
}

// RecommendRequest 是 recommend.user 操作的请求。
type RecommendRequest struct {
	UserID int
	TopN   int
	Filter string // 可选 CEL 表达式
}

// ParseRecommend 解析 {"user_id": n, "top_n": n, "filter": expr} 载荷。
func ParseRecommend(payload map[string]any) (*RecommendRequest, error) {
	uid := conv.PayloadGetInt(payload, "user_id", 0)
	if uid <= 0 {
		return nil, core.ValidationError(core.ModuleEngine,
			"recommend needs a positive user_id")
	}
	return &RecommendRequest{
		UserID: uid,
		TopN:   conv.PayloadGetInt(payload, "top_n", 0),
		Filter: conv.PayloadGet(payload, "filter", ""),
	}, nil
}

// SimilarRequest 是 recommend.similar 操作的请求。
type SimilarRequest struct {
	RecipeID int
	TopN     int
	Filter   string
}

// ParseSimilar 解析 {"recipe_id": n, "top_n": n, "filter": expr} 载荷。
func ParseSimilar(payload map[string]any) (*SimilarRequest, error) {
	rid := conv.PayloadGetInt(payload, "recipe_id", 0)
	if rid <= 0 {
		return nil, core.ValidationError(core.ModuleEngine,
			"similar recipes needs a positive recipe_id")
	}
	return &SimilarRequest{
		RecipeID: rid,
		TopN:     conv.PayloadGetInt(payload, "top_n", 0),
		Filter:   conv.PayloadGet(payload, "filter", ""),
	}, nil
}

// SubstituteRequest 是 substitute.lookup 操作的请求。
type SubstituteRequest struct {
	Ingredient string
	TopN       int
	Filter     string
}

// ParseSubstitute 解析 {"ingredient": s, "top_n": n, "filter": expr} 载荷。
func ParseSubstitute(payload map[string]any) (*SubstituteRequest, error) {
	ing := conv.PayloadGet(payload, "ingredient", "")
	if ing == "" {
		return nil, core.ValidationError(core.ModuleEngine,
			"substitute lookup needs an ingredient name")
	}
	return &SubstituteRequest{
		Ingredient: ing,
		TopN:       conv.PayloadGetInt(payload, "top_n", 0),
		Filter:     conv.PayloadGet(payload, "filter", ""),
	}, nil
}

// NutritionRequest 是 nutrition.estimate / nutrition.compare 的请求。
type NutritionRequest struct {
	RecipeID  int
	RecipeIDs []int
}

// ParseNutrition 解析 {"recipe_id": n} 或 {"recipe_ids": [...]} 载荷。
func ParseNutrition(payload map[string]any) (*NutritionRequest, error) {
	req := &NutritionRequest{
		RecipeID: conv.PayloadGetInt(payload, "recipe_id", 0),
	}
	if raw, ok := conv.SliceAnyToFloat64(payload["recipe_ids"]); ok {
		req.RecipeIDs = make([]int, len(raw))
		for i, f := range raw {
			req.RecipeIDs[i] = int(f)
		}
	}
	if req.RecipeID <= 0 && len(req.RecipeIDs) == 0 {
		return nil, core.ValidationError(core.ModuleEngine,
			"nutrition needs recipe_id or recipe_ids")
	}
	return req, nil
}
