package engine

import (
	"context"
	"testing"

	"github.com/rushteam/recipekit/cluster"
	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/cuisine"
	"github.com/rushteam/recipekit/dataset"
	"github.com/rushteam/recipekit/nutrition"
	"github.com/rushteam/recipekit/substitute"
)

func trainedEngine(t *testing.T) *Engine {
	t.Helper()
	ds, err := dataset.NewMemoryDataset(dataset.SampleCatalog())
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	eng := New(ds, nil)
	if err := eng.Train(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}
	return eng
}

func TestEngineNotReadyBeforeTraining(t *testing.T) {
	ds, _ := dataset.NewMemoryDataset(dataset.SampleCatalog())
	eng := New(ds, nil)

	if _, err := eng.Clusters(); !core.IsNotReady(err) {
		t.Errorf("Clusters should be NOT_READY, got %v", err)
	}
	if _, err := eng.PredictCuisine([]string{"pasta"}, 0); !core.IsNotReady(err) {
		t.Errorf("PredictCuisine should be NOT_READY, got %v", err)
	}
	if _, err := eng.RecommendForUser(context.Background(), 1, 5, ""); !core.IsNotReady(err) {
		t.Errorf("RecommendForUser should be NOT_READY, got %v", err)
	}
	if _, err := eng.SubstitutesFor(context.Background(), "pasta", 5, ""); !core.IsNotReady(err) {
		t.Errorf("SubstitutesFor should be NOT_READY, got %v", err)
	}
}

func TestListRecipes(t *testing.T) {
	eng := trainedEngine(t)

	recipes := eng.ListRecipes()
	if len(recipes) != 24 {
		t.Fatalf("got %d recipes, want 24", len(recipes))
	}
	if recipes[7].ID != 8 || recipes[7].Name != "Margherita Pizza" {
		t.Errorf("recipes[7] = %+v", recipes[7])
	}
	if recipes[7].Features != [3]float64{20, 2, 1} {
		t.Errorf("features = %v", recipes[7].Features)
	}
}

func TestEngineEndToEnd(t *testing.T) {
	eng := trainedEngine(t)
	ctx := context.Background()

	clusters, err := eng.Clusters()
	if err != nil || len(clusters) != cluster.DefaultK {
		t.Fatalf("Clusters = (%d, %v)", len(clusters), err)
	}

	pred, err := eng.PredictCluster("chicken breast", []float64{31, 0, 3.6, 165, 0})
	if err != nil || pred.ClusterName != "High-Protein Group" {
		t.Fatalf("PredictCluster = (%+v, %v)", pred, err)
	}

	cp, err := eng.PredictCuisine([]string{"pasta", "tomato sauce", "mozzarella", "basil"}, 0)
	if err != nil || cp.PredictedCuisine != "Italian" {
		t.Fatalf("PredictCuisine = (%+v, %v)", cp, err)
	}

	recs, err := eng.RecommendForUser(ctx, 1, 5, "")
	if err != nil || len(recs) != 5 {
		t.Fatalf("RecommendForUser = (%d, %v)", len(recs), err)
	}
	if recs[0].RecipeID != 6 {
		t.Errorf("top recommendation = %+v", recs[0])
	}

	similar, err := eng.SimilarRecipes(ctx, 8, 5, "")
	if err != nil || len(similar) != 5 {
		t.Fatalf("SimilarRecipes = (%d, %v)", len(similar), err)
	}
	if similar[0].RecipeID != 15 || similar[0].SimilarityScore != 1 {
		t.Errorf("top similar = %+v", similar[0])
	}

	subs, err := eng.SubstitutesFor(ctx, "pasta", 5, "")
	if err != nil || len(subs.Substitutes) == 0 {
		t.Fatalf("SubstitutesFor = (%+v, %v)", subs, err)
	}
	if subs.Substitutes[0].Substitute != "tomato sauce" {
		t.Errorf("top substitute = %+v", subs.Substitutes[0])
	}

	vocab := eng.Vocabulary()
	if len(vocab) == 0 {
		t.Error("vocabulary is empty")
	}

	est, err := eng.EstimateNutrition(15)
	if err != nil || est.Recipe != "Grilled Salmon" {
		t.Fatalf("EstimateNutrition = (%+v, %v)", est, err)
	}
}

func TestCuisineStatsView(t *testing.T) {
	eng := trainedEngine(t)

	stats, err := eng.CuisineStats()
	if err != nil {
		t.Fatalf("CuisineStats: %v", err)
	}
	if stats.TotalRecipes != 24 {
		t.Errorf("total = %d, want 24", stats.TotalRecipes)
	}
	if stats.Cuisines[0].Cuisine != "Italian" || stats.Cuisines[0].Count != 6 {
		t.Errorf("top cuisine = %+v", stats.Cuisines[0])
	}
	// 数量降序，平局按菜系名升序
	for i := 1; i < len(stats.Cuisines); i++ {
		a, b := stats.Cuisines[i-1], stats.Cuisines[i]
		if a.Count < b.Count || (a.Count == b.Count && a.Cuisine > b.Cuisine) {
			t.Fatalf("cuisine order violated at %d: %+v before %+v", i, a, b)
		}
	}
}

func TestRecommendWithFilter(t *testing.T) {
	eng := trainedEngine(t)

	recs, err := eng.RecommendForUser(context.Background(), 1, 5, `label.cuisine == "Italian"`)
	if err != nil {
		t.Fatalf("filtered recommend: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("filter should leave Italian recommendations")
	}
	ds, _ := dataset.NewMemoryDataset(dataset.SampleCatalog())
	for _, rec := range recs {
		r, err := ds.GetRecipe(rec.RecipeID)
		if err != nil {
			t.Fatal(err)
		}
		if r.Cuisine != "Italian" {
			t.Errorf("recipe %d cuisine %q leaked through the filter", r.ID, r.Cuisine)
		}
	}

	if _, err := eng.RecommendForUser(context.Background(), 1, 5, "label.cuisine =="); !core.IsValidation(err) {
		t.Errorf("broken filter should be VALIDATION, got %v", err)
	}
}

func TestSubstitutesWithFilter(t *testing.T) {
	eng := trainedEngine(t)

	// cheese 的候选里只保留 grain 类（rice/pasta/bread）
	res, err := eng.SubstitutesFor(context.Background(), "cheese", 10, `label.category == "grain"`)
	if err != nil {
		t.Fatalf("filtered substitutes: %v", err)
	}
	if len(res.Substitutes) == 0 {
		t.Fatal("grain candidates expected")
	}
	for _, c := range res.Substitutes {
		if c.Category != "grain" {
			t.Errorf("candidate %+v leaked through the filter", c)
		}
	}

	// 过滤到空集时带提示消息
	empty, err := eng.SubstitutesFor(context.Background(), "cheese", 10, `label.category == "unobtainium"`)
	if err != nil {
		t.Fatalf("filtered substitutes: %v", err)
	}
	if len(empty.Substitutes) != 0 || empty.Message != substitute.NoSubstitutesMessage {
		t.Errorf("empty filter result = %+v", empty)
	}
}

func TestConfiguredTopNDefaults(t *testing.T) {
	ds, err := dataset.NewMemoryDataset(dataset.SampleCatalog())
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	cfg := &Config{
		Recommend:  RecommendConfig{TopN: 2},
		Substitute: SubstituteConfig{TopN: 1},
	}
	eng := New(ds, cfg)
	if err := eng.Train(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}
	ctx := context.Background()

	// topN 未指定时落到配置值，而不是包级默认
	recs, err := eng.RecommendForUser(ctx, 1, 0, "")
	if err != nil || len(recs) != 2 {
		t.Errorf("RecommendForUser = (%d, %v), want 2 via config", len(recs), err)
	}
	similar, err := eng.SimilarRecipes(ctx, 8, 0, "")
	if err != nil || len(similar) != 2 {
		t.Errorf("SimilarRecipes = (%d, %v), want 2 via config", len(similar), err)
	}
	subs, err := eng.SubstitutesFor(ctx, "pasta", 0, "")
	if err != nil || len(subs.Substitutes) != 1 {
		t.Errorf("SubstitutesFor = (%+v, %v), want 1 via config", subs, err)
	}

	// 带过滤的路径同样尊重配置值
	filtered, err := eng.RecommendForUser(ctx, 1, 0, `item.score > 0.0`)
	if err != nil || len(filtered) != 2 {
		t.Errorf("filtered RecommendForUser = (%d, %v), want 2 via config", len(filtered), err)
	}

	// 显式 topN 仍然覆盖配置值
	recs, err = eng.RecommendForUser(ctx, 1, 4, "")
	if err != nil || len(recs) != 4 {
		t.Errorf("RecommendForUser = (%d, %v), want explicit 4", len(recs), err)
	}
}

func TestDoDispatch(t *testing.T) {
	eng := trainedEngine(t)
	ctx := context.Background()

	tests := []struct {
		op      string
		payload map[string]any
		check   func(t *testing.T, out any)
	}{
		{OpListRecipes, nil, func(t *testing.T, out any) {
			if got := out.([]RecipeView); len(got) != 24 {
				t.Errorf("recipes = %d", len(got))
			}
		}},
		{OpClusterList, nil, func(t *testing.T, out any) {
			if got := out.([]cluster.Info); len(got) != cluster.DefaultK {
				t.Errorf("clusters = %d", len(got))
			}
		}},
		{OpClusterPredict, map[string]any{"name": "salmon"}, func(t *testing.T, out any) {
			if got := out.(*cluster.Prediction); got.ClusterName != "High-Protein Group" {
				t.Errorf("prediction = %+v", got)
			}
		}},
		{OpCuisinePredict, map[string]any{"ingredients": []any{"beef", "tortillas", "salsa"}}, func(t *testing.T, out any) {
			if got := out.(*cuisine.Prediction); got.PredictedCuisine != "Mexican" {
				t.Errorf("prediction = %+v", got)
			}
		}},
		{OpCuisineStats, nil, func(t *testing.T, out any) {
			if got := out.(*CuisineStats); got.TotalRecipes != 24 {
				t.Errorf("stats = %+v", got)
			}
		}},
		{OpRecommend, map[string]any{"user_id": 1, "top_n": 2}, func(t *testing.T, out any) {
			if got := out.([]Recommendation); len(got) != 2 {
				t.Errorf("recommendations = %+v", got)
			}
		}},
		{OpSimilar, map[string]any{"recipe_id": 8, "top_n": 2}, func(t *testing.T, out any) {
			if got := out.([]SimilarRecipe); len(got) != 2 || got[0].RecipeID != 15 {
				t.Errorf("similar = %+v", got)
			}
		}},
		{OpSubstitute, map[string]any{"ingredient": "pasta", "top_n": 3}, func(t *testing.T, out any) {
			if got := out.(*substitute.Result); len(got.Substitutes) != 3 {
				t.Errorf("substitutes = %+v", got)
			}
		}},
		{OpVocabulary, nil, func(t *testing.T, out any) {
			if got := out.([]string); len(got) == 0 {
				t.Error("vocabulary empty")
			}
		}},
		{OpNutritionSingle, map[string]any{"recipe_id": 15}, func(t *testing.T, out any) {
			if got := out.(*nutrition.Estimate); got.Recipe != "Grilled Salmon" {
				t.Errorf("estimate = %+v", got)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			out, err := eng.Do(ctx, tt.op, tt.payload)
			if err != nil {
				t.Fatalf("Do(%s): %v", tt.op, err)
			}
			tt.check(t, out)
		})
	}
}

func TestDoUnknownOperation(t *testing.T) {
	eng := trainedEngine(t)

	if _, err := eng.Do(context.Background(), "bogus.op", nil); !core.IsValidation(err) {
		t.Errorf("unknown op should be VALIDATION, got %v", err)
	}
}

func TestDoPropagatesDomainErrors(t *testing.T) {
	eng := trainedEngine(t)
	ctx := context.Background()

	if _, err := eng.Do(ctx, OpSubstitute, map[string]any{"ingredient": "unobtainium"}); !core.IsUnknownIngredient(err) {
		t.Errorf("expected UNKNOWN_INGREDIENT, got %v", err)
	}
	if _, err := eng.Do(ctx, OpSimilar, map[string]any{"recipe_id": 999}); !core.IsNotFound(err) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if _, err := eng.Do(ctx, OpRecommend, map[string]any{"user_id": 42}); !core.IsNotFound(err) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
