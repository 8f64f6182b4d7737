package cuisine

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/dataset"
)

func trainedClassifier(t *testing.T) *Classifier {
	t.Helper()
	ds, err := dataset.NewMemoryDataset(dataset.SampleCatalog())
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	c := New(ds, Config{})
	if err := c.Train(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}
	return c
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPredictItalian(t *testing.T) {
	c := trainedClassifier(t)

	pred, err := c.Predict([]string{"pasta", "tomato sauce", "mozzarella", "basil"}, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.PredictedCuisine != "Italian" {
		t.Errorf("predicted = %q, want Italian", pred.PredictedCuisine)
	}
	if pred.Confidence <= 50 {
		t.Errorf("confidence = %v, want > 50", pred.Confidence)
	}
	// 全部五个投票邻居都是意大利菜，置信度为 100%
	if !almostEqual(pred.Confidence, 100) {
		t.Errorf("confidence = %v, want 100", pred.Confidence)
	}

	wantMatched := []string{"basil", "mozzarella", "pasta", "tomato sauce"}
	if !reflect.DeepEqual(pred.MatchedIngredients, wantMatched) {
		t.Errorf("matched = %v, want %v", pred.MatchedIngredients, wantMatched)
	}
	if len(pred.UnmatchedIngredients) != 0 {
		t.Errorf("unmatched = %v, want empty", pred.UnmatchedIngredients)
	}

	if len(pred.NearestRecipes) != 3 {
		t.Fatalf("neighbors = %d, want 3", len(pred.NearestRecipes))
	}
	// 前两名相似度 0.6 平局，按菜谱 id 裁决：Margherita Pizza(8) 在 Lasagna(17) 前
	if pred.NearestRecipes[0].Name != "Margherita Pizza" || pred.NearestRecipes[1].Name != "Lasagna" {
		t.Errorf("neighbor order = %q, %q", pred.NearestRecipes[0].Name, pred.NearestRecipes[1].Name)
	}
	if !almostEqual(pred.NearestRecipes[0].Similarity, 0.6) {
		t.Errorf("top similarity = %v, want 0.6", pred.NearestRecipes[0].Similarity)
	}
	if pred.NearestRecipes[2].Name != "Spaghetti Marinara" || !almostEqual(pred.NearestRecipes[2].Similarity, 0.5) {
		t.Errorf("third neighbor = %+v", pred.NearestRecipes[2])
	}
}

func TestPredictMexican(t *testing.T) {
	c := trainedClassifier(t)

	pred, err := c.Predict([]string{"beef", "tortillas", "salsa"}, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.PredictedCuisine != "Mexican" {
		t.Errorf("predicted = %q, want Mexican", pred.PredictedCuisine)
	}
	if !almostEqual(pred.Confidence, 9100.0/101.0) { // 90.0990...%
		t.Errorf("confidence = %v, want %v", pred.Confidence, 9100.0/101.0)
	}
	if pred.NearestRecipes[0].Name != "Beef Tacos" {
		t.Errorf("top neighbor = %q", pred.NearestRecipes[0].Name)
	}
}

func TestPredictAggregatesVotes(t *testing.T) {
	c := trainedClassifier(t)

	pred, err := c.Predict([]string{"chicken", "rice", "soy sauce"}, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// Asian 两票（Chicken Stir Fry + Fried Rice）胜过 Indian 一票
	if pred.PredictedCuisine != "Asian" {
		t.Errorf("predicted = %q, want Asian", pred.PredictedCuisine)
	}
	if len(pred.TopPredictions) != 3 {
		t.Fatalf("top predictions = %d, want 3", len(pred.TopPredictions))
	}
	if pred.TopPredictions[1].Cuisine != "Indian" {
		t.Errorf("runner-up = %q, want Indian", pred.TopPredictions[1].Cuisine)
	}
}

func TestTopPredictionPercentagesSumTo100(t *testing.T) {
	c := trainedClassifier(t)

	pred, err := c.Predict([]string{"pasta", "tomato sauce", "mozzarella", "basil"}, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	var sum float64
	for _, s := range pred.TopPredictions {
		if s.Percentage < 0 || s.Percentage > 100 {
			t.Errorf("percentage %v outside [0,100]", s.Percentage)
		}
		sum += s.Percentage
	}
	// 该查询的全部邻居权重都归属于列出的菜系
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
}

func TestPredictUnmatchedEchoed(t *testing.T) {
	c := trainedClassifier(t)

	pred, err := c.Predict([]string{"Pasta", "unobtainium", "stardust"}, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// 词表外的食材保留输入顺序回显，不被丢弃
	want := []string{"unobtainium", "stardust"}
	if !reflect.DeepEqual(pred.UnmatchedIngredients, want) {
		t.Errorf("unmatched = %v, want %v", pred.UnmatchedIngredients, want)
	}
	if !reflect.DeepEqual(pred.MatchedIngredients, []string{"pasta"}) {
		t.Errorf("matched = %v", pred.MatchedIngredients)
	}
}

func TestPredictNoMatch(t *testing.T) {
	c := trainedClassifier(t)

	if _, err := c.Predict([]string{"unobtainium", "stardust"}, 0); !core.IsNoMatch(err) {
		t.Errorf("all-unknown query should be NO_MATCH, got %v", err)
	}
}

func TestPredictValidation(t *testing.T) {
	c := trainedClassifier(t)

	if _, err := c.Predict(nil, 0); !core.IsValidation(err) {
		t.Errorf("empty query should be VALIDATION, got %v", err)
	}
	if _, err := c.Predict([]string{"", "  "}, 0); !core.IsValidation(err) {
		t.Errorf("blank-only query should be VALIDATION, got %v", err)
	}
}

func TestPredictNotReady(t *testing.T) {
	ds, _ := dataset.NewMemoryDataset(dataset.SampleCatalog())
	c := New(ds, Config{})
	if _, err := c.Predict([]string{"pasta"}, 0); !core.IsNotReady(err) {
		t.Errorf("query before training should be NOT_READY, got %v", err)
	}
}

func TestStats(t *testing.T) {
	c := trainedClassifier(t)

	dist, total, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if total != 24 {
		t.Errorf("total = %d, want 24", total)
	}
	if dist["Italian"] != 6 {
		t.Errorf("Italian = %d, want 6", dist["Italian"])
	}
	if dist["Mexican"] != 3 {
		t.Errorf("Mexican = %d, want 3", dist["Mexican"])
	}
}
