package nutrition

import (
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/dataset"
)

func sampleEstimator(t *testing.T) *Estimator {
	t.Helper()
	ds, err := dataset.NewMemoryDataset(dataset.SampleCatalog())
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return New(ds)
}

func TestEstimateGrilledSalmon(t *testing.T) {
	e := sampleEstimator(t)

	est, err := e.Estimate(15)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Recipe != "Grilled Salmon" {
		t.Errorf("recipe = %q", est.Recipe)
	}

	// salmon + olive oil 有营养数据，lemon 和 herbs 没有
	if !reflect.DeepEqual(est.Covered, []string{"salmon", "olive oil"}) {
		t.Errorf("covered = %v", est.Covered)
	}
	if !reflect.DeepEqual(est.Missing, []string{"lemon", "herbs"}) {
		t.Errorf("missing = %v", est.Missing)
	}

	want := core.Nutrition{25, 0, 113, 1090, 0}
	for d := 0; d < core.NutrientDims; d++ {
		if math.Abs(est.Totals[d]-want[d]) > 1e-9 {
			t.Errorf("totals[%s] = %v, want %v", core.NutrientNames[d], est.Totals[d], want[d])
		}
	}
	if math.Abs(est.Coverage-0.5) > 1e-12 {
		t.Errorf("coverage = %v, want 0.5", est.Coverage)
	}
	if est.Message != "" {
		t.Errorf("message = %q, want empty", est.Message)
	}
}

func TestEstimateNoCoverage(t *testing.T) {
	e := sampleEstimator(t)

	// Pad Thai 的食材都不在营养目录里
	est, err := e.Estimate(7)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(est.Covered) != 0 || est.Coverage != 0 {
		t.Errorf("covered = %v, coverage = %v", est.Covered, est.Coverage)
	}
	if est.Message == "" {
		t.Error("zero coverage should carry an explanatory message")
	}
	if est.Totals != (core.Nutrition{}) {
		t.Errorf("totals = %v, want zeros", est.Totals)
	}
}

func TestEstimateUnknownRecipe(t *testing.T) {
	e := sampleEstimator(t)

	if _, err := e.Estimate(999); !core.IsNotFound(err) {
		t.Errorf("unknown recipe should be NOT_FOUND, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	e := sampleEstimator(t)

	ests, err := e.Compare([]int{15, 8})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(ests) != 2 || ests[0].RecipeID != 15 || ests[1].RecipeID != 8 {
		t.Errorf("ests = %+v", ests)
	}

	if _, err := e.Compare([]int{15}); !core.IsValidation(err) {
		t.Errorf("single-recipe comparison should be VALIDATION, got %v", err)
	}
	if _, err := e.Compare([]int{15, 999}); !core.IsNotFound(err) {
		t.Errorf("unknown recipe should be NOT_FOUND, got %v", err)
	}
}
