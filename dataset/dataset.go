package dataset

import (
	"fmt"
	"sort"

	"github.com/rushteam/recipekit/core"
)

// MemoryDataset 是 core.Dataset 的内存实现。
// 构建时完成全部校验与索引，之后完全只读，可被任意多个组件并发访问。
type MemoryDataset struct {
	ingredients []*core.Ingredient          // 目录顺序
	ingredientM map[string]*core.Ingredient // 归一化名 -> 食材
	recipes     []*core.Recipe              // id 升序
	recipeM     map[int]*core.Recipe
	ratings     map[int]map[int]float64 // user -> recipe -> rating
	users       []int                   // id 升序
	vocab       []string                // 菜谱食材词表，升序去重
	vocabSet    map[string]struct{}
	bounds      core.RatingBounds
}

var _ core.Dataset = (*MemoryDataset)(nil)

// NewMemoryDataset 从 Catalog 构建数据集。
// 校验是构建时一次性的：重复食材名、非法营养/特征向量、重复菜谱 id、
// 越界评分、引用不存在菜谱的评分，任何一项失败都拒绝整个目录。
func NewMemoryDataset(c *Catalog) (*MemoryDataset, error) {
	if c == nil {
		return nil, core.ValidationError(core.ModuleDataset, "catalog is nil")
	}

	ds := &MemoryDataset{
		ingredientM: make(map[string]*core.Ingredient, len(c.Ingredients)),
		recipeM:     make(map[int]*core.Recipe, len(c.Recipes)),
		ratings:     make(map[int]map[int]float64, len(c.Ratings)),
		vocabSet:    make(map[string]struct{}),
		bounds:      core.DefaultRatingBounds,
	}

	if c.Bounds != nil {
		if c.Bounds.Min >= c.Bounds.Max {
			return nil, core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("rating bounds min %v must be less than max %v", c.Bounds.Min, c.Bounds.Max))
		}
		ds.bounds = core.RatingBounds{Min: c.Bounds.Min, Max: c.Bounds.Max}
	}

	if err := ds.buildIngredients(c.Ingredients); err != nil {
		return nil, err
	}
	if err := ds.buildRecipes(c.Recipes); err != nil {
		return nil, err
	}
	if err := ds.buildRatings(c.Ratings); err != nil {
		return nil, err
	}
	return ds, nil
}

func (ds *MemoryDataset) buildIngredients(specs []IngredientSpec) error {
	for _, spec := range specs {
		name := core.NormalizeName(spec.Name)
		if name == "" {
			return core.ValidationError(core.ModuleDataset, "ingredient name must not be empty")
		}
		if _, exists := ds.ingredientM[name]; exists {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("duplicate ingredient %q", name))
		}

		nut, err := core.NutritionFromSlice(core.ModuleDataset, spec.Nutrition)
		if err != nil {
			return err
		}

		ing := &core.Ingredient{
			Name:      name,
			Nutrition: nut,
			Category:  core.NormalizeName(spec.Category),
		}
		ds.ingredients = append(ds.ingredients, ing)
		ds.ingredientM[name] = ing
	}
	return nil
}

func (ds *MemoryDataset) buildRecipes(specs []RecipeSpec) error {
	for _, spec := range specs {
		if spec.ID <= 0 {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("recipe id must be positive, got %d", spec.ID))
		}
		if _, exists := ds.recipeM[spec.ID]; exists {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("duplicate recipe id %d", spec.ID))
		}
		if spec.Name == "" {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("recipe %d has no name", spec.ID))
		}

		feats, err := core.FeaturesFromSlice(core.ModuleDataset, spec.Features)
		if err != nil {
			return err
		}

		ings := core.NormalizeNames(spec.Ingredients)
		if len(ings) == 0 {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("recipe %d has no ingredients", spec.ID))
		}

		r := &core.Recipe{
			ID:          spec.ID,
			Name:        spec.Name,
			Cuisine:     spec.Cuisine,
			Difficulty:  spec.Difficulty,
			Ingredients: ings,
			Features:    feats,
		}
		ds.recipes = append(ds.recipes, r)
		ds.recipeM[spec.ID] = r
		for _, ing := range ings {
			ds.vocabSet[ing] = struct{}{}
		}
	}

	sort.Slice(ds.recipes, func(i, j int) bool { return ds.recipes[i].ID < ds.recipes[j].ID })

	ds.vocab = make([]string, 0, len(ds.vocabSet))
	for ing := range ds.vocabSet {
		ds.vocab = append(ds.vocab, ing)
	}
	sort.Strings(ds.vocab)
	return nil
}

func (ds *MemoryDataset) buildRatings(specs []RatingSpec) error {
	for _, spec := range specs {
		if spec.UserID <= 0 {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("user id must be positive, got %d", spec.UserID))
		}
		if _, exists := ds.ratings[spec.UserID]; exists {
			return core.ValidationError(core.ModuleDataset,
				fmt.Sprintf("duplicate user id %d", spec.UserID))
		}

		vec := make(map[int]float64, len(spec.Ratings))
		for rid, rating := range spec.Ratings {
			if _, ok := ds.recipeM[rid]; !ok {
				return core.ValidationError(core.ModuleDataset,
					fmt.Sprintf("user %d rates unknown recipe %d", spec.UserID, rid))
			}
			if !ds.bounds.Contains(rating) {
				return core.ValidationError(core.ModuleDataset,
					fmt.Sprintf("user %d rating %v for recipe %d outside [%v,%v]",
						spec.UserID, rating, rid, ds.bounds.Min, ds.bounds.Max))
			}
			vec[rid] = rating
		}

		ds.ratings[spec.UserID] = vec
		ds.users = append(ds.users, spec.UserID)
	}
	sort.Ints(ds.users)
	return nil
}

func (ds *MemoryDataset) GetIngredient(name string) (*core.Ingredient, error) {
	ing, ok := ds.ingredientM[core.NormalizeName(name)]
	if !ok {
		return nil, core.NotFoundError(core.ModuleDataset,
			fmt.Sprintf("ingredient %q not found", name))
	}
	return ing, nil
}

func (ds *MemoryDataset) AllIngredients() []*core.Ingredient {
	return ds.ingredients
}

func (ds *MemoryDataset) GetRecipe(id int) (*core.Recipe, error) {
	r, ok := ds.recipeM[id]
	if !ok {
		return nil, core.NotFoundError(core.ModuleDataset,
			fmt.Sprintf("recipe %d not found", id))
	}
	return r, nil
}

func (ds *MemoryDataset) AllRecipes() []*core.Recipe {
	return ds.recipes
}

func (ds *MemoryDataset) TotalRecipes() int {
	return len(ds.recipes)
}

func (ds *MemoryDataset) AllUsers() []int {
	return ds.users
}

func (ds *MemoryDataset) RatingsForUser(userID int) (map[int]float64, error) {
	vec, ok := ds.ratings[userID]
	if !ok {
		return nil, core.NotFoundError(core.ModuleDataset,
			fmt.Sprintf("user %d not found", userID))
	}
	return vec, nil
}

func (ds *MemoryDataset) CoRatedRecipes(userA, userB int) ([]int, error) {
	ra, err := ds.RatingsForUser(userA)
	if err != nil {
		return nil, err
	}
	rb, err := ds.RatingsForUser(userB)
	if err != nil {
		return nil, err
	}

	var co []int
	for rid := range ra {
		if _, ok := rb[rid]; ok {
			co = append(co, rid)
		}
	}
	sort.Ints(co)
	return co, nil
}

func (ds *MemoryDataset) Vocabulary() []string {
	return ds.vocab
}

func (ds *MemoryDataset) CategoryOf(name string) string {
	ing, ok := ds.ingredientM[core.NormalizeName(name)]
	if !ok || ing.Category == "" {
		return "other"
	}
	return ing.Category
}

func (ds *MemoryDataset) RatingBounds() core.RatingBounds {
	return ds.bounds
}

// InVocabulary 判断归一化后的食材名是否出现在任何菜谱里。
func (ds *MemoryDataset) InVocabulary(name string) bool {
	_, ok := ds.vocabSet[core.NormalizeName(name)]
	return ok
}
