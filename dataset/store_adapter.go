package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/rushteam/recipekit/core"
)

// 目录在 KV 后端的键布局。
// 食材/菜谱/边界为普通 key，评分矩阵按用户分字段放在 Hash 里，
// 单个用户的评分可独立读写，整表加载用 HGetAll。
const (
	keyIngredients = "recipekit:catalog:ingredients"
	keyRecipes     = "recipekit:catalog:recipes"
	keyBounds      = "recipekit:catalog:bounds"
	keyRatings     = "recipekit:catalog:ratings"
)

// StoreAdapter 负责目录在 core.KeyValueStore 后端的持久化与恢复。
// 典型用法：离线任务 Save 一份目录快照到 Redis，服务启动时 Load 后构建数据集。
type StoreAdapter struct {
	kv core.KeyValueStore
}

func NewStoreAdapter(kv core.KeyValueStore) *StoreAdapter {
	return &StoreAdapter{kv: kv}
}

// Save 将目录快照写入后端。评分按用户逐字段写入 Hash。
func (a *StoreAdapter) Save(ctx context.Context, c *Catalog) error {
	if c == nil {
		return core.ValidationError(core.ModuleStore, "catalog is nil")
	}

	ings, err := json.Marshal(c.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	recipes, err := json.Marshal(c.Recipes)
	if err != nil {
		return fmt.Errorf("marshal recipes: %w", err)
	}

	kvs := map[string][]byte{
		keyIngredients: ings,
		keyRecipes:     recipes,
	}
	if c.Bounds != nil {
		bounds, err := json.Marshal(c.Bounds)
		if err != nil {
			return fmt.Errorf("marshal bounds: %w", err)
		}
		kvs[keyBounds] = bounds
	}
	if err := a.kv.BatchSet(ctx, kvs); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	for _, spec := range c.Ratings {
		vec, err := json.Marshal(spec.Ratings)
		if err != nil {
			return fmt.Errorf("marshal ratings of user %d: %w", spec.UserID, err)
		}
		field := strconv.Itoa(spec.UserID)
		if err := a.kv.HSet(ctx, keyRatings, field, vec); err != nil {
			return fmt.Errorf("save ratings of user %d: %w", spec.UserID, err)
		}
	}
	return nil
}

// Load 从后端恢复目录快照。后端没有快照时返回 core.ErrStoreNotFound。
func (a *StoreAdapter) Load(ctx context.Context) (*Catalog, error) {
	ings, err := a.kv.Get(ctx, keyIngredients)
	if err != nil {
		return nil, err
	}
	recipes, err := a.kv.Get(ctx, keyRecipes)
	if err != nil {
		return nil, err
	}

	c := &Catalog{}
	if err := json.Unmarshal(ings, &c.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal(recipes, &c.Recipes); err != nil {
		return nil, fmt.Errorf("unmarshal recipes: %w", err)
	}

	bounds, err := a.kv.Get(ctx, keyBounds)
	switch {
	case err == nil:
		var b BoundsSpec
		if err := json.Unmarshal(bounds, &b); err != nil {
			return nil, fmt.Errorf("unmarshal bounds: %w", err)
		}
		c.Bounds = &b
	case core.IsStoreNotFound(err):
		// 未保存边界时沿用默认 [1,5]
	default:
		return nil, err
	}

	fields, err := a.kv.HGetAll(ctx, keyRatings)
	if err != nil {
		return nil, err
	}
	for field, raw := range fields {
		uid, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("ratings hash has non-numeric field %q", field)
		}
		var vec map[int]float64
		if err := json.Unmarshal(raw, &vec); err != nil {
			return nil, fmt.Errorf("unmarshal ratings of user %d: %w", uid, err)
		}
		c.Ratings = append(c.Ratings, RatingSpec{UserID: uid, Ratings: vec})
	}
	// HGetAll 的遍历顺序不确定，恢复为稳定的用户序
	sort.Slice(c.Ratings, func(i, j int) bool { return c.Ratings[i].UserID < c.Ratings[j].UserID })

	return c, nil
}

// LoadRatings 只恢复单个用户的评分向量，用于增量查看。
func (a *StoreAdapter) LoadRatings(ctx context.Context, userID int) (map[int]float64, error) {
	raw, err := a.kv.HGet(ctx, keyRatings, strconv.Itoa(userID))
	if err != nil {
		return nil, err
	}
	var vec map[int]float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, fmt.Errorf("unmarshal ratings of user %d: %w", userID, err)
	}
	return vec, nil
}
