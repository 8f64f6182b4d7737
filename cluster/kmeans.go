// Package cluster 按营养相似度对食材做 k-means 聚类。
//
// 算法要点：
//   - 营养向量先做 z-score 标准化（总体标准差），避免热量维度主导距离
//   - 质心初始化取目录顺序中前 K 个互异的原始向量，完全确定，可复现
//   - 距离平局取更小的质心下标；迭代到分配不再变化或达到上限
//   - 迭代结束后用最终质心再做一次整体分配，保证发布的分配与质心一致，
//     训练集成员重查必然回到训练时的簇
package cluster

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/rushteam/recipekit/core"
)

// 质心标签的平局裁决顺序即 core.NutrientNames 的维度顺序。
var clusterNames = [core.NutrientDims]string{
	"High-Protein Group",
	"High-Carb Group",
	"High-Fat Group",
	"High-Calorie Group",
	"High-Fiber Group",
}

const (
	// DefaultK 是默认簇数
	DefaultK = 4
	// DefaultMaxIterations 是 Lloyd 迭代上限，达到上限不算错误，直接发布当前划分
	DefaultMaxIterations = 100
	// defaultTopSimilar 是 Predict 返回的同簇近邻数量
	defaultTopSimilar = 5
)

// Config 是聚类器配置。零值字段在 Train 时落回默认值。
type Config struct {
	K             int // 簇数
	MaxIterations int // 迭代上限
}

// Info 是单个簇的视图。
type Info struct {
	ID          int      `json:"cluster_id"`
	Name        string   `json:"cluster_name"`
	Count       int      `json:"count"`
	Ingredients []string `json:"ingredients"` // 目录顺序
}

// Prediction 是 Predict 的结果。
type Prediction struct {
	Ingredient         string   `json:"ingredient"`
	ClusterID          int      `json:"cluster_id"`
	ClusterName        string   `json:"cluster_name"`
	SimilarIngredients []string `json:"similar_ingredients"` // 距离升序，平局按名字
}

// model 是训练产物，发布后不可变。
type model struct {
	k           int
	centroids   [][]float64 // 标准化空间
	names       []string
	mean        [core.NutrientDims]float64
	std         [core.NutrientDims]float64
	scaled      [][]float64 // 与 ingredients 对齐
	ingredients []*core.Ingredient
	assignments []int          // 与 ingredients 对齐
	byName      map[string]int // 食材名 -> ingredients 下标
}

// Clusterer 是食材聚类器。Train 是唯一写者，查询只读已发布的 model。
type Clusterer struct {
	core.Lifecycle

	ds    core.Dataset
	cfg   Config
	model atomic.Pointer[model]
}

func New(ds core.Dataset, cfg Config) *Clusterer {
	return &Clusterer{ds: ds, cfg: cfg}
}

// Train 执行一次完整的 k-means 训练并原子发布模型。
// 目录中互异向量不足 K 个时，有效簇数降为互异向量数。
func (c *Clusterer) Train(ctx context.Context) error {
	k := c.cfg.K
	if k <= 0 {
		k = DefaultK
	}
	maxIter := c.cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	ings := c.ds.AllIngredients()
	if len(ings) == 0 {
		return core.ValidationError(core.ModuleCluster, "catalogue has no ingredients to cluster")
	}

	c.BeginTraining()

	m := &model{ingredients: ings, byName: make(map[string]int, len(ings))}
	for i, ing := range ings {
		m.byName[ing.Name] = i
	}

	m.mean, m.std = standardization(ings)
	m.scaled = make([][]float64, len(ings))
	for i, ing := range ings {
		m.scaled[i] = scale(ing.Nutrition, m.mean, m.std)
	}

	m.centroids = initialCentroids(ings, m.scaled, k)
	m.k = len(m.centroids)

	m.assignments = assign(m.scaled, m.centroids)
	for iter := 0; iter < maxIter; iter++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next := recompute(m.scaled, m.assignments, m.centroids)
		na := assign(m.scaled, next)
		m.centroids = next
		if equalAssignments(na, m.assignments) {
			break
		}
		m.assignments = na
	}
	// 最终一致性分配：发布的分配必须由发布的质心推出
	m.assignments = assign(m.scaled, m.centroids)

	m.names = make([]string, m.k)
	for ci, cent := range m.centroids {
		m.names[ci] = clusterNames[dominantDim(cent)]
	}

	c.model.Store(m)
	c.Publish()
	return nil
}

// Clusters 返回全部簇的视图，簇 id 升序，成员按目录顺序。
func (c *Clusterer) Clusters() ([]Info, error) {
	if err := c.RequireReady(core.ModuleCluster); err != nil {
		return nil, err
	}
	m := c.model.Load()

	out := make([]Info, m.k)
	for ci := 0; ci < m.k; ci++ {
		out[ci] = Info{ID: ci, Name: m.names[ci]}
	}
	for i, ci := range m.assignments {
		out[ci].Ingredients = append(out[ci].Ingredients, m.ingredients[i].Name)
		out[ci].Count++
	}
	return out, nil
}

// Predict 返回查询向量的最近簇和同簇 top-5 近邻（距离升序，平局按名字）。
// 查询向量与训练集成员自身的距离为 0，成员总是出现在自己的近邻列表里。
// nutrition 为空时按 name 查目录取向量。
func (c *Clusterer) Predict(name string, nutrition []float64) (*Prediction, error) {
	if err := c.RequireReady(core.ModuleCluster); err != nil {
		return nil, err
	}
	m := c.model.Load()

	normalized := core.NormalizeName(name)
	var vec core.Nutrition
	if len(nutrition) == 0 {
		ing, err := c.ds.GetIngredient(normalized)
		if err != nil {
			return nil, err
		}
		vec = ing.Nutrition
	} else {
		var err error
		vec, err = core.NutritionFromSlice(core.ModuleCluster, nutrition)
		if err != nil {
			return nil, err
		}
	}

	sv := scale(vec, m.mean, m.std)
	best := nearestCentroid(sv, m.centroids)

	type neighbor struct {
		dist float64
		name string
	}
	var neighbors []neighbor
	for i, ci := range m.assignments {
		if ci != best {
			continue
		}
		neighbors = append(neighbors, neighbor{
			dist: math.Sqrt(sqDist(sv, m.scaled[i])),
			name: m.ingredients[i].Name,
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].dist != neighbors[j].dist {
			return neighbors[i].dist < neighbors[j].dist
		}
		return neighbors[i].name < neighbors[j].name
	})
	if len(neighbors) > defaultTopSimilar {
		neighbors = neighbors[:defaultTopSimilar]
	}

	similar := make([]string, len(neighbors))
	for i, n := range neighbors {
		similar[i] = n.name
	}
	return &Prediction{
		Ingredient:         normalized,
		ClusterID:          best,
		ClusterName:        m.names[best],
		SimilarIngredients: similar,
	}, nil
}

// AssignmentOf 返回训练集成员的簇 id，非成员返回 NOT_FOUND。
func (c *Clusterer) AssignmentOf(name string) (int, error) {
	if err := c.RequireReady(core.ModuleCluster); err != nil {
		return 0, err
	}
	m := c.model.Load()

	idx, ok := m.byName[core.NormalizeName(name)]
	if !ok {
		return 0, core.NotFoundError(core.ModuleCluster,
			fmt.Sprintf("ingredient %q was not part of training", name))
	}
	return m.assignments[idx], nil
}

// standardization 计算每个营养维度的均值与总体标准差；零方差维度的标准差取 1。
func standardization(ings []*core.Ingredient) (mean, std [core.NutrientDims]float64) {
	n := float64(len(ings))
	for d := 0; d < core.NutrientDims; d++ {
		var sum float64
		for _, ing := range ings {
			sum += ing.Nutrition[d]
		}
		mean[d] = sum / n

		var varsum float64
		for _, ing := range ings {
			diff := ing.Nutrition[d] - mean[d]
			varsum += diff * diff
		}
		std[d] = math.Sqrt(varsum / n)
		if std[d] == 0 {
			std[d] = 1
		}
	}
	return mean, std
}

func scale(v core.Nutrition, mean, std [core.NutrientDims]float64) []float64 {
	out := make([]float64, core.NutrientDims)
	for d := 0; d < core.NutrientDims; d++ {
		out[d] = (v[d] - mean[d]) / std[d]
	}
	return out
}

// initialCentroids 取目录顺序中前 K 个互异原始向量对应的标准化向量。
func initialCentroids(ings []*core.Ingredient, scaled [][]float64, k int) [][]float64 {
	seen := make(map[core.Nutrition]struct{}, k)
	var cents [][]float64
	for i, ing := range ings {
		if _, ok := seen[ing.Nutrition]; ok {
			continue
		}
		seen[ing.Nutrition] = struct{}{}
		cent := make([]float64, core.NutrientDims)
		copy(cent, scaled[i])
		cents = append(cents, cent)
		if len(cents) == k {
			break
		}
	}
	return cents
}

// assign 给每个向量找最近质心，严格小于保证平局落在更小下标。
func assign(scaled [][]float64, cents [][]float64) []int {
	out := make([]int, len(scaled))
	for i, v := range scaled {
		out[i] = nearestCentroid(v, cents)
	}
	return out
}

func nearestCentroid(v []float64, cents [][]float64) int {
	best, bd := 0, math.Inf(1)
	for ci, cent := range cents {
		if d := sqDist(v, cent); d < bd {
			bd, best = d, ci
		}
	}
	return best
}

// recompute 重算质心为成员均值；空簇保留上一轮质心。
func recompute(scaled [][]float64, assignments []int, prev [][]float64) [][]float64 {
	k := len(prev)
	sums := make([][]float64, k)
	counts := make([]int, k)
	for ci := range sums {
		sums[ci] = make([]float64, core.NutrientDims)
	}
	for i, ci := range assignments {
		counts[ci]++
		for d := 0; d < core.NutrientDims; d++ {
			sums[ci][d] += scaled[i][d]
		}
	}

	next := make([][]float64, k)
	for ci := 0; ci < k; ci++ {
		if counts[ci] == 0 {
			cent := make([]float64, core.NutrientDims)
			copy(cent, prev[ci])
			next[ci] = cent
			continue
		}
		cent := make([]float64, core.NutrientDims)
		for d := 0; d < core.NutrientDims; d++ {
			cent[d] = sums[ci][d] / float64(counts[ci])
		}
		next[ci] = cent
	}
	return next
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for d := 0; d < core.NutrientDims; d++ {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}

func equalAssignments(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dominantDim 返回质心在标准化空间的主导维度，平局取更小的维度下标。
func dominantDim(cent []float64) int {
	best := 0
	for d := 1; d < core.NutrientDims; d++ {
		if cent[d] > cent[best] {
			best = d
		}
	}
	return best
}
