// Package recipekit 是一个菜谱发现分析引擎（Recipe Discovery Kit）。
//
// 设计要点：
// - Dataset-first: 五个算法组件共享同一份不可变数据目录，互不依赖
// - 确定性: 聚类初始化、排序平局、置信度计算全部有固定的裁决规则
// - Build-then-swap: 模型旁路构建后原子发布，查询永远看不到半成品
package recipekit

import (
	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/dataset"
	"github.com/rushteam/recipekit/engine"
)

// 轻量 facade：便于用户直接 import "recipekit" 使用核心抽象。
type Engine = engine.Engine
type Config = engine.Config
type Dataset = core.Dataset
type Catalog = dataset.Catalog
type Item = core.Item

// NewEngine 用数据集和配置构造引擎，cfg 为 nil 时取默认配置。
func NewEngine(ds core.Dataset, cfg *engine.Config) *engine.Engine {
	return engine.New(ds, cfg)
}

// NewSampleDataset 构建内置样例目录的数据集，便于上手与演示。
func NewSampleDataset() (core.Dataset, error) {
	return dataset.NewMemoryDataset(dataset.SampleCatalog())
}
