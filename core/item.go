package core

import "github.com/rushteam/recipekit/pkg/utils"

// Item 是查询结果的统一承载结构：分数、元信息、标签。
// Labels 用于解释结果来源（哪个算法、哪个簇、什么度量）；Score 用于排序决策。
type Item struct {
	ID     int     // 菜谱 id
	Name   string  // 菜谱名（便于外部层直接渲染）
	Score  float64 // 预测评分 / 相似度 / 置信度，语义由产出组件决定
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id int) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
