package filter

import (
	"context"

	"github.com/rushteam/recipekit/core"
)

// Filter 是结果过滤器的抽象接口，用于判断一个结果 Item 是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, item *core.Item) (bool, error)
}

// Apply 依次应用多个过滤器；任何一个过滤器返回 true，该结果就会被移除。
// 过滤器自身出错时跳过该过滤器，不中断整个查询。
func Apply(ctx context.Context, items []*core.Item, filters ...Filter) []*core.Item {
	if len(filters) == 0 || len(items) == 0 {
		return items
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		keep := true
		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, item)
			if err != nil {
				continue
			}
			if ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
