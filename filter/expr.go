package filter

import (
	"context"

	"github.com/rushteam/recipekit/core"
	"github.com/rushteam/recipekit/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的过滤器：表达式为 false 的结果被移除。
// 外部层可以在查询里附带表达式，对推荐/替代结果做标签级筛选，
// 例如 `label.category == "dairy"` 或 `item.score > 0.3`。
type ExprFilter struct {
	eval *dsl.Eval
}

// NewExprFilter 编译表达式并构造过滤器。空表达式恒保留。
func NewExprFilter(expr string) (*ExprFilter, error) {
	eval, err := dsl.NewEval(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{eval: eval}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(_ context.Context, item *core.Item) (bool, error) {
	ok, err := f.eval.Matches(item)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

var _ Filter = (*ExprFilter)(nil)
