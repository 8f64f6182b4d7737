package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/recipekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是结果过滤 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// 表达式编译一次后可对任意多个结果 Item 求值，线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.category == "dairy" / label.source != "collaborative"
//   - 数值：item.score > 0.3 / item.score >= 0.5
//   - 逻辑：label.category == "grain" && item.score > 0.2
//   - 包含：label.category.contains("protein")
//
// 注意：访问不存在的 label key 会报错，用 label.key != null 检查存在性。
type Eval struct {
	expr string
	prg  cel.Program
}

// NewEval 编译一个 DSL 表达式。空表达式合法，对所有 Item 恒为 true。
func NewEval(expr string) (*Eval, error) {
	e := &Eval{expr: expr}
	if expr == "" {
		return e, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	e.prg = prg
	return e, nil
}

// Matches 对单个结果 Item 求值，返回布尔结果。
func (e *Eval) Matches(item *core.Item) (bool, error) {
	if e.prg == nil {
		return true, nil
	}

	out, _, err := e.prg.Eval(buildInput(item))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item) map[string]any {
	labels := make(map[string]any, len(item.Labels))
	labelAccessor := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = map[string]any{
			"value":  v.Value,
			"source": v.Source,
		}
		// label.category 直接取 value，兼容最常用的写法
		labelAccessor[k] = v.Value
	}

	return map[string]any{
		"item": map[string]any{
			"id":     item.ID,
			"name":   item.Name,
			"score":  item.Score,
			"meta":   item.Meta,
			"labels": labels,
		},
		"label": labelAccessor,
	}
}
