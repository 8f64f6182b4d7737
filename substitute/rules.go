// Package substitute 从食材共现统计中挖掘关联规则，推荐替代食材。
//
// 训练时遍历全部菜谱累计单品出现数与成对共现数，
// 推导 support(X) = 出现数/菜谱总数、confidence(A→B) = 共现数/出现数(A)。
// 替代候选是 confidence > 0 的其他食材，按 confidence 降序排序，
// 平局先比候选的 support 降序，再比名字升序。
package substitute

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/rushteam/recipekit/core"
)

// DefaultTopN 是默认返回条数
const DefaultTopN = 5

// NoSubstitutesMessage 区分"查无替代"与"未知食材"两种结果。
// 外部层对结果做过滤后若截到空集，也复用此消息。
const NoSubstitutesMessage = "no substitutes found"

// Info 是食材在目录中的统计画像。
type Info struct {
	Category  string  `json:"category"`
	AppearsIn int     `json:"appears_in"`
	Frequency float64 `json:"frequency"` // support(X)，[0,1]
}

// Candidate 是单个替代候选。
type Candidate struct {
	Substitute string  `json:"substitute"`
	Confidence float64 `json:"confidence"` // [0,1]
	Support    float64 `json:"support"`    // 候选自身的 support，[0,1]
	Category   string  `json:"category"`
}

// Result 是 SubstitutesFor 的结果。
type Result struct {
	Ingredient  string      `json:"ingredient"`
	Info        Info        `json:"ingredient_info"`
	Substitutes []Candidate `json:"substitutes"`
	Message     string      `json:"message,omitempty"`
}

type ruleModel struct {
	total      int
	occ        map[string]int
	cooc       map[string]map[string]int
	categories map[string]string
}

// Engine 是替代食材推荐器。
type Engine struct {
	core.Lifecycle

	ds    core.Dataset
	model atomic.Pointer[ruleModel]
}

func New(ds core.Dataset) *Engine {
	return &Engine{ds: ds}
}

// Train 扫描全目录构建关联规则表并发布。
func (e *Engine) Train(ctx context.Context) error {
	recipes := e.ds.AllRecipes()
	if len(recipes) == 0 {
		return core.ValidationError(core.ModuleSubstitute, "catalogue has no recipes to mine")
	}

	e.BeginTraining()

	m := &ruleModel{
		total:      len(recipes),
		occ:        make(map[string]int),
		cooc:       make(map[string]map[string]int),
		categories: make(map[string]string),
	}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			m.occ[ing]++
		}
		for _, a := range r.Ingredients {
			for _, b := range r.Ingredients {
				if a == b {
					continue
				}
				if m.cooc[a] == nil {
					m.cooc[a] = make(map[string]int)
				}
				m.cooc[a][b]++
			}
		}
	}
	for ing := range m.occ {
		m.categories[ing] = e.ds.CategoryOf(ing)
	}

	e.model.Store(m)
	e.Publish()
	return nil
}

// SubstitutesFor 返回某食材的替代候选。
// 词表外的食材返回 UNKNOWN_INGREDIENT；
// 已知但没有任何共现伙伴的食材返回空列表加提示消息，不算错误。
func (e *Engine) SubstitutesFor(name string, topN int) (*Result, error) {
	if err := e.RequireReady(core.ModuleSubstitute); err != nil {
		return nil, err
	}
	m := e.model.Load()

	ing := core.NormalizeName(name)
	occ, known := m.occ[ing]
	if !known {
		return nil, core.UnknownIngredientError(core.ModuleSubstitute,
			fmt.Sprintf("ingredient %q is not in the recipe vocabulary", name))
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	res := &Result{
		Ingredient: ing,
		Info: Info{
			Category:  m.categories[ing],
			AppearsIn: occ,
			Frequency: float64(occ) / float64(m.total),
		},
		Substitutes: []Candidate{},
	}

	for other, co := range m.cooc[ing] {
		res.Substitutes = append(res.Substitutes, Candidate{
			Substitute: other,
			Confidence: float64(co) / float64(occ),
			Support:    float64(m.occ[other]) / float64(m.total),
			Category:   m.categories[other],
		})
	}
	sort.Slice(res.Substitutes, func(i, j int) bool {
		a, b := res.Substitutes[i], res.Substitutes[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		return a.Substitute < b.Substitute
	})
	if len(res.Substitutes) > topN {
		res.Substitutes = res.Substitutes[:topN]
	}
	if len(res.Substitutes) == 0 {
		res.Message = NoSubstitutesMessage
	}
	return res, nil
}

// IngredientInfo 单独返回食材画像，词表外返回 UNKNOWN_INGREDIENT。
func (e *Engine) IngredientInfo(name string) (*Info, error) {
	if err := e.RequireReady(core.ModuleSubstitute); err != nil {
		return nil, err
	}
	m := e.model.Load()

	ing := core.NormalizeName(name)
	occ, known := m.occ[ing]
	if !known {
		return nil, core.UnknownIngredientError(core.ModuleSubstitute,
			fmt.Sprintf("ingredient %q is not in the recipe vocabulary", name))
	}
	return &Info{
		Category:  m.categories[ing],
		AppearsIn: occ,
		Frequency: float64(occ) / float64(m.total),
	}, nil
}
