package core

// Dataset 是只读数据目录的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（dataset）实现
//   - 构建完成后不可变：所有算法组件只读，不得修改目录或彼此的派生模型
//   - 注入而非单例：每个算法组件持有一个 Dataset，便于用合成目录做隔离测试
//
// 实现：
//   - dataset.MemoryDataset 实现此接口（内置样例目录或 YAML/JSON 目录）
type Dataset interface {
	// GetIngredient 按归一化名字查找食材；不存在时返回 NOT_FOUND
	GetIngredient(name string) (*Ingredient, error)

	// AllIngredients 返回目录顺序的全部食材（聚类的确定性初始化依赖此顺序）
	AllIngredients() []*Ingredient

	// GetRecipe 按 id 查找菜谱；不存在时返回 NOT_FOUND
	GetRecipe(id int) (*Recipe, error)

	// AllRecipes 返回按 id 升序的全部菜谱
	AllRecipes() []*Recipe

	// TotalRecipes 返回菜谱总数（替代规则的 support 分母）
	TotalRecipes() int

	// AllUsers 返回按 id 升序的全部用户
	AllUsers() []int

	// RatingsForUser 返回用户的评分向量 map[recipeID]rating；
	// 未知用户返回 NOT_FOUND。缺失的 key 表示"未评分"，区别于零分
	RatingsForUser(userID int) (map[int]float64, error)

	// CoRatedRecipes 返回两个用户共同评过分的菜谱 id（升序）
	CoRatedRecipes(userA, userB int) ([]int, error)

	// Vocabulary 返回菜谱食材词表（升序去重），
	// 即菜系分类与替代推荐可识别的全部食材名
	Vocabulary() []string

	// CategoryOf 返回食材类别；词表外或未标注时返回 "other"
	CategoryOf(name string) string

	// RatingBounds 返回目录声明的评分边界
	RatingBounds() RatingBounds
}
