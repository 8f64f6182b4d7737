package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 输入校验：VALIDATION（向量维度错误、非有限数值、越界评分）
//   - 数据查找：NOT_FOUND（未知菜谱/用户）、UNKNOWN_INGREDIENT（词表外食材）
//   - 生命周期：NOT_READY（训练未完成时查询）
//   - 算法无解：NO_MATCH（无可比邻居）、EMPTY_NEIGHBORHOOD（无正相似度邻居）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "VALIDATION"）
	Message string // 错误消息
	Module  string // 模块名称（如 "dataset", "cluster", "cuisine"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeValidation        = "VALIDATION"         // 输入格式/数值非法
	ErrorCodeNotFound          = "NOT_FOUND"          // 菜谱或用户不存在
	ErrorCodeUnknownIngredient = "UNKNOWN_INGREDIENT" // 食材不在词表中
	ErrorCodeNotReady          = "NOT_READY"          // 模型尚未训练完成
	ErrorCodeNoMatch           = "NO_MATCH"           // 查询与训练数据无任何交集
	ErrorCodeEmptyNeighborhood = "EMPTY_NEIGHBORHOOD" // 协同过滤无正相似度邻居
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持（存储后端）
)

// 模块名称常量
const (
	ModuleDataset    = "dataset"    // 数据集模块
	ModuleCluster    = "cluster"    // 食材聚类模块
	ModuleCuisine    = "cuisine"    // 菜系分类模块
	ModuleRecommend  = "recommend"  // 推荐模块
	ModuleSubstitute = "substitute" // 替代食材模块
	ModuleNutrition  = "nutrition"  // 营养估算模块
	ModuleEngine     = "engine"     // 引擎门面
	ModuleStore      = "store"      // KV 存储模块
)

// 构造辅助函数（按错误分类）

// ValidationError 构造输入校验错误
func ValidationError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeValidation, message)
}

// NotFoundError 构造资源不存在错误
func NotFoundError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeNotFound, message)
}

// UnknownIngredientError 构造词表外食材错误
func UnknownIngredientError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeUnknownIngredient, message)
}

// NotReadyError 构造模型未就绪错误
func NotReadyError(module string) *DomainError {
	return NewDomainError(module, ErrorCodeNotReady, module+": model is not ready, call Train first")
}

// NoMatchError 构造无匹配数据错误
func NoMatchError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeNoMatch, message)
}

// EmptyNeighborhoodError 构造空邻域错误
func EmptyNeighborhoodError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeEmptyNeighborhood, message)
}

// 错误检查函数

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsValidation 检查错误是否为 VALIDATION
func IsValidation(err error) bool { return hasCode(err, ErrorCodeValidation) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsUnknownIngredient 检查错误是否为 UNKNOWN_INGREDIENT
func IsUnknownIngredient(err error) bool { return hasCode(err, ErrorCodeUnknownIngredient) }

// IsNotReady 检查错误是否为 NOT_READY
func IsNotReady(err error) bool { return hasCode(err, ErrorCodeNotReady) }

// IsNoMatch 检查错误是否为 NO_MATCH
func IsNoMatch(err error) bool { return hasCode(err, ErrorCodeNoMatch) }

// IsEmptyNeighborhood 检查错误是否为 EMPTY_NEIGHBORHOOD
func IsEmptyNeighborhood(err error) bool { return hasCode(err, ErrorCodeEmptyNeighborhood) }
