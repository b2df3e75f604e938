package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Embedding 错误：UNAVAILABLE, INCONSISTENT_DATA, NOT_EMBEDDED
//   - Catalog 错误：NOT_FOUND, NOT_SUPPORTED
//   - Engine 错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "NOT_EMBEDDED", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "embedding", "catalog", "engine"）
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
	ErrorCodeUnavailable  = "UNAVAILABLE"       // 资源不可用（矩阵/索引缺失或不可读）
	ErrorCodeInconsistent = "INCONSISTENT_DATA" // 索引映射越界或重复（加载期致命）
	ErrorCodeNotEmbedded  = "NOT_EMBEDDED"      // 电影没有 Embedding 行（可恢复）
	ErrorCodeNotFound     = "NOT_FOUND"         // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED"     // 操作不支持
	ErrorCodeInvalidInput = "INVALID_INPUT"     // 输入无效
)

// 模块名称常量
const (
	ModuleEmbedding = "embedding" // Embedding 仓库模块
	ModuleCatalog   = "catalog"   // 目录/交互存储模块
	ModuleEngine    = "engine"    // 推荐编排模块
)

// IsUnavailable 检查错误是否为 UNAVAILABLE（Embedding 矩阵或索引缺失）。
// 对任何推荐/相似度调用都是致命错误；重试属于加载方的职责，引擎内部不重试。
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsInconsistent 检查错误是否为 INCONSISTENT_DATA
func IsInconsistent(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInconsistent
	}
	return false
}

// IsNotEmbedded 检查错误是否为 NOT_EMBEDDED。
// 调用方应视为"该物品不支持此功能"，而非系统故障。
func IsNotEmbedded(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotEmbedded
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}
