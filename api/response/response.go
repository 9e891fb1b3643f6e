/*
Package response - API 层统一响应处理

HTTP 状态码映射放在 API 层，不污染领域层和应用层。错误响应不暴露内部细节，
内部错误统一返回 "internal server error"，真实错误只记录日志。所有错误响应
携带 RequestID 用于日志追踪。

堆栈提取: 优先从实现 shared.Stacker 的领域错误提取"错误发生点"堆栈，
否则在此处捕获"错误处理点"堆栈作为兜底。

响应格式:

	成功: 视图本身，例如 { id: 1, username: "...", email: "..." }
	失败: { success: false, error: "ERROR_CODE", message: "用户可见消息", code: 4xx/5xx, findings: [...], request_id: "..." }
*/
package response

import (
	"net/http"

	"jsonview/domain/shared"
	"jsonview/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RequestIDKey 是 gin context 中保存请求 ID 的键。
const RequestIDKey = "request_id"

// Response 是统一错误响应结构。
type Response struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"` // 错误码，不是错误详情
	Code      int              `json:"code"`            // HTTP 状态码
	Message   string           `json:"message"`         // 用户可见消息
	Findings  []shared.Finding `json:"findings,omitempty"`
	RequestID string           `json:"request_id,omitempty"`
}

// httpStatusMap 错误码到 HTTP 状态码的映射，只在 API 层使用
var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:       http.StatusInternalServerError,
	errors.CodeBadRequest:     http.StatusBadRequest,
	errors.CodeValidation:     http.StatusBadRequest,
	errors.CodeNotFound:       http.StatusNotFound,
	errors.CodeConflict:       http.StatusConflict,
	errors.CodeTooManyRequest: http.StatusTooManyRequests,

	errors.CodeUserNotFound:           http.StatusNotFound,
	errors.CodeConcurrentModification: http.StatusConflict,
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// GetRequestID 从 gin 上下文获取请求 ID
func GetRequestID(c *gin.Context) string {
	return getRequestID(c)
}
