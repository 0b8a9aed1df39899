package advisory

import (
	"context"
	"errors"
	"fmt"
)

// NoOverviewText 成功响应中没有生成文本时展示的内容
const NoOverviewText = "No overview available."

// ErrUnexpectedResponse 成功响应的结构无法识别
var ErrUnexpectedResponse = errors.New("unexpected response from the advisory service")

// StatusError 上游返回非 2xx 状态
type StatusError struct {
	Model      string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model %s: status %d: %s", e.Model, e.StatusCode, e.Body)
}

// ServiceError 上游在成功响应中报告的错误
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "service error: " + e.Message
}

// AttemptError 某个模型请求在拿到状态码之前失败（网络、SDK）
type AttemptError struct {
	Model string
	Err   error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// fallbackable 该错误是否应继续尝试下一个模型
func fallbackable(err error) bool {
	var se *StatusError
	var ae *AttemptError
	return errors.As(err, &se) || errors.As(err, &ae)
}

// Describe 把错误转为可直接展示的文本
func Describe(err error) string {
	var se *StatusError
	var sve *ServiceError
	var ae *AttemptError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "Error: request canceled before the advisory service answered."
	case errors.Is(err, context.DeadlineExceeded):
		return "Error: the advisory service did not answer in time."
	case errors.As(err, &se):
		return fmt.Sprintf("API Error (%d): %s", se.StatusCode, se.Body)
	case errors.As(err, &sve):
		return "API Error: " + sve.Message
	case errors.Is(err, ErrUnexpectedResponse):
		return "Error: " + err.Error() + "."
	case errors.As(err, &ae):
		return fmt.Sprintf("Error: %v. Check network access to the generative language service and that the API key is valid.", ae.Err)
	default:
		return "Error: " + err.Error()
	}
}
