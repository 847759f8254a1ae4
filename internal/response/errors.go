package response

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未认证或权限不足
	Unauthorized ResponseCode = 3
	// 禁止访问
	Forbidden ResponseCode = 4
	// 资源不存在
	NotFound ResponseCode = 5
	// 容量超限（文章数量达到配置上限）
	CapacityExceeded ResponseCode = 6
	// 内部错误（存储层失败，细节只记日志不外露）
	InternalError ResponseCode = 7
)

// HTTPStatus 业务错误码对应的HTTP状态码
func (c ResponseCode) HTTPStatus() int {
	switch c {
	case ParseError, InvalidParameter:
		return 400
	case Unauthorized:
		return 401
	case Forbidden, CapacityExceeded:
		return 403
	case NotFound:
		return 404
	case InternalError:
		return 500
	default:
		return 200
	}
}

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	return e.Msg
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}
