package error

import (
	"errors"
	"net/http"

	"squadhealth/internal/healthcheck"
)

type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}

}
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalServer(err.Error())
}

// FromDomain 將 healthcheck 的 sentinel error 轉成對應的 HTTP 錯誤
func FromDomain(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, healthcheck.ErrNotFound):
		return NotFound(err.Error())
	case errors.Is(err, healthcheck.ErrHierarchyCycleDetected):
		return HierarchyCycleDetected(err.Error())
	case errors.Is(err, healthcheck.ErrHierarchyIntegrity):
		return HierarchyIntegrity(err.Error())
	case errors.Is(err, healthcheck.ErrPermissionDenied):
		return PermissionDenied(err.Error())
	case errors.Is(err, healthcheck.ErrInvalidSession):
		return InvalidSubmission(err.Error())
	case errors.Is(err, healthcheck.ErrInvalidConfiguration):
		return InvalidSetting(err.Error())
	default:
		return InternalServer(err.Error())
	}
}

// ✅ 用戶端錯誤 (400 系列)
func ValidateErr(errorDesc string) *Error {
	errCode := BAD_REQUEST_BODY
	return New(http.StatusBadRequest, errCode, "bad-request/body", errorDesc)
}
func ValidatePathParamsErr(errorDesc string) *Error {
	errCode := BAD_REQUEST_PARAMS
	return New(http.StatusBadRequest, errCode, "bad-request/params", errorDesc)
}

func InvalidSubmission(errorDesc string) *Error {
	return New(http.StatusBadRequest, INVALID_SUBMISSION, "invalid-submission", errorDesc)
}

func InvalidSetting(errorDesc string) *Error {
	return New(http.StatusBadRequest, INVALID_SETTING, "invalid-setting", errorDesc)
}

// 提交次數限制器 (redis) 無法使用
func RateLimiterUnavailable(desc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "rate-limiter-unavailable", desc)
}

// ✅ 伺服器內部錯誤 (500 系列)
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error", errorDesc)
}

func DatabaseError(errorDesc string) *Error {
	return New(http.StatusInternalServerError, DATABASE_ERROR, "database-error", errorDesc)
}

func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}

// ✅ 外部 API 錯誤 (502, 504)
func ExternalRequestError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_REQUEST_ERROR, "external-request-failed", errorDesc)
}

func ExternalResponseFormatError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_RESPONSE_FORMAT_ERROR, "external-response-invalid", errorDesc)
}

func GatewayTimeout(errorDesc string) *Error {
	return New(http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout", errorDesc)
}

// ✅ 用戶請求錯誤 (400 系列)
func BadRequest(errorDesc string, errorCode ...int) *Error {
	errCode := BAD_REQUEST_BODY
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusBadRequest, errCode, "bad-request", errorDesc)
}
func BadRequestBody(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request-body", errorDesc)
}

func BadRequestParams(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request-params", errorDesc)
}

func BadRequestHeaders(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_HEADERS, "bad-request-headers", errorDesc)
}

// ✅ 權限錯誤 (401, 403)
func Unauthorized(errorDesc string, errorCode ...int) *Error {
	errCode := UNAUTHORIZED
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusUnauthorized, errCode, "unauthorized", errorDesc)
}

func InvalidToken(errorDesc string) *Error {
	return New(http.StatusUnauthorized, INVALID_TOKEN, "invalid-token", errorDesc)
}

func RateLimitExceeded(errorDesc string) *Error {
	return New(http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED, "rate-limit-exceeded", errorDesc)
}

func Forbidden(errorDesc string, errorCode ...int) *Error {
	errCode := FORBIDDEN
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusForbidden, errCode, "forbidden", errorDesc)
}

func PermissionDenied(errorDesc string) *Error {
	return New(http.StatusForbidden, PERMISSION_DENIED, "permission-denied", errorDesc)
}

// ✅ 資源找不到 (404)
func NotFound(errorDesc string, errorCode ...int) *Error {
	errCode := NOT_FOUND
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusNotFound, errCode, "not-found", errorDesc)
}

func NoData(errorDesc string) *Error {
	return New(http.StatusNotFound, NO_DATA, "no-data", errorDesc)
}

// ✅ 狀態衝突 (409)
func Conflict(errorDesc string) *Error {
	return New(http.StatusConflict, CONFLICT, "conflict", errorDesc)
}

func HierarchyCycleDetected(errorDesc string) *Error {
	return New(http.StatusConflict, HIERARCHY_CYCLE_DETECTED, "hierarchy-cycle-detected", errorDesc)
}

func HierarchyIntegrity(errorDesc string) *Error {
	return New(http.StatusConflict, HIERARCHY_INTEGRITY, "hierarchy-integrity", errorDesc)
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}
func (e *Error) ErrorDesc() string {
	return e.errorDesc
}
func (e *Error) Error() string {
	return e.errorMsg
}
func MapHttpStatusToError(status int, desc string) *Error {
	switch status {
	case http.StatusBadRequest:
		return BadRequest(desc)
	case http.StatusUnauthorized:
		return Unauthorized(desc)
	case http.StatusForbidden:
		return Forbidden(desc)
	case http.StatusNotFound:
		return NotFound(desc)
	case http.StatusConflict:
		return Conflict(desc)
	case http.StatusTooManyRequests:
		return RateLimitExceeded(desc)
	case http.StatusInternalServerError:
		return InternalServer(desc)
	case http.StatusServiceUnavailable:
		return ServiceUnavailable(desc)
	case http.StatusGatewayTimeout:
		return GatewayTimeout(desc)
	default:
		return InternalServer(desc)
	}
}
