package response

import (
	"errors"
	"net/http"

	cErr "squadhealth/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// Response 所有 JSON API 的外層格式
type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

const (
	dataKey    = "response.data"
	messageKey = "response.message"
	rawKey     = "response.raw"
)

// Success / Create 只把資料放進 context，實際輸出由 Response middleware 負責。
// data 為 gin.H 且帶 "message" 時會取代預設訊息。
func Success(c *gin.Context, data any) {
	stash(c, data, "Request Success")
}

func Create(c *gin.Context, data any) {
	stash(c, data, "Create Success")
}

// Raw 標記 handler 已自行寫出內容 (檔案下載、後端轉傳)；preview 只用於記錄
func Raw(c *gin.Context, preview any) {
	c.Set(rawKey, true)
	c.Set(dataKey, preview)
}

func IsRaw(c *gin.Context) bool {
	return c.GetBool(rawKey)
}

// Payload 取回 handler 放入的資料與訊息
func Payload(c *gin.Context) (data any, message string) {
	data, _ = c.Get(dataKey)
	message = c.GetString(messageKey)
	if message == "" {
		message = "Request Success"
	}
	return data, message
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, Response{
		RequestID:   requestID,
		Code:        errorCode,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, requestID string, err error) {
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), appErr.Error(), appErr.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
}

func stash(c *gin.Context, data any, message string) {
	if h, ok := data.(gin.H); ok {
		if msg, ok := h["message"].(string); ok && msg != "" {
			message = msg
			delete(h, "message")
		}
	}
	c.Set(dataKey, data)
	c.Set(messageKey, message)
	c.Abort()
}
