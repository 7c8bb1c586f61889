package request

import (
	"errors"

	cErr "squadhealth/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator DTO 可以針對 "欄位.規則" 提供自訂錯誤訊息
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

// Lookup 找出第一個有自訂訊息的驗證失敗，沒有就回傳 false
func Lookup(req any, err error) (string, bool) {
	v, ok := req.(Validator)
	if !ok {
		return "", false
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "", false
	}
	messages := v.GetMessages()
	for _, fe := range fieldErrs {
		if message, exist := messages[fe.StructField()+"."+fe.Tag()]; exist {
			return message, true
		}
	}
	return "", false
}

// GetError 自訂訊息優先，其餘交給 fallback
func GetError(req any, err error, fallback func() string) *cErr.Error {
	if message, ok := Lookup(req, err); ok {
		return cErr.ValidateErr(message)
	}
	return cErr.ValidateErr(fallback())
}
