package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Describe 把 validator 錯誤轉成以 json 欄位名表示的訊息，一個欄位一行
func Describe(obj any, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Sprintf("Validation error: %s", err.Error())
	}

	var b strings.Builder
	b.WriteString("Validation error:\n")
	for _, fe := range fieldErrs {
		name, rules := describeField(obj, fe.StructField())
		fmt.Fprintf(&b, " - Field %q failed the '%s' validation", name, fe.Tag())
		if fe.Param() != "" {
			fmt.Fprintf(&b, " (%s)", fe.Param())
		}
		if rules != "" {
			fmt.Fprintf(&b, " (rules: %s)", rules)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// describeField 回傳 json 名稱與 binding 規則；dive 進來的巢狀欄位找不到時沿用 struct 欄位名
func describeField(obj any, structField string) (name, rules string) {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return structField, ""
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return structField, ""
	}
	name = structField
	if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
		name = tag
	}
	return name, f.Tag.Get("binding")
}

func ParseObjectID(c *gin.Context, key string) (id primitive.ObjectID, cause error, responseErr error) {
	id, err := primitive.ObjectIDFromHex(c.Param(key))
	if err != nil {
		return primitive.NilObjectID, err, cErr.ValidatePathParamsErr("invalid " + key)
	}
	return id, nil, nil
}

// BindAndValidate 綁定 JSON body；DTO 有自訂訊息 (request.Validator) 時優先使用
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		return err, bindError(req, err)
	}
	return nil, nil
}

// BindQuery 綁定 query string（form tag）
func BindQuery(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		return err, bindError(req, err)
	}
	return nil, nil
}

func bindError(req any, err error) error {
	return request.GetError(req, err, func() string { return Describe(req, err) })
}
