package telemetry

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// ApplyTraceAttributes 依 struct 欄位的 `trace:"key[,omitempty]"` tag 寫入 span attributes。
// 巢狀 struct / 指標會遞迴展開，map[string]T 會展開成 key.<mapKey>。
func (t *Trace) ApplyTraceAttributes(span trace.Span, meta any) {
	if span == nil || meta == nil || !span.IsRecording() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("apply trace attributes: %v", r))
		}
	}()
	span.SetAttributes(attributesOf(reflect.ValueOf(meta))...)
}

func attributesOf(val reflect.Value) []attribute.KeyValue {
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	var attrs []attribute.KeyValue
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		key, omitEmpty := parseTraceTag(field.Tag.Get("trace"))
		fieldVal := val.Field(i)
		if !field.IsExported() {
			continue
		}
		if key == "" {
			// 沒有 tag 的內嵌 struct 直接攤平
			if field.Anonymous {
				attrs = append(attrs, attributesOf(fieldVal)...)
			}
			continue
		}
		if omitEmpty && fieldVal.IsZero() {
			continue
		}
		attrs = append(attrs, attributeOf(key, fieldVal)...)
	}
	return attrs
}

func attributeOf(key string, v reflect.Value) []attribute.KeyValue {
	switch v.Type() {
	case timeType:
		return []attribute.KeyValue{attribute.String(key, v.Interface().(time.Time).UTC().Format(time.RFC3339))}
	case durationType:
		return []attribute.KeyValue{attribute.Float64(key+"_ms", float64(v.Int())/float64(time.Millisecond))}
	}

	switch v.Kind() {
	case reflect.String:
		return []attribute.KeyValue{attribute.String(key, v.String())}
	case reflect.Bool:
		return []attribute.KeyValue{attribute.Bool(key, v.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []attribute.KeyValue{attribute.Int64(key, v.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []attribute.KeyValue{attribute.Int64(key, int64(v.Uint()))}
	case reflect.Float32, reflect.Float64:
		return []attribute.KeyValue{attribute.Float64(key, v.Float())}
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() != reflect.String {
			return nil
		}
		values := make([]string, v.Len())
		for j := range values {
			values[j] = v.Index(j).String()
		}
		return []attribute.KeyValue{attribute.StringSlice(key, values)}
	case reflect.Struct, reflect.Ptr, reflect.Interface:
		return attributesOf(v)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		var attrs []attribute.KeyValue
		iter := v.MapRange()
		for iter.Next() {
			entry := iter.Value()
			if entry.Kind() == reflect.Interface && !entry.IsNil() {
				entry = entry.Elem()
			}
			if !entry.IsValid() || entry.Kind() == reflect.Map {
				continue
			}
			attrs = append(attrs, attributeOf(key+"."+iter.Key().String(), entry)...)
		}
		return attrs
	}
	return nil
}

func parseTraceTag(tag string) (key string, omitEmpty bool) {
	key, opts, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(key), strings.Contains(opts, "omitempty")
}
