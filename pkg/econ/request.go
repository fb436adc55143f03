package econ

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// RequestOptions customizes a single Execute call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Params are appended to the URL in order; entries with a nil value are
	// omitted.
	Params Params
	// Body is JSON encoded when non-nil.
	Body any
	// Headers overlay the client's default headers.
	Headers map[string]string
	// APIKey overrides the client's key for this call only.
	APIKey string
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters. Values may be strings,
// booleans, any integer or float kind, time.Time, fmt.Stringer, or pointers
// to those; a nil value (or nil pointer) marks the parameter as absent.
type Params []Param

// NewParams creates an empty parameter list.
func NewParams() Params {
	return Params{}
}

// Add appends a parameter and returns the extended list.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Values returns the defined parameters as url.Values. Ordering is lost; use
// Encode to build a query string.
func (p Params) Values() url.Values {
	values := url.Values{}

	for _, param := range p {
		if value, ok := FormatParamValue(param.Value); ok {
			values.Add(param.Key, value)
		}
	}

	return values
}

// Encode renders the defined parameters as a percent-encoded query string,
// preserving their order.
func (p Params) Encode() string {
	var builder strings.Builder

	for _, param := range p {
		value, ok := FormatParamValue(param.Value)
		if !ok {
			continue
		}

		if builder.Len() > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(value))
	}

	return builder.String()
}

// FormatParamValue stringifies a parameter value. The boolean result is false
// when the value is absent.
func FormatParamValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}

		return FormatParamValue(rv.Elem().Interface())
	}

	switch typed := value.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case time.Time:
		return typed.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		return typed.String(), true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.String:
		return rv.String(), true
	default:
		return fmt.Sprint(value), true
	}
}
