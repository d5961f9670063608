package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/tair/catalog-service/internal/product/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags and reports the first violation as
// an InvalidArgumentError.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return domain.NewInvalidArgumentError(lowerFirst(fe.Field()), "failed "+reason)
	}
	return domain.NewInvalidArgumentError("", err.Error())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Fields is a loosely typed request body as decoded from JSON.
type Fields map[string]interface{}

// Present reports whether key holds a non-nil, non-blank value.
func (f Fields) Present(key string) bool {
	v, ok := f[key]
	if !ok || v == nil {
		return false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return true
	}
	return strings.TrimSpace(s) != ""
}

// Require fails on the first key that is missing or null.
func (f Fields) Require(keys ...string) error {
	for _, key := range keys {
		if v, ok := f[key]; !ok || v == nil {
			return domain.NewInvalidArgumentError(key, "required")
		}
	}
	return nil
}

func (f Fields) String(key string) string {
	return strings.TrimSpace(cast.ToString(f[key]))
}

func (f Fields) Int(key string) (int, error) {
	v, err := toInt64(f[key])
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, domain.NewInvalidArgumentError(key, fmt.Sprintf("not an integer: %v", f[key]))
	}
	return int(v), nil
}

func (f Fields) Uint(key string) (uint, error) {
	v, err := toInt64(f[key])
	if err != nil || v < 0 {
		return 0, domain.NewInvalidArgumentError(key, fmt.Sprintf("not an id: %v", f[key]))
	}
	return uint(v), nil
}

var errNotInteger = errors.New("not an integer")

// toInt64 accepts decimal strings and whole JSON numbers only.
func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case string:
		return ParseDecimal(n)
	case json.Number:
		return ParseDecimal(n.String())
	case float64:
		return wholeFloat(n)
	case float32:
		return wholeFloat(float64(n))
	case bool, nil:
		return 0, errNotInteger
	}
	return cast.ToInt64E(v)
}

// ParseDecimal parses a base-10 integer; "010" is ten and "0x1F" is rejected.
func ParseDecimal(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func wholeFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, errNotInteger
	}
	return int64(f), nil
}
