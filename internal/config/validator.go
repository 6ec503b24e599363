package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the config against its struct tags
func Validate(cfg *Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	fields := FormatValidationError(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, "; "))
}

// FormatValidationError turns validator errors into a field -> message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["config"] = err.Error()
		return errs
	}

	for _, e := range validationErrors {
		field := envNameFor(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// envNameFor maps a struct field back to the variable that sets it, so the
// message tells the user what to change in .env
func envNameFor(field string) string {
	switch field {
	case "SlintFile":
		return EnvSlintFile
	case "PrunePrefixes":
		return EnvPrunePrefixes
	case "RecentLimit":
		return EnvRecentLimit
	case "LogLevel":
		return EnvLogLevel
	case "LogFormat":
		return EnvLogFormat
	case "Environment":
		return EnvEnvironment
	default:
		return strings.ToLower(field)
	}
}
