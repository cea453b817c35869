// FILE: lixenwraith/loggers/override.go
package loggers

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ApplyOverride applies "key=value" overrides, keyed by toml name, to the configuration.
// All overrides are parsed before any is applied, so a failing call leaves c unchanged.
//
// Example:
//
//	cfg := loggers.DefaultConfig()
//	err := cfg.ApplyOverride(
//	    "type=file",
//	    "path=/var/log/app.log",
//	    "rotate_size=10485760",
//	    "level=debug",
//	)
func (c *Config) ApplyOverride(overrides ...string) error {
	updated := c.Clone()

	var errs []error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(updated, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	if _, err := updated.resolve(); err != nil {
		return err
	}
	*c = *updated
	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error
func combineConfigErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString("multiple configuration errors:")
	for i, err := range errs {
		errMsg := strings.TrimPrefix(err.Error(), "loggers: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return invalidField("", "%s", sb.String())
}

// applyConfigField converts value to the type of the field tagged key and stores it
func applyConfigField(cfg *Config, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != key {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int64:
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return invalidField(key, "invalid integer value '%s'", value)
			}
			field.SetInt(intVal)
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(value)
			if err != nil {
				return invalidField(key, "invalid boolean value '%s'", value)
			}
			field.SetBool(boolVal)
		default:
			return invalidField(key, "unsupported field type: %v", field.Kind())
		}
		return nil
	}

	return invalidField(key, "unknown configuration key")
}

// parseKeyValue splits "key=value", trimming spaces around both
func parseKeyValue(arg string) (string, string, error) {
	key, value, found := strings.Cut(arg, "=")
	if !found {
		return "", "", invalidField("", "invalid override %q, expected key=value", arg)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", invalidField("", "empty key in override %q", arg)
	}
	return key, strings.TrimSpace(value), nil
}
