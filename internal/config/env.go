package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ApplyEnv overlays variables named <prefix>_<FIELD> from environ onto out,
// which must be a pointer to a config struct. Empty values are ignored.
// Lists are comma separated and durations use time.ParseDuration syntax.
func ApplyEnv(environ []string, prefix string, out any) error {
	values := map[string]any{}
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, prefix+"_") {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(key, prefix+"_"))] = value
	}
	if len(values) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToBoolHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("environment %s_*: %w", prefix, err)
	}
	return nil
}

func stringToBoolHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return nil, fmt.Errorf("invalid boolean %q", data)
	}
}
