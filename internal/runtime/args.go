package runtime

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// BindArgs validates raw caller arguments against the operation schema and
// returns normalized Args: strings are sanitized, integers become int, and
// missing optional arguments take their declared default.
// Every violation wraps domain.ErrInvalidArgument.
func BindArgs(op domain.Operation, raw map[string]any, maxInputSize int) (domain.Args, error) {
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		if _, ok := op.Param(name); !ok {
			return nil, fmt.Errorf("%w: unexpected argument %q for %s", domain.ErrInvalidArgument, name, op.Name)
		}
	}

	args := make(domain.Args, len(op.Params))
	for _, p := range op.Params {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, fmt.Errorf("%w: missing required argument %q", domain.ErrInvalidArgument, p.Name)
			}
			if !p.HasDefault() {
				continue
			}
			v = p.Default
		}

		bound, err := bindValue(p, v, maxInputSize)
		if err != nil {
			return nil, err
		}
		args[p.Name] = bound
	}
	return args, nil
}

func bindValue(p domain.Param, v any, maxInputSize int) (any, error) {
	switch p.Type {
	case domain.ParamString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string, got %T", domain.ErrInvalidArgument, p.Name, v)
		}
		clean, err := SanitizeInput(s, maxInputSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArgument, p.Name, err)
		}
		if len(p.Enum) > 0 && !slices.Contains(p.Enum, clean) {
			return nil, fmt.Errorf("%w: %s must be one of %v, got %q", domain.ErrInvalidArgument, p.Name, p.Enum, clean)
		}
		return clean, nil

	case domain.ParamInteger:
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %v", domain.ErrInvalidArgument, p.Name, err)
		}
		if p.Min != nil && n < *p.Min {
			return nil, fmt.Errorf("%w: %s must be >= %d, got %d", domain.ErrInvalidArgument, p.Name, *p.Min, n)
		}
		if p.Max != nil && n > *p.Max {
			return nil, fmt.Errorf("%w: %s must be <= %d, got %d", domain.ErrInvalidArgument, p.Name, *p.Max, n)
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: %s has unsupported type %q", domain.ErrInvalidArgument, p.Name, p.Type)
}

// toInt accepts the numeric shapes produced by JSON decoders and Go callers.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("must be a whole number, got %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("must be a whole number, got %s", n)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("must be an integer, got %T", v)
}
