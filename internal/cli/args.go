package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// ParseArgs turns repeated "key=value" flags into an argument map.
// Values of integer parameters are converted; everything else stays a string
// and is validated by the dispatcher.
func ParseArgs(op domain.Operation, pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		if _, dup := args[key]; dup {
			return nil, fmt.Errorf("argument %q given more than once", key)
		}

		if p, declared := op.Param(key); declared && p.Type == domain.ParamInteger {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("argument %q must be an integer: %w", key, err)
			}
			args[key] = n
			continue
		}
		args[key] = value
	}
	return args, nil
}
