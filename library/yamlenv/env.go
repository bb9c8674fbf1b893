package yamlenv

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// поддерживаем ${VAR} и ${VAR:default}
var envRef = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}$`)

// Env — значение конфигурации из YAML с возможностью переопределения
// через переменную окружения: `port: ${API_PORT:8080}`.
type Env[T any] struct {
	Value T
}

func New[T any](v T) *Env[T] {
	return &Env[T]{Value: v}
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return node.Decode(&e.Value)
	}

	raw := node.Value
	if m := envRef.FindStringSubmatch(raw); m != nil {
		if v, ok := os.LookupEnv(m[1]); ok {
			raw = v
		} else {
			raw = m[2]
		}
	}

	var out T
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return fmt.Errorf("yamlenv: decode %q: %w", raw, err)
	}

	e.Value = out

	return nil
}
