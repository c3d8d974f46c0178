package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

var builtins = map[string]func(seed int64) *Scene{
	"trio":   func(int64) *Scene { return NewTrioScene() },
	"random": NewRandomScene,
}

// Create builds a built-in scene by name. seed only affects randomly generated scenes.
func Create(name string, seed int64) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return build(seed), nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
