package model

import "fmt"

// Resolve returns the named engine ("naive" or "prunable").
func Resolve(name string) (Engine, error) {
	switch name {
	case "naive":
		return Naive{}, nil
	case "prunable":
		return Prunable{}, nil
	default:
		return nil, fmt.Errorf("model: unknown model finder %q", name)
	}
}
