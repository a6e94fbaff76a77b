package main

import (
	"os"

	"github.com/ehrlich-b/axlab/internal/universe"
)

// defaultSpec is the built-in single-binary-operator universe used when
// --spec is not given: one commutative-candidate operator f of arity 2,
// three variables, terms up to size 5.
func defaultSpec() (*universe.Spec, error) {
	return universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 3, 5)
}

func loadSpec(path string) (*universe.Spec, error) {
	if path == "" {
		return defaultSpec()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return universe.ParseJSON(data)
}
