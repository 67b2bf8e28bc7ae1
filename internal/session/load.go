package session

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadParams decodes YAML parameters on top of DefaultParams. Keys that are
// not Params fields are rejected. An empty document yields the defaults.
//
// Example document:
//
//	input_height: 6
//	input_width: 6
//	kernel_size: 3
//	stride: 2
//	padding_mode: reflect
//	padding_size: 1
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("load params: %w", err)
	}
	return p, nil
}

// LoadParamsFile reads parameters from a YAML file.
func LoadParamsFile(path string) (Params, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return Params{}, fmt.Errorf("load params: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadParams(f)
}

// MarshalParams encodes p as YAML, the inverse of LoadParams.
func MarshalParams(p Params) ([]byte, error) {
	return yaml.Marshal(p)
}
