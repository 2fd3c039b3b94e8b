// Package yamlval decodes option text as an inline YAML document, so nested
// settings can be passed as one argument:
//
//	--set '{replicas: 3, labels: {tier: web}}'
//
// Decoding into structs is strict: unknown keys are an error.
package yamlval

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/snapopt/container"
	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

var ErrEmpty = errors.New("empty YAML document")

// Decode unmarshals s into a T.
func Decode[T any](s strslice.Slice) (T, error) {
	var out T
	dec := yaml.NewDecoder(strings.NewReader(s.String()))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, ErrEmpty
		}
		return out, err
	}
	return out, nil
}

// Format renders v as single-line flow YAML.
func Format[T any](v T) string {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	flow(&n)
	out, err := yaml.Marshal(&n)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(string(out))
}

func flow(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style |= yaml.FlowStyle
	}
	for _, c := range n.Content {
		flow(c)
	}
}

// Into returns a parser decoding option text into a T.
func Into[T any]() value.Parser[T] {
	return value.WithFormat(value.Func[T](func(s strslice.Slice, _ int) (T, error) {
		return Decode[T](s)
	}), Format[T])
}

func init() {
	value.MustRegister(Into[map[string]any]())
	value.MustRegister(Into[[]any]())
	container.MustRegister(container.Sequence[map[string]any]())
}
