package scc

import (
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/symbolic"
)

// encodeNode encodes an SCV (possibly nil) into a yaml.Node, leaving the
// node at its zero value for nil so decodeNode can round-trip it back.
func encodeNode(s symbolic.SCV) (yaml.Node, error) {
	var n yaml.Node
	if s == nil {
		return n, nil
	}
	if err := n.Encode(s); err != nil {
		return n, err
	}
	return n, nil
}

// decodeNode is encodeNode's inverse.
func decodeNode(n yaml.Node) (symbolic.SCV, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	raw, err := yaml.Marshal(&n)
	if err != nil {
		return nil, err
	}
	return symbolic.DecodeSCV(raw)
}
