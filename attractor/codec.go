package attractor

import (
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/symbolic"
)

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
