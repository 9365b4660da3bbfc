package ast

import "gopkg.in/yaml.v3"

type yamlNode struct {
	Tag      string  `yaml:"tag"`
	Line     int     `yaml:"line,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return yamlNode{Tag: n.Tag(), Line: n.Pos.Line, Children: n.Children}, nil
}

// ToYAML serialises the tree.
func ToYAML(n *Node) (string, error) {
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
