package loom

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

type BindingInfo struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Policy string `json:"policy,omitempty"`
	Eager  bool   `json:"eager,omitempty"`
}

// Bindings lists every binding in registration order, exact bindings first,
// then subtype-factory entries.
func (c *Container) Bindings() []BindingInfo {
	registry := c.internal.Registry()
	entries := registry.Entries()
	bounds := registry.SubtypeBounds()

	infos := make([]BindingInfo, 0, len(entries)+len(bounds))
	for _, e := range entries {
		info := BindingInfo{
			Key:   e.Key.String(),
			Kind:  e.Binding.Kind.String(),
			Eager: e.Binding.Eager,
		}
		if e.Binding.Policy != nil {
			info.Policy = e.Binding.Policy.Describe()
		}
		infos = append(infos, info)
	}

	for _, bound := range bounds {
		infos = append(infos, BindingInfo{Key: bound.String(), Kind: "subtype factory"})
	}
	return infos
}

func (c *Container) PrintBindings() {
	c.FprintBindings(os.Stdout)
}

func (c *Container) FprintBindings(w io.Writer) {
	infos := c.Bindings()

	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, "(empty container)")
		return
	}

	for _, info := range infos {
		desc := info.Kind
		if info.Eager {
			desc = "eager " + desc
		}
		if info.Policy != "" {
			desc += " [" + info.Policy + "]"
		}
		_, _ = fmt.Fprintf(w, "bind<%s> with %s\n", info.Key, desc)
	}
}

func (c *Container) SprintBindings() string {
	var sb strings.Builder
	c.FprintBindings(&sb)
	return sb.String()
}

// BindingsJSON renders the binding list as indented JSON, for dumping into
// logs or diagnostics endpoints.
func (c *Container) BindingsJSON() (string, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(c.Bindings(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
