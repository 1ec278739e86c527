package colormap

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// mapDef is the serialized form of a Map.
type mapDef struct {
	Name  string `yaml:"name" json:"name"`
	Stops []Stop `yaml:"stops" json:"stops"`
}

// MarshalYAML implements yaml.Marshaler.
func (m *Map) MarshalYAML() (any, error) {
	return mapDef{Name: m.name, Stops: m.Stops()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The decoded stop list is
// validated; invalid maps are rejected with *InvalidMapError.
func (m *Map) UnmarshalYAML(value *yaml.Node) error {
	var def mapDef
	if err := value.Decode(&def); err != nil {
		return err
	}
	nm, err := New(def.Name, def.Stops)
	if err != nil {
		return err
	}
	*m = *nm
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapDef{Name: m.name, Stops: m.Stops()})
}

// UnmarshalJSON implements json.Unmarshaler with the same validation
// as UnmarshalYAML.
func (m *Map) UnmarshalJSON(data []byte) error {
	var def mapDef
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	nm, err := New(def.Name, def.Stops)
	if err != nil {
		return err
	}
	*m = *nm
	return nil
}

// MarshalYAML encodes the color as a flow-style [r, g, b, a] sequence.
func (c RGBA) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(v, 'g', -1, 64),
		})
	}
	return node, nil
}

// UnmarshalYAML decodes an [r, g, b] or [r, g, b, a] sequence; a
// missing alpha defaults to 1.
func (c *RGBA) UnmarshalYAML(value *yaml.Node) error {
	var vals []float64
	if err := value.Decode(&vals); err != nil {
		return err
	}
	return c.fromSlice(vals)
}

// MarshalJSON encodes the color as an [r, g, b, a] array.
func (c RGBA) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{c.R, c.G, c.B, c.A})
}

// UnmarshalJSON decodes an [r, g, b] or [r, g, b, a] array.
func (c *RGBA) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	return c.fromSlice(vals)
}

func (c *RGBA) fromSlice(vals []float64) error {
	switch len(vals) {
	case 3:
		*c = RGBA{R: vals[0], G: vals[1], B: vals[2], A: 1}
	case 4:
		*c = RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}
	default:
		return fmt.Errorf("colormap: color needs 3 or 4 channels, got %d", len(vals))
	}
	return nil
}
