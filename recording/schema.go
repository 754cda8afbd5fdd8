package recording

import (
	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

// Group is one named block of the log container. A group without fields is a
// single column stored directly under the group name.
type Group struct {
	Name   string
	Fields []string
}

// Schema is the fixed set of groups and fields read from a recording.
// Anything else in the container is ignored.
type Schema struct {
	Groups []Group

	fields map[string]string // field -> group
}

// NewSchema indexes groups for lookup.
func NewSchema(groups ...Group) *Schema {
	s := &Schema{Groups: groups, fields: make(map[string]string)}
	for _, g := range groups {
		if len(g.Fields) == 0 {
			s.fields[g.Name] = g.Name
			continue
		}
		for _, f := range g.Fields {
			s.fields[f] = g.Name
		}
	}
	return s
}

// DefaultSchema declares the timestamp column, the ego signals and the object
// lists of every known sensor.
func DefaultSchema() *Schema {
	groups := []Group{
		{Name: signals.TimeSignal},
		{Name: signals.EgoGroup, Fields: signals.EgoSignals},
	}
	for _, name := range signals.SensorNames() {
		sensor, _ := signals.LookupSensor(name)
		groups = append(groups, Group{Name: sensor.Name, Fields: sensor.AllSignals()})
	}
	return NewSchema(groups...)
}

// Knows reports whether field is declared, and in which group.
func (s *Schema) Knows(field string) (string, bool) {
	g, ok := s.fields[field]
	return g, ok
}

// group returns the declared group called name.
func (s *Schema) group(name string) (Group, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}
