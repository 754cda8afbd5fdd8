package signals

import (
	"fmt"
	"sort"
	"strings"
)

// EgoSignals are the ego-motion (EML) signals, in sample order:
// position x, position y, yaw angle, velocity x, acceleration x, acceleration y.
var EgoSignals = []string{
	"EML_PositionX",
	"EML_PositionY",
	"EML_Gierwinkel",
	"EML_GeschwX",
	"EML_BeschlX",
	"EML_BeschlY",
}

// EgoGroup is the container group holding EgoSignals.
const EgoGroup = "EML"

// Sensor describes the per-slot object list of one sensor source.
type Sensor struct {
	Name  string
	Slots int
	// Template renders a signal name from a 1-based slot number and a field suffix.
	Template string
	// Fields are the six suffixes in sample order:
	// object id, class, position x, position y, velocity x, velocity y.
	Fields [6]string
}

var (
	// BV2 is the front camera object list.
	BV2 = Sensor{
		Name:     "BV2",
		Slots:    10,
		Template: "BV2_Obj_%02d_%s",
		Fields:   [6]string{"ID", "Klasse", "PositionX", "PositionY", "GeschwX", "GeschwY"},
	}

	// LRR1 is the long range radar object list. Its kinematic fields are
	// polar (radial distance, azimuth, yaw, radial speed) and are passed
	// through unchanged in the position and velocity columns.
	LRR1 = Sensor{
		Name:     "LRR1",
		Slots:    20,
		Template: "LRR1_Obj_%02d_%s",
		Fields:   [6]string{"ID_UF", "Klasse_UF", "RadialDist_UF", "AzimutWnkl_UF", "GierWnkl_UF", "RadialGeschw_UF"},
	}
)

var sensors = map[string]Sensor{
	BV2.Name:  BV2,
	LRR1.Name: LRR1,
}

// LookupSensor resolves a sensor source by name (case-insensitive).
func LookupSensor(name string) (Sensor, error) {
	s, ok := sensors[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Sensor{}, fmt.Errorf("unknown sensor %q (known: %s)", name, strings.Join(SensorNames(), ", "))
	}
	return s, nil
}

// SensorNames lists the known sensor sources.
func SensorNames() []string {
	out := make([]string, 0, len(sensors))
	for name := range sensors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SlotSignals renders the six signal names of a 0-based slot.
func (s Sensor) SlotSignals(slot int) []string {
	out := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		out[i] = fmt.Sprintf(s.Template, slot+1, field)
	}
	return out
}

// AllSignals renders every signal name of every slot, slot-major.
func (s Sensor) AllSignals() []string {
	out := make([]string, 0, s.Slots*len(s.Fields))
	for slot := 0; slot < s.Slots; slot++ {
		out = append(out, s.SlotSignals(slot)...)
	}
	return out
}
