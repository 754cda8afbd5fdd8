package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

// MarshalJSON renders indented JSON with a trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out = append(out, '\n')
	return out, nil
}

// MarshalJSONL renders records as JSONL bytes.
func MarshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	w := bufio.NewWriterSize(&buf, 1<<20)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildWarnings returns deterministic data-quality notes for a manifest.
// Missing lists declared signals absent from the recording.
func BuildWarnings(m *Manifest, missing []string) []string {
	if m == nil {
		return nil
	}
	warnings := make([]string, 0, 4)
	if m.UsableFrames == 0 {
		warnings = append(warnings, "no usable frames: every retained signal is empty")
	}
	if m.UsableFrames < m.FrameCount {
		warnings = append(warnings, fmt.Sprintf("usable length %d is shorter than the %d timestamps", m.UsableFrames, m.FrameCount))
	}
	if m.EgoPathCount == 0 {
		warnings = append(warnings, "recording is shorter than one ego window")
	}
	for _, name := range missing {
		if s := strings.TrimSpace(name); s != "" {
			warnings = append(warnings, "missing signal "+s+" read as 0")
		}
	}
	return dedupeStrings(warnings)
}

// MissingEgoSignals lists ego signals the table does not carry, either
// because the recording lacks them or because they were all zero.
func MissingEgoSignals(table *signals.Table) []string {
	var out []string
	for _, name := range signals.EgoSignals {
		if !table.Has(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
