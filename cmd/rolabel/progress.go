package main

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
)

var stageDescriptions = map[string]string{
	extract.StageEgo:    "ego paths      ",
	extract.StageActors: "actor fragments",
}

// progressReporter draws one bar per extraction stage.
type progressReporter struct {
	out     io.Writer
	enabled bool
	stage   string
	bar     *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer, enabled bool) *progressReporter {
	return &progressReporter{out: out, enabled: enabled}
}

// Report implements extract.ProgressFunc.
func (p *progressReporter) Report(stage string, done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	if stage != p.stage || p.bar == nil {
		p.Finish()
		desc, ok := stageDescriptions[stage]
		if !ok {
			desc = stage
		}
		p.stage = stage
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(desc),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(0),
			progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(p.out, "\n") }),
		)
	}
	_ = p.bar.Set(done)
}

// Finish completes the current bar, if any.
func (p *progressReporter) Finish() {
	if p.bar == nil {
		return
	}
	if !p.bar.IsFinished() {
		_ = p.bar.Finish()
	}
	p.bar = nil
}
