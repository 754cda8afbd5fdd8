package actortrack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

// idSource reports a fixed identity sequence; position x echoes the frame.
type idSource []float64

func (s idSource) ActorSample(frame int) Sample {
	if frame >= len(s) {
		return Sample{Frame: frame}
	}
	return Sample{Frame: frame, ObjectID: s[frame], X: float64(frame)}
}

func frameIDs(run []Sample) []int {
	out := make([]int, len(run))
	for i, s := range run {
		out[i] = s.Frame
	}
	return out
}

func repeat(id float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = id
	}
	return out
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSegmentIdentityChange(t *testing.T) {
	t.Parallel()

	ids := idSource{5, 5, 5, 7, 7, 7, 7}

	t.Run("incomplete runs are dropped by default", func(t *testing.T) {
		got := Segmenter{Length: 100}.Segment(ids, len(ids))
		assert.Empty(t, got)
	})

	t.Run("emit on break closes the run of 5", func(t *testing.T) {
		got := Segmenter{Length: 100, EmitOnBreak: true}.Segment(ids, len(ids))
		require.Len(t, got, 1)
		assert.Equal(t, []int{0, 1, 2}, frameIDs(got[0]))
		for _, s := range got[0] {
			assert.Equal(t, 5.0, s.ObjectID)
		}
	})
}

func TestSegmentLeadingNoActor(t *testing.T) {
	t.Parallel()

	ids := idSource(concat([]float64{signals.NoActor, signals.NoActor}, repeat(5, 4)))
	got := Segmenter{Length: 4}.Segment(ids, len(ids))
	require.Len(t, got, 1)
	assert.Equal(t, []int{2, 3, 4, 5}, frameIDs(got[0]))
}

func TestSegmentOnlyNoActor(t *testing.T) {
	t.Parallel()

	ids := idSource(repeat(signals.NoActor, 300))
	assert.Empty(t, Segmenter{Length: 100, EmitOnBreak: true}.Segment(ids, len(ids)))
}

func TestSegmentLengthCap(t *testing.T) {
	t.Parallel()

	ids := idSource(repeat(9, 250))
	got := NewSegmenter().Segment(ids, len(ids))

	// 250 frames -> two full fragments of 100, the trailing 50 stay open
	require.Len(t, got, 2)
	for _, run := range got {
		assert.Len(t, run, 100)
	}
	assert.Equal(t, 0, got[0][0].Frame)
	assert.Equal(t, 99, got[0][99].Frame)
	assert.Equal(t, 100, got[1][0].Frame)
	assert.Equal(t, 199, got[1][99].Frame)
}

func TestSegmentNoMergeAcrossGap(t *testing.T) {
	t.Parallel()

	ids := idSource(concat(repeat(5, 3), []float64{signals.NoActor}, repeat(5, 3)))

	got := Segmenter{Length: 4, EmitOnBreak: true}.Segment(ids, len(ids))
	require.Len(t, got, 1)
	assert.Equal(t, []int{0, 1, 2}, frameIDs(got[0]))

	assert.Empty(t, Segmenter{Length: 4}.Segment(ids, len(ids)))
}

func TestSegmentBreakAfterFullFragment(t *testing.T) {
	t.Parallel()

	ids := idSource(concat(repeat(1, 3), repeat(2, 5), repeat(3, 1)))
	got := Segmenter{Length: 3}.Segment(ids, len(ids))

	want := [][]int{{0, 1, 2}, {3, 4, 5}}
	gotFrames := make([][]int, len(got))
	for i, run := range got {
		gotFrames[i] = frameIDs(run)
	}
	if diff := cmp.Diff(want, gotFrames); diff != "" {
		t.Fatalf("fragment frames mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentRespectsFrameCount(t *testing.T) {
	t.Parallel()

	ids := idSource(repeat(4, 10))
	assert.Len(t, Segmenter{Length: 5}.Segment(ids, 9), 1)
	assert.Len(t, Segmenter{Length: 5}.Segment(ids, 10), 2)
	assert.Nil(t, Segmenter{Length: 5}.Segment(ids, 0))
	assert.Nil(t, Segmenter{}.Segment(ids, 10))
}

func TestFramesFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, FramesFor(4.0, signals.TimeStep))
	assert.Equal(t, 50, FramesFor(2.0, signals.TimeStep))
	assert.Equal(t, 0, FramesFor(0, signals.TimeStep))
	assert.Equal(t, 0, FramesFor(1, 0))
}

func TestSegmentSensor(t *testing.T) {
	t.Parallel()

	n := 8
	table := signals.NewTable(map[string][]float64{
		"Time": repeat(1, n),
		// slot 1: one identity for the whole recording
		"BV2_Obj_01_ID":        repeat(3, n),
		"BV2_Obj_01_Klasse":    repeat(2, n),
		"BV2_Obj_01_PositionX": {1, 2, 3, 4, 5, 6, 7, 8},
		"BV2_Obj_01_PositionY": repeat(-1.5, n),
		"BV2_Obj_01_GeschwX":   repeat(0.5, n),
		"BV2_Obj_01_GeschwY":   repeat(0.25, n),
		// slot 3: empty, then an identity
		"BV2_Obj_03_ID": concat(repeat(signals.NoActor, 4), repeat(11, 4)),
	})

	got := Segmenter{Length: 4}.SegmentSensor(table, signals.BV2, table.Frames())
	require.Len(t, got, 3)

	assert.Equal(t, Fragment{
		Sensor:   "BV2",
		Slot:     0,
		ObjectID: 3,
		Samples: []Sample{
			{Frame: 0, ObjectID: 3, Class: 2, X: 1, Y: -1.5, VX: 0.5, VY: 0.25},
			{Frame: 1, ObjectID: 3, Class: 2, X: 2, Y: -1.5, VX: 0.5, VY: 0.25},
			{Frame: 2, ObjectID: 3, Class: 2, X: 3, Y: -1.5, VX: 0.5, VY: 0.25},
			{Frame: 3, ObjectID: 3, Class: 2, X: 4, Y: -1.5, VX: 0.5, VY: 0.25},
		},
	}, got[0])
	assert.Equal(t, 0, got[1].Slot)
	assert.Equal(t, 4, got[1].Samples[0].Frame)

	// slot 3 has only an identity column; the rest read as 0
	assert.Equal(t, 2, got[2].Slot)
	assert.Equal(t, 11.0, got[2].ObjectID)
	assert.Equal(t, []int{4, 5, 6, 7}, frameIDs(got[2].Samples))
	assert.Zero(t, got[2].Samples[0].X)
}
