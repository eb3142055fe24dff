package replay

import (
	"fmt"
	"image"

	"faceguard.io/application/liveness"
	"faceguard.io/entities"
)

// Result is the engine output for one replayed frame.
type Result struct {
	FrameID string
	entities.FrameResult
}

// Mismatch describes a frame whose result differs from the fixture.
type Mismatch struct {
	Index   int
	FrameID string
	Field   string
	Want    string
	Got     string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("frame %d (%s): %s want %s, got %s", m.Index, m.FrameID, m.Field, m.Want, m.Got)
}

// Replay feeds frames through a fresh session in order.
func Replay(cfg liveness.EngineConfig, frames []Frame) []Result {
	session := liveness.NewSession(cfg)
	results := make([]Result, 0, len(frames))
	for _, frame := range frames {
		results = append(results, Result{FrameID: frame.FrameID, FrameResult: apply(session, frame)})
	}
	return results
}

func apply(session *liveness.Session, frame Frame) entities.FrameResult {
	switch frame.Event {
	case EventReset:
		return session.Reset()
	case EventNoFace:
		return session.FaceMissing()
	}
	face := entities.FaceObservation{Box: image.Rect(0, 0, frame.FaceWidth, frame.FaceWidth)}
	return session.ObserveFace(face, frame.RawScore, frame.QualityAdjustment)
}

// Run replays the fixture under its policy.
func Run(f *Fixture) ([]Result, error) {
	cfg, err := liveness.EngineConfigForPolicy(f.Policy)
	if err != nil {
		return nil, err
	}
	return Replay(cfg, f.Frames), nil
}

// Compare checks results against the fixture's expectations, frame by frame.
func Compare(results []Result, expected []ExpectedOutcome) []Mismatch {
	var mismatches []Mismatch
	if len(results) != len(expected) {
		mismatches = append(mismatches, Mismatch{
			Index: -1,
			Field: "frame count",
			Want:  fmt.Sprint(len(expected)),
			Got:   fmt.Sprint(len(results)),
		})
	}
	for i := 0; i < len(results) && i < len(expected); i++ {
		got, want := results[i], expected[i]
		check := func(field, w, g string) {
			if w != g {
				mismatches = append(mismatches, Mismatch{Index: i, FrameID: got.FrameID, Field: field, Want: w, Got: g})
			}
		}
		check("frame_id", want.FrameID, got.FrameID)
		check("verdict", string(want.Verdict), string(got.Verdict))
		if want.DebugTag != "" {
			check("debug_tag", string(want.DebugTag), string(got.DebugTag))
		}
		if want.State != "" {
			check("state", string(want.State), string(got.State))
		}
	}
	return mismatches
}
