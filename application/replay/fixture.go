package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"faceguard.io/entities"
)

// Fixture is a recorded session: the per-frame signals and, optionally, the
// results the engine is expected to produce for them.
type Fixture struct {
	Description string            `json:"description"`
	Policy      string            `json:"policy"`
	Frames      []Frame           `json:"frames"`
	Expected    []ExpectedOutcome `json:"expected_results"`
}

type FrameEvent string

const (
	EventScore  FrameEvent = "score"
	EventNoFace FrameEvent = "no_face"
	EventReset  FrameEvent = "reset"
)

// Frame is one recorded input. An empty Event means EventScore.
type Frame struct {
	FrameID           string     `json:"frame_id"`
	Event             FrameEvent `json:"event,omitempty"`
	FaceWidth         int        `json:"face_width"`
	RawScore          float64    `json:"raw_score"`
	QualityAdjustment float64    `json:"quality_adjustment"`
}

// ExpectedOutcome pins the verdict of a frame. DebugTag and State are only
// compared when set.
type ExpectedOutcome struct {
	FrameID  string               `json:"frame_id"`
	Verdict  entities.Verdict     `json:"verdict"`
	DebugTag entities.DebugTag    `json:"debug_tag,omitempty"`
	State    entities.EngineState `json:"state,omitempty"`
}

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i, frame := range f.Frames {
		switch frame.Event {
		case "", EventScore, EventNoFace, EventReset:
		default:
			return nil, fmt.Errorf("fixture %s frame %d: unknown event %q", path, i, frame.Event)
		}
	}
	return &f, nil
}
