package release

import (
	"fmt"
)

// Stage is the progress of a single project through its release
// phase. Stages are totally ordered and only ever advance one
// step at a time.
type Stage int

const (
	STAGE_NOT_STARTED Stage = iota
	STAGE_PULL_REQUEST_OPENED
	STAGE_PULL_REQUEST_MERGED
	STAGE_DONE
)

var stageNames = [...]string{
	STAGE_NOT_STARTED:         "not-started",
	STAGE_PULL_REQUEST_OPENED: "pull-request-opened",
	STAGE_PULL_REQUEST_MERGED: "pull-request-merged",
	STAGE_DONE:                "done",
}

// Stages returns all stages in order.
func Stages() []Stage {
	return STAGE_NOT_STARTED.Remaining(true)
}

func ParseStage(s string) (Stage, error) {
	for i, n := range stageNames {
		if n == s {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", s)
}

func (s Stage) String() string {
	if s.valid() {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

func (s Stage) valid() bool {
	return s >= STAGE_NOT_STARTED && s <= STAGE_DONE
}

func (s Stage) IsInitial() bool {
	return s == STAGE_NOT_STARTED
}

func (s Stage) IsFinal() bool {
	return s == STAGE_DONE
}

// Next returns the following stage. It fails for the final stage.
func (s Stage) Next() (Stage, error) {
	if !s.valid() {
		return s, &StageTransitionError{Stage: s, Reason: "invalid stage"}
	}
	if s.IsFinal() {
		return s, &StageTransitionError{Stage: s, Reason: "release already done"}
	}
	return s + 1, nil
}

// Remaining returns the ordered stages following s. If self is
// set, s is included.
func (s Stage) Remaining(self ...bool) []Stage {
	var r []Stage
	if len(self) > 0 && self[0] && s.valid() {
		r = append(r, s)
	}
	for n := s + 1; n.valid(); n++ {
		r = append(r, n)
	}
	return r
}

func CompareStage(a, b Stage) int {
	return int(a) - int(b)
}

func (s Stage) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid stage %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(data []byte) error {
	p, err := ParseStage(string(data))
	if err != nil {
		return err
	}
	*s = p
	return nil
}
