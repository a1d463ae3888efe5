package merge

// State tracks a job through the two-tier merge protocol:
//
//	Planned → CopyAttempt → {Success | ReencodeAttempt}
//	                         ReencodeAttempt → {Success | PartialSalvage | Failed}
//
// Exactly one escalation (copy → re-encode) ever happens per job.
type State int

const (
	StatePlanned State = iota
	StateCopyAttempt
	StateReencodeAttempt
	StateSuccess
	StatePartialSalvage
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePlanned:
		return "planned"
	case StateCopyAttempt:
		return "copy-attempt"
	case StateReencodeAttempt:
		return "reencode-attempt"
	case StateSuccess:
		return "success"
	case StatePartialSalvage:
		return "partial-salvage"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the job.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StatePartialSalvage, StateFailed:
		return true
	}
	return false
}

// OK reports whether the terminal state counts as a completed merge.
// PartialSalvage is a qualified success: the tool exited non-zero but
// left a usable output file.
func (s State) OK() bool {
	return s == StateSuccess || s == StatePartialSalvage
}

// Method names the tier that produced the output.
type Method string

const (
	MethodNone     Method = ""
	MethodCopy     Method = "copy"
	MethodReencode Method = "reencode"
)
