package entity

type StageStatus string

const (
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
)

// FailurePolicy decides what happens to the stages after one fails.
type FailurePolicy string

const (
	// FailurePolicySkip marks dependent stages as skipped without calling their agents.
	FailurePolicySkip FailurePolicy = "skip"
	// FailurePolicyCascade feeds the failed stage's error-marker output forward as content.
	FailurePolicyCascade FailurePolicy = "cascade"
)

func ParseFailurePolicy(s string) FailurePolicy {
	switch FailurePolicy(s) {
	case FailurePolicyCascade:
		return FailurePolicyCascade
	default:
		return FailurePolicySkip
	}
}
