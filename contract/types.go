package contract

// VoteState is the resolved outcome of a ballot. The numeric value 2 for
// Passed is load-bearing: external callers compare against it, so the enum
// order must not change.
type VoteState uint8

const (
	VoteNotStarted VoteState = 0
	VoteInProgress VoteState = 1
	VotePassed     VoteState = 2
	VoteFailed     VoteState = 3
)

// String prints the vote state as lower-case text for events and logs.
func (v VoteState) String() string {
	switch v {
	case VoteNotStarted:
		return "not_started"
	case VoteInProgress:
		return "in_progress"
	case VotePassed:
		return "passed"
	case VoteFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Vote values accepted by SubmitVote.
const (
	VoteYes uint8 = 1
	VoteNo  uint8 = 2
)
