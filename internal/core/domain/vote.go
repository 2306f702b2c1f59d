package domain

import "time"

// Vote is a like left by a user on a project. At most one exists per (user, project).
type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProjectID string    `json:"project_id" validate:"required"`
	LaunchID  string    `json:"launch_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteState is the client-observed state of a (user, project) like.
type VoteState string

const (
	VoteUnknown  VoteState = "unknown"
	VoteNotVoted VoteState = "not_voted"
	VoteVoted    VoteState = "voted"
	VotePending  VoteState = "pending"
)

// voteTransitions defines the allowed state machine moves.
var voteTransitions = map[VoteState][]VoteState{
	VoteUnknown:  {VoteNotVoted, VoteVoted},
	VoteNotVoted: {VotePending, VoteVoted},
	VoteVoted:    {VotePending, VoteNotVoted},
	VotePending:  {VoteVoted, VoteNotVoted},
}

// CanTransitionTo reports whether a move from s to next is valid.
func (s VoteState) CanTransitionTo(next VoteState) bool {
	for _, allowed := range voteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Liked reports whether the state represents a settled like.
func (s VoteState) Liked() bool {
	return s == VoteVoted
}

// VoteAction is the operation a pending request will settle into.
type VoteAction string

const (
	ActionVote   VoteAction = "vote"
	ActionUnvote VoteAction = "unvote"
)

// Target returns the state reached when the action succeeds.
func (a VoteAction) Target() VoteState {
	if a == ActionVote {
		return VoteVoted
	}
	return VoteNotVoted
}

// Delta is the optimistic change applied to the displayed count.
func (a VoteAction) Delta() int {
	if a == ActionVote {
		return 1
	}
	return -1
}
