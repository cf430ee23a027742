package domain

// FollowAction is the outcome of a follow toggle.
type FollowAction string

const (
	// FollowActionFollowed means the toggle created the relationship.
	FollowActionFollowed FollowAction = "followed"
	// FollowActionUnfollowed means the toggle removed the relationship.
	FollowActionUnfollowed FollowAction = "unfollowed"
)
