package auth

import "github.com/members-club/webserver/types"

// CanMutatePost decides whether the actor may update or delete the post.
// Unauthenticated actors never may; otherwise ownership or admin.
func CanMutatePost(actor *types.User, post types.Post) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin || actor.ID == post.UserID
}

// CanMutateUser decides whether the actor may change or delete the target
// account. Self-service or admin.
func CanMutateUser(actor *types.User, targetID int) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin || actor.ID == targetID
}
