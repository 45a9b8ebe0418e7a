// Package policy contains the pure access-control decisions for the
// application: whether a given actor may perform a given action on a given
// target. Functions here never touch storage; callers resolve targets first.
//
// An actor ID of 0 means an anonymous (unauthenticated) viewer. Denials use
// the shared error taxonomy: AUTH_REQUIRED sends the caller to the login
// flow, FORBIDDEN sends them to the home feed.
package policy

import "quill/internal/models"

// CanCreatePost allows any authenticated user to author a post.
func CanCreatePost(actorID uint) error {
	return requireAuth(actorID)
}

// CanModifyPost allows editing or deleting a post only to its author.
func CanModifyPost(actorID uint, post *models.Post) error {
	if err := requireAuth(actorID); err != nil {
		return err
	}
	if post.UserID != actorID {
		return models.NewForbiddenError("only the author may modify this post")
	}
	return nil
}

// CanComment allows any authenticated user to comment on any post.
func CanComment(actorID uint) error {
	return requireAuth(actorID)
}

// CanCreateGroup allows any authenticated user to create a group. Groups are
// shared; there is no owner to check.
func CanCreateGroup(actorID uint) error {
	return requireAuth(actorID)
}

// CanFollow reports whether following authorID is actionable for actorID.
// Unauthenticated actors are denied. A self-follow is not an error: it is
// simply not actionable and callers must treat it as a silent no-op.
func CanFollow(actorID, authorID uint) (actionable bool, err error) {
	if err := requireAuth(actorID); err != nil {
		return false, err
	}
	return actorID != authorID, nil
}

// CanUnfollow allows any authenticated user to attempt an unfollow. Whether
// the edge exists is a storage question; a missing edge is a not-found fault,
// not a policy denial.
func CanUnfollow(actorID uint) error {
	return requireAuth(actorID)
}

// CanViewFollowFeed restricts the followed-authors feed to authenticated
// viewers. All other feeds are unrestricted.
func CanViewFollowFeed(actorID uint) error {
	return requireAuth(actorID)
}

func requireAuth(actorID uint) error {
	if actorID == 0 {
		return models.NewAuthRequiredError()
	}
	return nil
}
