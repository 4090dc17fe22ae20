package services

import (
	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
)

// FollowUser adds a follow edge from userID to targetUserID. The edge is
// stored as two array memberships (user.following and target.followers)
// that must stay symmetric; the two saves are not atomic.
func FollowUser(st store.Store, userID, targetUserID uint64) error {
	if userID == targetUserID {
		return types.InvalidRelationship("users cannot follow themselves")
	}

	user, err := GetUser(st, userID)
	if err != nil {
		return err
	}
	target, err := GetUser(st, targetUserID)
	if err != nil {
		return err
	}

	if containsID(user.FollowingIDs(), targetUserID) {
		return types.InvalidRelationship("already following user %d", targetUserID)
	}

	user.SetFollowingIDs(append(user.FollowingIDs(), targetUserID))
	if err := st.Users().Save(user); err != nil {
		return err
	}
	target.SetFollowerIDs(append(target.FollowerIDs(), userID))
	return st.Users().Save(target)
}

// UnfollowUser removes the follow edge from userID to targetUserID,
// symmetrically on both sides.
func UnfollowUser(st store.Store, userID, targetUserID uint64) error {
	user, err := GetUser(st, userID)
	if err != nil {
		return err
	}
	target, err := GetUser(st, targetUserID)
	if err != nil {
		return err
	}

	if !containsID(user.FollowingIDs(), targetUserID) {
		return types.InvalidRelationship("not following user %d", targetUserID)
	}

	user.SetFollowingIDs(removeID(user.FollowingIDs(), targetUserID))
	if err := st.Users().Save(user); err != nil {
		return err
	}
	target.SetFollowerIDs(removeID(target.FollowerIDs(), userID))
	return st.Users().Save(target)
}

// UserFollowing resolves the users that userID follows. Ids that no longer
// resolve are silently dropped (dangling reference tolerance).
func UserFollowing(st store.Store, userID uint64) ([]models.User, error) {
	user, err := GetUser(st, userID)
	if err != nil {
		return nil, err
	}
	return resolveUsers(st, user.FollowingIDs()), nil
}

// UserFollowers resolves the users following userID, dropping dangling ids.
func UserFollowers(st store.Store, userID uint64) ([]models.User, error) {
	user, err := GetUser(st, userID)
	if err != nil {
		return nil, err
	}
	return resolveUsers(st, user.FollowerIDs()), nil
}

func resolveUsers(st store.Store, ids []uint64) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := st.Users().ByID(id)
		if err != nil {
			continue
		}
		users = append(users, *u)
	}
	return users
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []uint64, id uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
