package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/mkvist/shelfmark/internal/models"
	"github.com/mkvist/shelfmark/internal/store"
	"github.com/mkvist/shelfmark/internal/types"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	ImagePath string
}

// UserUpdate carries a partial profile update. Nil fields are untouched.
type UserUpdate struct {
	Username  *string
	Email     *string
	Password  *string
	ImagePath *string
}

// RegisterUser creates a new account with empty rating/follow state.
func RegisterUser(st store.Store, in SignupInput) (*models.User, error) {
	var details []string
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if l := len(in.Username); l < 3 || l > 20 {
		details = append(details, "username must be 3-20 characters")
	}
	if !emailPattern.MatchString(in.Email) {
		details = append(details, "email must be a valid address")
	}
	if len(in.Password) < 6 {
		details = append(details, "password must be at least 6 characters")
	}
	if len(details) > 0 {
		return nil, types.Validation("invalid signup input", details...)
	}

	if _, err := st.Users().ByUsername(in.Username); err == nil {
		return nil, types.AlreadyExists("username %q is already taken", in.Username)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := st.Users().ByEmail(in.Email); err == nil {
		return nil, types.AlreadyExists("email %q is already registered", in.Email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		ImagePath: in.ImagePath,
	}
	user.SetRatedWorkEntries(map[string]models.RatedEntry{})
	user.SetFollowerIDs(nil)
	user.SetFollowingIDs(nil)

	if err := st.Users().Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a username or email and compares the stored
// credential directly. This is a deliberate placeholder: no hashing, no
// session or token issuance.
func Authenticate(st store.Store, identifier, password string) (*models.User, error) {
	user, err := st.Users().ByUsername(identifier)
	if errors.Is(err, store.ErrNotFound) {
		user, err = st.Users().ByEmail(identifier)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, types.AuthenticationFailed("unknown username or email")
	}
	if err != nil {
		return nil, err
	}
	if user.Password != password {
		return nil, types.AuthenticationFailed("wrong credentials")
	}
	return user, nil
}

// GetUser fetches a user by id.
func GetUser(st store.Store, userID uint64) (*models.User, error) {
	user, err := st.Users().ByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, types.NotFound("user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update, re-checking username and
// email uniqueness when they change.
func UpdateUser(st store.Store, userID uint64, upd UserUpdate) (*models.User, error) {
	if upd.Username == nil && upd.Email == nil && upd.Password == nil && upd.ImagePath == nil {
		return nil, types.Validation("no fields to update")
	}

	user, err := GetUser(st, userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if l := len(username); l < 3 || l > 20 {
			return nil, types.Validation("invalid profile update", "username must be 3-20 characters")
		}
		if username != user.Username {
			if other, err := st.Users().ByUsername(username); err == nil && other.UserID != userID {
				return nil, types.AlreadyExists("username %q is already taken", username)
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			user.Username = username
		}
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if !emailPattern.MatchString(email) {
			return nil, types.Validation("invalid profile update", "email must be a valid address")
		}
		if email != user.Email {
			if other, err := st.Users().ByEmail(email); err == nil && other.UserID != userID {
				return nil, types.AlreadyExists("email %q is already registered", email)
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return nil, types.Validation("invalid profile update", "password must be at least 6 characters")
		}
		user.Password = *upd.Password
	}
	if upd.ImagePath != nil {
		user.ImagePath = *upd.ImagePath
	}

	if err := st.Users().Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and cascades its ratings, shelves and
// follow edges. The cascade is best effort, not transactional: a failure
// partway leaves earlier deletions in place.
func DeleteUser(st store.Store, userID uint64) error {
	user, err := GetUser(st, userID)
	if err != nil {
		return err
	}

	if _, err := st.Ratings().DeleteByUser(userID); err != nil {
		return err
	}
	if _, err := st.Shelves().DeleteByUser(userID); err != nil {
		return err
	}

	// Detach the user from both sides of every follow edge. Counterparts
	// that no longer resolve are skipped (dangling reference tolerance).
	for _, followerID := range user.FollowerIDs() {
		follower, err := st.Users().ByID(followerID)
		if err != nil {
			continue
		}
		follower.SetFollowingIDs(removeID(follower.FollowingIDs(), userID))
		if err := st.Users().Save(follower); err != nil {
			return err
		}
	}
	for _, followedID := range user.FollowingIDs() {
		followed, err := st.Users().ByID(followedID)
		if err != nil {
			continue
		}
		followed.SetFollowerIDs(removeID(followed.FollowerIDs(), userID))
		if err := st.Users().Save(followed); err != nil {
			return err
		}
	}

	return st.Users().Delete(userID)
}
