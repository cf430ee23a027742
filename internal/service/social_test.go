package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watpato/profile-server/internal/domain"
	domainerrors "github.com/watpato/profile-server/internal/errors"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifiedFollow
}

type notifiedFollow struct {
	followedID int64
	follower   string
}

func (n *recordingNotifier) SendNewFollower(_ context.Context, followedID int64, followerUsername string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifiedFollow{followedID: followedID, follower: followerUsername})
	return nil
}

func (n *recordingNotifier) snapshot() []notifiedFollow {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifiedFollow(nil), n.calls...)
}

// waitForCalls polls until the notifier has n calls or the deadline passes.
func (n *recordingNotifier) waitForCalls(t *testing.T, want int) []notifiedFollow {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if calls := n.snapshot(); len(calls) >= want {
			return calls
		}
		time.Sleep(5 * time.Millisecond)
	}
	return n.snapshot()
}

func TestToggleFollow(t *testing.T) {
	st := newTestStore(t)
	notifier := &recordingNotifier{}
	svc := NewSocialService(st, notifier, testLogger())
	ctx := context.Background()

	follower := createUser(t, st, "follower")
	followed := createUser(t, st, "followed")

	action, err := svc.ToggleFollow(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowActionFollowed, action)

	calls := notifier.waitForCalls(t, 1)
	require.Len(t, calls, 1)
	assert.Equal(t, followed.ID, calls[0].followedID)
	assert.Equal(t, "follower", calls[0].follower)

	// Toggling again unfollows and sends nothing new.
	action, err = svc.ToggleFollow(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowActionUnfollowed, action)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, notifier.snapshot(), 1)
}

func TestToggleFollow_Self(t *testing.T) {
	st := newTestStore(t)
	svc := NewSocialService(st, &recordingNotifier{}, testLogger())

	user := createUser(t, st, "loner")

	_, err := svc.ToggleFollow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestToggleFollow_UnknownUsers(t *testing.T) {
	st := newTestStore(t)
	svc := NewSocialService(st, &recordingNotifier{}, testLogger())
	ctx := context.Background()

	user := createUser(t, st, "real_user")

	_, err := svc.ToggleFollow(ctx, user.ID+100, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.ToggleFollow(ctx, user.ID, user.ID+100)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestToggleFollow_NilNotifier(t *testing.T) {
	st := newTestStore(t)
	svc := NewSocialService(st, nil, testLogger())
	ctx := context.Background()

	follower := createUser(t, st, "quiet_follower")
	followed := createUser(t, st, "quiet_followed")

	action, err := svc.ToggleFollow(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowActionFollowed, action)
}
