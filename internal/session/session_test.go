package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/api"
)

type fakeAuth struct {
	user     api.User
	err      error
	resetErr error
	resets   int
}

func (f *fakeAuth) Login(_ context.Context, req api.LoginRequest) (api.User, error) {
	if f.err != nil {
		return api.User{}, f.err
	}
	u := f.user
	u.Email = req.Email
	return u, nil
}

func (f *fakeAuth) ResetSession() error {
	f.resets++
	return f.resetErr
}

func newService(t *testing.T, auth *fakeAuth) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store, err := Open(path)
	require.NoError(t, err)
	return NewService(store, auth, zerolog.Nop()), path
}

func TestLoginPersistsUser(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 7, FullName: "Ada", Admin: true}}
	svc, path := newService(t, auth)
	events, cancel := svc.Subscribe()
	defer cancel()

	user, err := svc.Login(context.Background(), api.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, svc.Store().IsAdmin())

	ev := <-events
	assert.Equal(t, ReasonLogin, ev.Reason)
	assert.True(t, ev.LoggedIn)

	reopened, err := Open(path)
	require.NoError(t, err)
	got, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestLoginFailureKeepsExistingRecord(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 1}}
	svc, _ := newService(t, auth)
	_, err := svc.Login(context.Background(), api.LoginRequest{Email: "a@b.co"})
	require.NoError(t, err)

	auth.err = &api.Error{Status: 401, Message: "Invalid credentials"}
	_, err = svc.Login(context.Background(), api.LoginRequest{Email: "x@y.co"})
	require.Error(t, err)

	got, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "a@b.co", got.Email)
}

func TestLogoutClearsRecordAndCookies(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 3}}
	svc, path := newService(t, auth)
	_, err := svc.Login(context.Background(), api.LoginRequest{Email: "c@d.io"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	assert.Equal(t, 1, auth.resets)
	assert.False(t, svc.Store().LoggedIn())
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout())
}

func TestLogoutReportsResetFailureButStillClears(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 3}, resetErr: errors.New("jar broken")}
	svc, _ := newService(t, auth)
	_, err := svc.Login(context.Background(), api.LoginRequest{Email: "c@d.io"})
	require.NoError(t, err)

	err = svc.Logout()
	require.ErrorContains(t, err, "jar broken")
	assert.False(t, svc.Store().LoggedIn())
}

func TestLogoutSignsOutWhenFileCannotBeRemoved(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 3}}
	svc, path := newService(t, auth)
	_, err := svc.Login(context.Background(), api.LoginRequest{Email: "c@d.io"})
	require.NoError(t, err)
	events, cancel := svc.Subscribe()
	defer cancel()

	// A non-empty directory in place of the record cannot be removed.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "keep"), 0o700))

	err = svc.Logout()
	require.ErrorContains(t, err, "remove session")
	assert.False(t, svc.Store().LoggedIn())
	ev := <-events
	assert.Equal(t, ReasonLogout, ev.Reason)
	assert.False(t, ev.LoggedIn)

	changed, err := svc.Store().Reload()
	require.NoError(t, err)
	assert.False(t, changed, "the leftover file must not sign the user back in")
	assert.False(t, svc.Store().LoggedIn())
}

func TestUpdateProfileOnlyForCurrentUser(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 5, FullName: "Old"}}
	svc, _ := newService(t, auth)

	changed, err := svc.UpdateProfile(api.User{ID: 5, FullName: "Nobody"})
	require.NoError(t, err)
	assert.False(t, changed, "no session yet")

	_, err = svc.Login(context.Background(), api.LoginRequest{Email: "e@f.gh"})
	require.NoError(t, err)

	changed, err = svc.UpdateProfile(api.User{ID: 6, FullName: "Other"})
	require.NoError(t, err)
	assert.False(t, changed)

	current, _ := svc.Current()
	current.FullName = "New"
	changed, err = svc.UpdateProfile(current)
	require.NoError(t, err)
	assert.True(t, changed)
	got, _ := svc.Current()
	assert.Equal(t, "New", got.FullName)
}

func TestReloadDetectsExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := Open(path)
	require.NoError(t, err)
	events, cancel := store.Subscribe()
	defer cancel()

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":9,"email":"x@y.z","fullName":"X","admin":false}`), 0o600))
	changed, err = store.Reload()
	require.NoError(t, err)
	require.True(t, changed)
	ev := <-events
	assert.Equal(t, ReasonExternal, ev.Reason)
	assert.Equal(t, int64(9), ev.User.ID)

	changed, err = store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.Remove(path))
	changed, err = store.Reload()
	require.NoError(t, err)
	require.True(t, changed)
	ev = <-events
	assert.False(t, ev.LoggedIn)
}

func TestOpenTreatsGarbageAsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	store, err := Open(path)
	require.NoError(t, err)
	assert.False(t, store.LoggedIn())
}

func TestSubscribeKeepsLatestEvent(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 2}}
	svc, _ := newService(t, auth)
	events, cancel := svc.Subscribe()

	_, err := svc.Login(context.Background(), api.LoginRequest{Email: "a@b.cd"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout())

	select {
	case ev := <-events:
		assert.Equal(t, ReasonLogout, ev.Reason)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	cancel()
	cancel()
}

func TestOwnWritesAreNotReportedAsExternal(t *testing.T) {
	auth := &fakeAuth{user: api.User{ID: 4}}
	svc, _ := newService(t, auth)
	events, cancel := svc.Subscribe()
	defer cancel()

	var external atomic.Int32
	collected := make(chan struct{})
	stop := make(chan struct{})
	go func() {
		defer close(collected)
		for {
			select {
			case ev := <-events:
				if ev.Reason == ReasonExternal {
					external.Add(1)
				}
			case <-stop:
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_, _ = svc.Store().Reload()
			}
		}
	}()

	for range 50 {
		_, err := svc.Login(context.Background(), api.LoginRequest{Email: "g@h.ij"})
		require.NoError(t, err)
		require.NoError(t, svc.Logout())
	}
	close(stop)
	wg.Wait()
	<-collected

	assert.Zero(t, external.Load())
}
