package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/five82/reel/internal/api"
)

// Reason says why the session changed.
type Reason int

const (
	ReasonLogin Reason = iota + 1
	ReasonLogout
	ReasonProfile
	// ReasonExternal is a change made to the session file by another process.
	ReasonExternal
)

func (r Reason) String() string {
	switch r {
	case ReasonLogin:
		return "login"
	case ReasonLogout:
		return "logout"
	case ReasonProfile:
		return "profile"
	case ReasonExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every change.
type Event struct {
	Reason Reason
	User   api.User
	// LoggedIn is false after a logout.
	LoggedIn bool
}

// Store is the durable current-user record. The file holds exactly one
// serialized user; its presence is the authentication signal.
type Store struct {
	path string

	// fileMu serializes writes with Reload so a write is never seen
	// half-applied as an external change.
	fileMu sync.Mutex

	mu      sync.RWMutex
	user    *api.User
	modTime time.Time
	size    int64

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

// Open loads the record at path if one exists.
func Open(path string) (*Store, error) {
	s := &Store{path: path, subs: make(map[int]chan Event)}
	if _, err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the signed-in user.
func (s *Store) Current() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a user record is present.
func (s *Store) LoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// IsAdmin reports whether the signed-in user is an administrator.
func (s *Store) IsAdmin() bool {
	user, ok := s.Current()
	return ok && user.Admin
}

// Subscribe returns a channel receiving every change and a cancel func.
// Slow readers miss intermediate events but always see the latest one.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 1)
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Replace the stale pending event with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// save replaces the record on disk and in memory.
func (s *Store) save(user api.User, reason Reason) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.write(user, data); err != nil {
		return err
	}
	s.notify(Event{Reason: reason, User: user, LoggedIn: true})
	return nil
}

func (s *Store) write(user api.User, data []byte) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace session: %w", err)
	}

	s.mu.Lock()
	dup := user
	s.user = &dup
	s.stampLocked()
	s.mu.Unlock()
	return nil
}

// clear erases the record. The in-memory user is dropped and subscribers
// are told even when the file cannot be removed.
func (s *Store) clear() error {
	s.fileMu.Lock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	s.mu.Lock()
	s.user = nil
	if err == nil {
		s.modTime = time.Time{}
		s.size = 0
	} else {
		s.stampLocked()
	}
	s.mu.Unlock()
	s.fileMu.Unlock()

	s.notify(Event{Reason: ReasonLogout})
	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Reload re-reads the file when it changed on disk since the last read or
// write, notifying subscribers with ReasonExternal.
func (s *Store) Reload() (bool, error) {
	s.fileMu.Lock()
	changed, err := s.reload()
	s.fileMu.Unlock()
	if err != nil || !changed {
		return changed, err
	}
	user, ok := s.Current()
	s.notify(Event{Reason: ReasonExternal, User: user, LoggedIn: ok})
	return true, nil
}

func (s *Store) reload() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("stat session: %w", err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		changed := s.user != nil
		s.user = nil
		s.modTime = time.Time{}
		s.size = 0
		return changed, nil
	}

	s.mu.RLock()
	unchanged := !s.modTime.IsZero() && info.ModTime().Equal(s.modTime) && info.Size() == s.size
	s.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	var user api.User
	decodeErr := json.Unmarshal(data, &user)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modTime = info.ModTime()
	s.size = info.Size()
	if decodeErr != nil || user.ID == 0 {
		// An unreadable record counts as signed out.
		changed := s.user != nil
		s.user = nil
		return changed, nil
	}
	changed := s.user == nil || *s.user != user
	s.user = &user
	return changed, nil
}

func (s *Store) stampLocked() {
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
		s.size = info.Size()
	}
}
