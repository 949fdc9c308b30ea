package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Media is an image reference as the remote API ships it.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Profile is the cached slice of the authenticated user's profile.
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Bio          string `json:"bio,omitempty"`
	Avatar       *Media `json:"avatar,omitempty"`
	Banner       *Media `json:"banner,omitempty"`
	VenueManager bool   `json:"venueManager"`
}

// Session pairs the access token with the profile it belongs to.
type Session struct {
	Token   string
	Profile Profile
}

// ProfilePatch is a shallow partial update; nil fields are left untouched.
type ProfilePatch struct {
	Name         *string
	Email        *string
	Bio          *string
	Avatar       *Media
	Banner       *Media
	VenueManager *bool
}

// fileBlob is the on-disk shape: two logical keys, mirroring what the
// remote API hands back on login.
type fileBlob struct {
	AccessToken string   `json:"accessToken"`
	User        *Profile `json:"user"`
}

// Store is the single writer for the persisted session. It owns one JSON
// file and fans out a payload-free change signal to subscribers, who
// re-read via Get. Everything else in the program treats the store as the
// only way to touch that file.
type Store struct {
	path string

	mu      sync.Mutex
	subs    map[int]func()
	nextSub int
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		subs: make(map[int]func()),
	}
}

// Save replaces any prior session and notifies subscribers once.
func (s *Store) Save(token string, profile Profile) error {
	s.mu.Lock()
	err := s.persist(fileBlob{AccessToken: token, User: &profile})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Get returns the persisted session, or nil when none exists. A blob that
// cannot be read or parsed also yields nil: a broken cache degrades to
// "logged out" instead of erroring, so the UI never hard-locks on it.
func (s *Store) Get() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Token returns just the access token, or "" when logged out.
func (s *Store) Token() string {
	if sess := s.Get(); sess != nil {
		return sess.Token
	}
	return ""
}

// Update shallow-merges the patch into the stored profile and notifies
// subscribers once. With no existing session it starts from a zero one,
// matching how a token can outlive a wiped profile blob.
func (s *Store) Update(patch ProfilePatch) error {
	s.mu.Lock()
	cur := s.load()
	if cur == nil {
		cur = &Session{}
	}
	p := cur.Profile
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		p.Avatar = patch.Avatar
	}
	if patch.Banner != nil {
		p.Banner = patch.Banner
	}
	if patch.VenueManager != nil {
		p.VenueManager = *patch.VenueManager
	}
	err := s.persist(fileBlob{AccessToken: cur.Token, User: &p})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Clear removes the persisted session. Clearing an already-empty store is
// a no-op on disk but still notifies, so listeners converge on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	err := os.Remove(s.path)
	s.mu.Unlock()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	s.notify()
	return nil
}

// Subscribe registers a payload-free change listener and returns its
// unsubscribe func. Listeners re-read state via Get; no ordering is
// guaranteed between them.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) load() *Session {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var blob fileBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil
	}
	if blob.AccessToken == "" && blob.User == nil {
		return nil
	}
	sess := &Session{Token: blob.AccessToken}
	if blob.User != nil {
		sess.Profile = *blob.User
	}
	return sess
}

func (s *Store) persist(blob fileBlob) error {
	raw, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// notify runs outside the store lock so listeners can call Get.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
