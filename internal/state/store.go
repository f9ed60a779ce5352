package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/startuphub/startuphub/internal/kv"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/rating"
	"github.com/startuphub/startuphub/pkg/logger"
	"github.com/startuphub/startuphub/pkg/metrics"
)

// Persisted keys. Every value is a string; collections are JSON arrays.
const (
	KeyPrefix   = "startupHub_"
	KeyUser     = KeyPrefix + "user"
	KeyStartups = KeyPrefix + "startups"
	KeyDrafts   = KeyPrefix + "drafts"
	KeyLikes    = KeyPrefix + "likes"
	KeyMentors  = KeyPrefix + "mentors"
	KeyTheme    = KeyPrefix + "theme"
	KeyLanguage = KeyPrefix + "language"
	KeySidebar  = KeyPrefix + "sidebar_collapsed"
	KeyFirstRun = KeyPrefix + "first_run"
)

// Keys lists every persisted key except the first-run marker.
var Keys = []string{KeyUser, KeyStartups, KeyDrafts, KeyLikes, KeyMentors, KeyTheme, KeyLanguage, KeySidebar}

// Scope selects which keys a mutation writes back.
type Scope uint8

const (
	ScopeStartups Scope = 1 << iota // startups + likes
	ScopeDrafts
	ScopeUser
	ScopeMentors
	ScopeSettings

	ScopeCollections = ScopeStartups | ScopeDrafts
)

type ChangeKind string

const (
	ChangeLoad     ChangeKind = "load"
	ChangePublish  ChangeKind = "publish"
	ChangeDraft    ChangeKind = "draft"
	ChangeLike     ChangeKind = "like"
	ChangeView     ChangeKind = "view"
	ChangeDelete   ChangeKind = "delete"
	ChangeUser     ChangeKind = "user"
	ChangeSettings ChangeKind = "settings"
	ChangeCatalog  ChangeKind = "catalog"
	ChangeNavigate ChangeKind = "navigate"
	ChangeMentors  ChangeKind = "mentors"
)

// Change describes a completed mutation. Persist names the keys Update writes
// after the mutation function returns.
type Change struct {
	Kind      ChangeKind
	StartupID int64
	Persist   Scope
}

type Listener func(Change)

// LoadReport summarizes Load: whether the first-run wipe happened and which
// keys held undecodable blobs that were discarded.
type LoadReport struct {
	FirstRun  bool
	Discarded []string
}

type likeEntry struct {
	Count       int64 `json:"count"`
	LikedByUser bool  `json:"likedByUser"`
}

// Store owns the State and its key-value mirror. All access goes through
// Read and Update, which hold one mutex for the whole call.
type Store struct {
	mu  sync.Mutex
	kv  kv.Store
	st  *State
	now func() time.Time

	lmu       sync.RWMutex
	listeners []Listener
}

type Option func(*Store)

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, st: newState(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Now() time.Time { return s.now() }

// Subscribe registers a listener called after every successful mutation.
func (s *Store) Subscribe(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(c Change) {
	s.lmu.RLock()
	ls := append([]Listener(nil), s.listeners...)
	s.lmu.RUnlock()
	for _, l := range ls {
		l(c)
	}
}

// Read runs fn with exclusive access to the state. fn must not keep
// references past its return.
func (s *Store) Read(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// Update runs a mutation under the store lock, writes back the scopes the
// returned Change names, then notifies listeners. A mutation error aborts
// without persisting or notifying; a persistence error is returned after
// listeners ran, since the in-memory state already changed.
func (s *Store) Update(ctx context.Context, fn func(*State) (Change, error)) error {
	s.mu.Lock()
	ch, err := fn(s.st)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	perr := s.persist(ctx, ch.Persist)
	s.mu.Unlock()

	s.notify(ch)
	if perr != nil {
		return fmt.Errorf("persist %s: %w", ch.Kind, perr)
	}
	return nil
}

// Persist writes startups, drafts and the likes map, replacing prior content.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, ScopeCollections)
}

func (s *Store) PersistUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, ScopeUser)
}

func (s *Store) PersistMentors(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, ScopeMentors)
}

func (s *Store) PersistSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, ScopeSettings)
}

func (s *Store) persist(ctx context.Context, scope Scope) error {
	var errs []error
	if scope&ScopeStartups != 0 {
		errs = append(errs, s.setJSON(ctx, KeyStartups, nonNil(s.st.startups)))
		likes := make(map[string]likeEntry, len(s.st.startups))
		for _, st := range s.st.startups {
			likes[strconv.FormatInt(st.ID, 10)] = likeEntry{Count: st.Likes, LikedByUser: st.LikedByUser}
		}
		errs = append(errs, s.setJSON(ctx, KeyLikes, likes))
	}
	if scope&ScopeDrafts != 0 {
		errs = append(errs, s.setJSON(ctx, KeyDrafts, nonNil(s.st.drafts)))
	}
	if scope&ScopeUser != 0 {
		if s.st.user == nil {
			errs = append(errs, s.kv.Delete(ctx, KeyUser))
		} else {
			errs = append(errs, s.setJSON(ctx, KeyUser, s.st.user))
		}
	}
	if scope&ScopeMentors != 0 {
		m := s.st.mentors
		if m == nil {
			m = []*models.Mentor{}
		}
		errs = append(errs, s.setJSON(ctx, KeyMentors, m))
	}
	if scope&ScopeSettings != 0 {
		set := s.st.settings
		errs = append(errs,
			s.kv.Set(ctx, KeyTheme, set.Theme),
			s.kv.Set(ctx, KeyLanguage, set.Language),
			s.kv.Set(ctx, KeySidebar, strconv.FormatBool(set.SidebarCollapsed)),
		)
	}
	return errors.Join(errs...)
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(b))
}

func nonNil(list []*models.Startup) []*models.Startup {
	if list == nil {
		return []*models.Startup{}
	}
	return list
}

// Load rebuilds the state from the key-value store. It never fails: corrupt
// blobs are discarded and their keys cleared, backend errors count as absent.
func (s *Store) Load(ctx context.Context) LoadReport {
	s.mu.Lock()
	var report LoadReport
	report.FirstRun = s.firstRun(ctx)

	st := newState()
	var user models.User
	if s.loadJSON(ctx, KeyUser, &user, &report) && user.ID != 0 {
		st.user = &user
	}
	var startups []*models.Startup
	s.loadJSON(ctx, KeyStartups, &startups, &report)
	var drafts []*models.Startup
	s.loadJSON(ctx, KeyDrafts, &drafts, &report)
	var likes map[string]likeEntry
	s.loadJSON(ctx, KeyLikes, &likes, &report)
	var mentors []*models.Mentor
	s.loadJSON(ctx, KeyMentors, &mentors, &report)

	st.startups = compact(startups)
	st.drafts = compact(drafts)
	st.mentors = mentors
	now := s.now()
	for _, su := range st.startups {
		if e, ok := likes[strconv.FormatInt(su.ID, 10)]; ok {
			su.Likes = e.Count
			su.LikedByUser = e.LikedByUser
		} else {
			su.LikedByUser = false
		}
		if su.Comments == nil {
			su.Comments = []models.Comment{}
		}
		st.trackID(su.ID)
	}
	for _, su := range st.startups {
		if su.Rating == 0 {
			su.Rating = rating.Compute(su, st.startups, now)
		}
		su.Rating = rating.Clamp(su.Rating)
	}
	for _, d := range st.drafts {
		d.IsDraft = true
		st.trackID(d.ID)
	}
	st.settings = s.loadSettings(ctx)

	s.st = st
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeLoad})
	return report
}

// firstRun wipes every key once, the first time a store is opened.
func (s *Store) firstRun(ctx context.Context) bool {
	_, found, err := s.kv.Get(ctx, KeyFirstRun)
	if err != nil {
		logger.Warnf("state: read %s: %v", KeyFirstRun, err)
		return false
	}
	if found {
		return false
	}
	for _, k := range Keys {
		if err := s.kv.Delete(ctx, k); err != nil {
			logger.Warnf("state: first run delete %s: %v", k, err)
		}
	}
	if err := s.kv.Set(ctx, KeyFirstRun, "true"); err != nil {
		logger.Warnf("state: set %s: %v", KeyFirstRun, err)
	}
	logger.Infof("state: first run, persisted data cleared")
	return true
}

// loadJSON decodes key into dst. It returns false when the key is absent,
// unreadable or corrupt; corrupt blobs are deleted and reported.
func (s *Store) loadJSON(ctx context.Context, key string, dst any, report *LoadReport) bool {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Warnf("state: read %s: %v", key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warnf("state: discarding corrupt %s: %v", key, err)
		metrics.StorageDiscards.WithLabelValues(key).Inc()
		report.Discarded = append(report.Discarded, key)
		if derr := s.kv.Delete(ctx, key); derr != nil {
			logger.Warnf("state: delete %s: %v", key, derr)
		}
		return false
	}
	return true
}

func (s *Store) loadSettings(ctx context.Context) models.Settings {
	set := models.DefaultSettings()
	if v, ok := s.loadString(ctx, KeyTheme); ok && (v == models.ThemeDark || v == models.ThemeLight) {
		set.Theme = v
	}
	if v, ok := s.loadString(ctx, KeyLanguage); ok && models.ValidLanguage(v) {
		set.Language = v
	}
	if v, ok := s.loadString(ctx, KeySidebar); ok {
		set.SidebarCollapsed = v == "true"
	}
	return set
}

func (s *Store) loadString(ctx context.Context, key string) (string, bool) {
	v, found, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Warnf("state: read %s: %v", key, err)
		return "", false
	}
	return v, found
}

// compact drops null entries left by hand-edited blobs.
func compact(list []*models.Startup) []*models.Startup {
	out := list[:0]
	for _, s := range list {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
