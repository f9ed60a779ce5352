package state

import (
	"errors"
	"time"

	"github.com/startuphub/startuphub/internal/models"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNotFound    = errors.New("startup not found")
)

const (
	PageHome      = "home"
	PageCatalog   = "catalog"
	PagePublish   = "publish"
	PageInvestors = "investors"
	PageLearning  = "learning"
	PageDashboard = "dashboard"
)

// Cursor is the catalog position: filter axes, search query, page number and
// the ids of freshly published startups shown first regardless of criteria.
type Cursor struct {
	Category string
	Stage    string
	Query    string
	Page     int
	Pinned   []int64
}

func NewCursor() Cursor {
	return Cursor{Category: models.All, Stage: models.All, Page: 1}
}

// State is the single source of truth. It is not safe for concurrent use;
// Store serializes access to it.
type State struct {
	startups []*models.Startup
	drafts   []*models.Startup
	mentors  []*models.Mentor
	user     *models.User
	settings models.Settings
	cursor   Cursor
	page     string
	lastID   int64
}

func newState() *State {
	return &State{settings: models.DefaultSettings(), cursor: NewCursor(), page: PageHome}
}

// Startups returns the canonical collection, newest publish first.
func (s *State) Startups() []*models.Startup { return s.startups }

// Published returns the non-draft startups of the canonical collection.
func (s *State) Published() []*models.Startup {
	out := make([]*models.Startup, 0, len(s.startups))
	for _, st := range s.startups {
		if !st.IsDraft {
			out = append(out, st)
		}
	}
	return out
}

func (s *State) Drafts() []*models.Startup { return s.drafts }
func (s *State) Mentors() []*models.Mentor { return s.mentors }
func (s *State) CurrentUser() *models.User { return s.user }
func (s *State) Settings() models.Settings { return s.settings }
func (s *State) Catalog() Cursor { return s.cursor }
func (s *State) CurrentPage() string { return s.page }
func (s *State) SignedIn() bool { return s.user != nil }
func (s *State) SetUser(u *models.User) { s.user = u }
func (s *State) SetSettings(v models.Settings) { s.settings = v }
func (s *State) SetPage(p string) { s.page = p }
func (s *State) SetCatalog(c Cursor) { s.cursor = c }

// SetMentors replaces the mentor collection.
func (s *State) SetMentors(m []*models.Mentor) { s.mentors = m }

// Find returns the canonical startup with the given id.
func (s *State) Find(id int64) (*models.Startup, bool) {
	for _, st := range s.startups {
		if st.ID == id {
			return st, true
		}
	}
	return nil, false
}

// NextID returns a millisecond timestamp id, bumped past every id handed out
// so far so that two creations within one millisecond stay distinct.
func (s *State) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// InsertStartup puts st at the head of the canonical collection and pins it
// at the head of the catalog view.
func (s *State) InsertStartup(st *models.Startup) {
	s.startups = append([]*models.Startup{st}, s.startups...)
	s.cursor.Pinned = append([]int64{st.ID}, s.cursor.Pinned...)
	s.trackID(st.ID)
}

func (s *State) AppendDraft(d *models.Startup) {
	s.drafts = append(s.drafts, d)
	s.trackID(d.ID)
}

// RemoveStartup deletes the startup with the given id from the canonical
// collection. Views are derived, so nothing else needs patching.
func (s *State) RemoveStartup(id int64) bool {
	for i, st := range s.startups {
		if st.ID == id {
			s.startups = append(s.startups[:i], s.startups[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) trackID(id int64) {
	if id > s.lastID {
		s.lastID = id
	}
}
