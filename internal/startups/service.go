// Package startups holds the mutation handlers for startups and drafts and
// the derived home and dashboard views.
package startups

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/navigation"
	"github.com/startuphub/startuphub/internal/rating"
	"github.com/startuphub/startuphub/internal/state"
)

var ErrNotConfirmed = errors.New("delete not confirmed")

// PublishInput carries the raw form values. Numeric fields are parsed here;
// blank optional fields become nil.
type PublishInput struct {
	Name            string `form:"name"`
	Goal            string `form:"goal"`
	Description     string `form:"description"`
	Category        string `form:"category"`
	Stage           string `form:"stage"`
	TeamSize        string `form:"teamSize"`
	ProjectCost     string `form:"projectCost"`
	MonthlyExpenses string `form:"monthlyExpenses"`
	InvestmentAsked string `form:"investmentAsked"`
	MarketSize      string `form:"marketSize"`
	TargetAudience  string `form:"targetAudience"`
	Region          string `form:"region"`
	TractionUsers   string `form:"tractionUsers"`
	TractionRevenue string `form:"tractionRevenue"`
	Github          string `form:"github"`
	Website         string `form:"website"`
	ContactEmail    string `form:"contactEmail"`
	TelegramContact string `form:"telegramContact"`
}

// Contact is what a visitor gets when asking to reach a startup.
type Contact struct {
	Name     string
	Email    string
	Telegram string
}

type Service struct {
	store *state.Store
}

func NewService(s *state.Store) *Service {
	return &Service{store: s}
}

// Publish validates the input and inserts the new startup at the head of
// the collection. Missing and invalid fields are reported together.
func (s *Service) Publish(ctx context.Context, in PublishInput) (int64, error) {
	var id int64
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		u := st.CurrentUser()
		if u == nil {
			return state.Change{}, state.ErrNotSignedIn
		}
		su, err := build(in)
		if err != nil {
			return state.Change{}, err
		}
		now := s.store.Now()
		su.ID = st.NextID(now)
		su.CreatedAt, su.UpdatedAt = now, now
		su.Comments = []models.Comment{}
		su.Rating = rating.Default
		su.Author, su.AuthorName = u.ID, u.Name
		st.InsertStartup(su)
		if _, err := navigation.Go(st, state.PageCatalog); err != nil {
			return state.Change{}, err
		}
		id = su.ID
		return state.Change{Kind: state.ChangePublish, StartupID: id, Persist: state.ScopeStartups}, nil
	})
	return id, err
}

func build(in PublishInput) (*models.Startup, error) {
	verr := &models.ValidationError{}
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"goal", in.Goal},
		{"description", in.Description},
		{"category", in.Category},
		{"stage", in.Stage},
		{"contactEmail", in.ContactEmail},
		{"telegramContact", in.TelegramContact},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field)
		}
	}
	category, stage := strings.TrimSpace(in.Category), strings.TrimSpace(in.Stage)
	if category != "" && !models.ValidCategory(category) {
		verr.Add("category")
	}
	if stage != "" && !models.ValidStage(stage) {
		verr.Add("stage")
	}

	num := func(field, v string) *int64 {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			verr.Add(field)
			return nil
		}
		return &n
	}
	su := &models.Startup{
		Name:            strings.TrimSpace(in.Name),
		Goal:            strings.TrimSpace(in.Goal),
		Description:     strings.TrimSpace(in.Description),
		Category:        category,
		Stage:           stage,
		TeamSize:        num("teamSize", in.TeamSize),
		ProjectCost:     num("projectCost", in.ProjectCost),
		MonthlyExpenses: num("monthlyExpenses", in.MonthlyExpenses),
		InvestmentAsked: num("investmentAsked", in.InvestmentAsked),
		MarketSize:      optional(in.MarketSize),
		TargetAudience:  optional(in.TargetAudience),
		Region:          optional(in.Region),
		TractionUsers:   num("tractionUsers", in.TractionUsers),
		TractionRevenue: num("tractionRevenue", in.TractionRevenue),
		Links:           models.Links{Github: strings.TrimSpace(in.Github), Website: strings.TrimSpace(in.Website)},
		ContactEmail:    strings.TrimSpace(in.ContactEmail),
		TelegramContact: strings.TrimSpace(in.TelegramContact),
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return su, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// DraftName is stored when a draft is saved without a name.
const DraftName = "Без названия"

// SaveDraft keeps whatever the form holds. Nothing is required.
func (s *Service) SaveDraft(ctx context.Context, in PublishInput) (int64, error) {
	var id int64
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		if !st.SignedIn() {
			return state.Change{}, state.ErrNotSignedIn
		}
		d := &models.Startup{
			Name:        strings.TrimSpace(in.Name),
			Goal:        strings.TrimSpace(in.Goal),
			Description: strings.TrimSpace(in.Description),
			Category:    strings.TrimSpace(in.Category),
			Stage:       strings.TrimSpace(in.Stage),
			IsDraft:     true,
		}
		if d.Name == "" {
			d.Name = DraftName
		}
		if !models.ValidCategory(d.Category) {
			d.Category = "Other"
		}
		if !models.ValidStage(d.Stage) {
			d.Stage = "idea"
		}
		now := s.store.Now()
		d.ID = st.NextID(now)
		d.CreatedAt = now
		st.AppendDraft(d)
		id = d.ID
		return state.Change{Kind: state.ChangeDraft, StartupID: id, Persist: state.ScopeDrafts}, nil
	})
	return id, err
}

// ToggleLike flips the user's like and recomputes the startup's rating.
// It returns the liked flag after the toggle.
func (s *Service) ToggleLike(ctx context.Context, id int64) (bool, error) {
	var liked bool
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		if !st.SignedIn() {
			return state.Change{}, state.ErrNotSignedIn
		}
		su, ok := st.Find(id)
		if !ok {
			return state.Change{}, state.ErrNotFound
		}
		if su.LikedByUser {
			su.LikedByUser = false
			su.Likes = max(0, su.Likes-1)
		} else {
			su.LikedByUser = true
			su.Likes++
		}
		su.Rating = rating.Compute(su, st.Startups(), s.store.Now())
		liked = su.LikedByUser
		return state.Change{Kind: state.ChangeLike, StartupID: id, Persist: state.ScopeStartups}, nil
	})
	return liked, err
}

// View counts one detail view and returns a snapshot of the startup.
func (s *Service) View(ctx context.Context, id int64) (models.Startup, error) {
	var out models.Startup
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		su, ok := st.Find(id)
		if !ok {
			return state.Change{}, state.ErrNotFound
		}
		su.Views++
		out = *su
		return state.Change{Kind: state.ChangeView, StartupID: id, Persist: state.ScopeStartups}, nil
	})
	return out, err
}

// Get returns a snapshot without counting a view.
func (s *Service) Get(id int64) (models.Startup, error) {
	var (
		out models.Startup
		ok  bool
	)
	s.store.Read(func(st *state.State) {
		var su *models.Startup
		if su, ok = st.Find(id); ok {
			out = *su
		}
	})
	if !ok {
		return out, state.ErrNotFound
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		if !st.RemoveStartup(id) {
			return state.Change{}, state.ErrNotFound
		}
		return state.Change{Kind: state.ChangeDelete, StartupID: id, Persist: state.ScopeStartups}, nil
	})
}

func (s *Service) Contact(id int64) (Contact, error) {
	su, err := s.Get(id)
	if err != nil {
		return Contact{}, err
	}
	return Contact{Name: su.Name, Email: su.ContactEmail, Telegram: su.TelegramContact}, nil
}

// DashboardStats are the counters shown in the personal account.
type DashboardStats struct {
	Published     int
	Drafts        int
	LikesReceived int64
	MyLikes       int
	Comments      int
}

// Dashboard returns the current user's published startups and counters.
// Drafts are counted across the whole instance since there is one profile.
func Dashboard(st *state.State) ([]*models.Startup, DashboardStats) {
	var stats DashboardStats
	u := st.CurrentUser()
	if u == nil {
		return nil, stats
	}
	var mine []*models.Startup
	for _, su := range st.Startups() {
		if su.LikedByUser {
			stats.MyLikes++
		}
		if su.IsDraft || su.Author != u.ID {
			continue
		}
		mine = append(mine, su)
		stats.LikesReceived += su.Likes
		stats.Comments += len(su.Comments)
	}
	stats.Published = len(mine)
	stats.Drafts = len(st.Drafts())
	return mine, stats
}

// Stats are the platform counters on the home page.
type Stats struct {
	Startups        int   `json:"startups"`
	Mentors         int   `json:"mentors"`
	Deals           int   `json:"deals"`
	InvestmentAsked int64 `json:"investmentAsked"`
}

func PlatformStats(st *state.State) Stats {
	pub := st.Published()
	out := Stats{Startups: len(pub), Mentors: len(st.Mentors())}
	for _, su := range pub {
		if su.InvestmentAsked != nil {
			out.InvestmentAsked += *su.InvestmentAsked
		}
	}
	return out
}

// Home groups the published startups into the home page sections.
type Home struct {
	TopRated []*models.Startup
	TopLiked []*models.Startup
	Latest   []*models.Startup
	Featured []*models.Startup
}

const (
	topRatedLimit = 5
	sectionLimit  = 6
	featuredMin   = 4.0
)

func HomeSections(st *state.State) Home {
	pub := st.Published()
	var h Home
	h.TopRated = top(pub, topRatedLimit, func(a, b *models.Startup) bool { return a.Rating > b.Rating })
	h.TopLiked = top(pub, sectionLimit, func(a, b *models.Startup) bool { return a.Likes > b.Likes })
	h.Latest = top(pub, sectionLimit, func(a, b *models.Startup) bool { return a.CreatedAt.After(b.CreatedAt) })
	for _, su := range pub {
		if su.Rating >= featuredMin {
			h.Featured = append(h.Featured, su)
			if len(h.Featured) == sectionLimit {
				break
			}
		}
	}
	return h
}

// top returns the first n of a stable sort by less, leaving list untouched.
func top(list []*models.Startup, n int, less func(a, b *models.Startup) bool) []*models.Startup {
	sorted := append([]*models.Startup(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
