package startups

import (
	"context"
	"testing"
	"time"

	"github.com/startuphub/startuphub/internal/catalog"
	"github.com/startuphub/startuphub/internal/kv"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/rating"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T, signedIn bool) (*state.Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	require.NoError(t, mem.Set(context.Background(), state.KeyFirstRun, "true"))
	s := state.NewStore(mem, state.WithClock(func() time.Time { return now }))
	s.Load(context.Background())
	if signedIn {
		s.Read(func(st *state.State) {
			st.SetUser(&models.User{ID: 7, Name: "ann", Email: "ann@example.com", Role: models.RoleFounder})
		})
	}
	return s, mem
}

func validInput() PublishInput {
	return PublishInput{
		Name:            " Acme ",
		Goal:            "Ship rockets",
		Description:     "We ship **rockets**",
		Category:        "IT",
		Stage:           "mvp",
		TeamSize:        "4",
		InvestmentAsked: "1000",
		Region:          "  ",
		ContactEmail:    "team@acme.io",
		TelegramContact: "@acme",
	}
}

func count(s *state.Store) (n int) {
	s.Read(func(st *state.State) { n = len(st.Startups()) })
	return
}

func TestPublish_Success(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t, true)
	svc := NewService(s)
	s.Read(func(st *state.State) { st.InsertStartup(&models.Startup{ID: 1, Name: "Old", Category: "AI"}) })

	id, err := svc.Publish(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, now.UnixMilli(), id)

	s.Read(func(st *state.State) {
		require.Equal(t, id, st.Startups()[0].ID)
		su := st.Startups()[0]
		assert.Equal(t, "Acme", su.Name)
		assert.Equal(t, rating.Default, su.Rating)
		assert.Equal(t, int64(7), su.Author)
		assert.Equal(t, "ann", su.AuthorName)
		require.NotNil(t, su.TeamSize)
		assert.Equal(t, int64(4), *su.TeamSize)
		assert.Nil(t, su.Region)
		assert.Nil(t, su.ProjectCost)
		assert.NotNil(t, su.Comments)
		assert.Equal(t, state.PageCatalog, st.CurrentPage())
		assert.Equal(t, []int64{id, 1}, st.Catalog().Pinned)
	})

	raw, found, err := mem.Get(ctx, state.KeyStartups)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"name":"Acme"`)
}

func TestPublish_ShowsFirstCatalogPage(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, true)
	s.Read(func(st *state.State) {
		for i := int64(25); i >= 1; i-- {
			st.InsertStartup(&models.Startup{ID: i, Category: "IT", Stage: "idea"})
		}
	})
	moved, err := catalog.NewService(s).GoToPage(ctx, 3)
	require.NoError(t, err)
	require.True(t, moved)

	id, err := NewService(s).Publish(ctx, validInput())
	require.NoError(t, err)

	s.Read(func(st *state.State) {
		r := catalog.Current(st)
		require.Equal(t, 1, r.Page)
		require.NotEmpty(t, r.Items)
		assert.Equal(t, id, r.Items[0].ID)
	})
}

func TestPublish_CollectsAllMissingFields(t *testing.T) {
	s, mem := newStore(t, true)
	svc := NewService(s)

	_, err := svc.Publish(context.Background(), PublishInput{Name: "x", Category: "Space", TeamSize: "many"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"goal", "description", "stage", "contactEmail", "telegramContact", "category", "teamSize"}, verr.Fields)
	assert.Zero(t, count(s))
	_, found, _ := mem.Get(context.Background(), state.KeyStartups)
	assert.False(t, found)
}

func TestPublish_RequiresUser(t *testing.T) {
	s, _ := newStore(t, false)
	_, err := NewService(s).Publish(context.Background(), validInput())
	require.ErrorIs(t, err, state.ErrNotSignedIn)
	assert.Zero(t, count(s))
}

func TestPublish_IDsStayUnique(t *testing.T) {
	s, _ := newStore(t, true)
	svc := NewService(s)
	a, err := svc.Publish(context.Background(), validInput())
	require.NoError(t, err)
	b, err := svc.Publish(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveDraft_Defaults(t *testing.T) {
	s, mem := newStore(t, true)
	id, err := NewService(s).SaveDraft(context.Background(), PublishInput{Goal: "later"})
	require.NoError(t, err)

	s.Read(func(st *state.State) {
		require.Len(t, st.Drafts(), 1)
		d := st.Drafts()[0]
		assert.Equal(t, id, d.ID)
		assert.Equal(t, DraftName, d.Name)
		assert.Equal(t, "Other", d.Category)
		assert.Equal(t, "idea", d.Stage)
		assert.True(t, d.IsDraft)
		assert.Empty(t, st.Published())
	})
	_, found, _ := mem.Get(context.Background(), state.KeyDrafts)
	assert.True(t, found)
}

func TestToggleLike_TwiceRestores(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, true)
	s.Read(func(st *state.State) {
		st.InsertStartup(&models.Startup{ID: 1, Likes: 3, Views: 10, Rating: 3})
		st.InsertStartup(&models.Startup{ID: 2, Likes: 5, Views: 2, Rating: 3})
	})
	svc := NewService(s)

	liked, err := svc.ToggleLike(ctx, 1)
	require.NoError(t, err)
	require.True(t, liked)
	s.Read(func(st *state.State) {
		su, _ := st.Find(1)
		assert.Equal(t, int64(4), su.Likes)
		assert.GreaterOrEqual(t, su.Rating, 1.0)
		assert.LessOrEqual(t, su.Rating, 5.0)
	})

	liked, err = svc.ToggleLike(ctx, 1)
	require.NoError(t, err)
	require.False(t, liked)
	s.Read(func(st *state.State) {
		su, _ := st.Find(1)
		assert.Equal(t, int64(3), su.Likes)
		assert.False(t, su.LikedByUser)
	})
}

func TestToggleLike_FloorsAtZero(t *testing.T) {
	s, _ := newStore(t, true)
	s.Read(func(st *state.State) { st.InsertStartup(&models.Startup{ID: 1, Likes: 0, LikedByUser: true}) })
	liked, err := NewService(s).ToggleLike(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, liked)
	s.Read(func(st *state.State) {
		su, _ := st.Find(1)
		assert.Zero(t, su.Likes)
	})
}

func TestToggleLike_Errors(t *testing.T) {
	s, _ := newStore(t, false)
	s.Read(func(st *state.State) { st.InsertStartup(&models.Startup{ID: 1}) })
	_, err := NewService(s).ToggleLike(context.Background(), 1)
	require.ErrorIs(t, err, state.ErrNotSignedIn)

	s2, _ := newStore(t, true)
	_, err = NewService(s2).ToggleLike(context.Background(), 99)
	require.ErrorIs(t, err, state.ErrNotFound)
}

func TestView_IncrementsAndPersists(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t, false)
	s.Read(func(st *state.State) { st.InsertStartup(&models.Startup{ID: 1, Views: 2, Rating: 2.5}) })

	got, err := NewService(s).View(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Views)
	assert.Equal(t, 2.5, got.Rating)

	raw, _, _ := mem.Get(ctx, state.KeyStartups)
	assert.Contains(t, raw, `"views":3`)

	_, err = NewService(s).View(ctx, 5)
	require.ErrorIs(t, err, state.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, true)
	s.Read(func(st *state.State) {
		st.InsertStartup(&models.Startup{ID: 1})
		st.InsertStartup(&models.Startup{ID: 2})
	})
	svc := NewService(s)

	require.ErrorIs(t, svc.Delete(ctx, 1, false), ErrNotConfirmed)
	require.Equal(t, 2, count(s))

	require.NoError(t, svc.Delete(ctx, 1, true))
	require.Equal(t, 1, count(s))
	_, err := svc.Get(1)
	require.ErrorIs(t, err, state.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, 1, true), state.ErrNotFound)
}

func TestContact(t *testing.T) {
	s, _ := newStore(t, false)
	s.Read(func(st *state.State) {
		st.InsertStartup(&models.Startup{ID: 1, Name: "Acme", ContactEmail: "a@b.c", TelegramContact: "@acme"})
	})
	c, err := NewService(s).Contact(1)
	require.NoError(t, err)
	assert.Equal(t, Contact{Name: "Acme", Email: "a@b.c", Telegram: "@acme"}, c)
}

func TestDashboard(t *testing.T) {
	s, _ := newStore(t, true)
	var (
		mine  []*models.Startup
		stats DashboardStats
	)
	s.Read(func(st *state.State) {
		st.InsertStartup(&models.Startup{ID: 1, Author: 7, Likes: 2, Comments: []models.Comment{{Text: "hi"}}})
		st.InsertStartup(&models.Startup{ID: 2, Author: 8, Likes: 9, LikedByUser: true})
		st.InsertStartup(&models.Startup{ID: 3, Author: 7, Likes: 1, LikedByUser: true})
		st.AppendDraft(&models.Startup{ID: 4, IsDraft: true})
		mine, stats = Dashboard(st)
	})
	require.Len(t, mine, 2)
	assert.Equal(t, DashboardStats{Published: 2, Drafts: 1, LikesReceived: 3, MyLikes: 2, Comments: 1}, stats)
}

func TestPlatformStats(t *testing.T) {
	s, _ := newStore(t, false)
	ask := int64(500)
	var got Stats
	s.Read(func(st *state.State) {
		st.InsertStartup(&models.Startup{ID: 1, InvestmentAsked: &ask})
		st.InsertStartup(&models.Startup{ID: 2, InvestmentAsked: &ask})
		st.InsertStartup(&models.Startup{ID: 3})
		st.SetMentors([]*models.Mentor{{ID: 1}})
		got = PlatformStats(st)
	})
	assert.Equal(t, Stats{Startups: 3, Mentors: 1, InvestmentAsked: 1000}, got)
}

func TestHomeSections(t *testing.T) {
	s, _ := newStore(t, false)
	var h Home
	s.Read(func(st *state.State) {
		for i := int64(1); i <= 8; i++ {
			st.InsertStartup(&models.Startup{
				ID:        i,
				Likes:     i,
				Rating:    float64(i%5) + 1,
				CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			})
		}
		h = HomeSections(st)
	})
	require.Len(t, h.TopRated, 5)
	assert.Equal(t, 5.0, h.TopRated[0].Rating)
	require.Len(t, h.TopLiked, 6)
	assert.Equal(t, int64(8), h.TopLiked[0].ID)
	require.Len(t, h.Latest, 6)
	assert.Equal(t, int64(1), h.Latest[0].ID)
	for _, f := range h.Featured {
		assert.GreaterOrEqual(t, f.Rating, 4.0)
	}
	assert.Len(t, h.Featured, 3)
}
