package view

import (
	"time"

	"github.com/startuphub/startuphub/internal/catalog"
	"github.com/startuphub/startuphub/internal/courses"
	"github.com/startuphub/startuphub/internal/mentors"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/navigation"
	"github.com/startuphub/startuphub/internal/startups"
	"github.com/startuphub/startuphub/internal/state"
)

// AvailableMentorsLimit caps the mentor list on the learning page.
const AvailableMentorsLimit = 4

type NavItem struct {
	ID     string
	Title  string
	Active bool
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Section is one titled startup grid of the home page.
type Section struct {
	Title string
	Cards []StartupCard
	Empty *EmptyState
}

type CatalogView struct {
	Cards      []StartupCard
	Empty      *EmptyState
	Pagination Pagination
	Query      string
	Categories []Option
	Stages     []Option
}

type DashboardView struct {
	Cards  []DashboardCard
	Drafts []DashboardCard
	Empty  *EmptyState
	Stats  startups.DashboardStats
}

// Flash carries one-shot output of the action that triggered the render.
type Flash struct {
	Notification *Notification
	LoginPrompt  bool
	Detail       *Detail
	Confirm      *Confirm
}

// Confirm asks before deleting a startup. Token is the signed confirmation.
type Confirm struct {
	StartupID int64
	Name      string
	Question  string
	Token     string
}

// App is everything the page template needs.
type App struct {
	Lang             string
	Theme            string
	SidebarCollapsed bool
	Page             string
	Title            string
	SearchVisible    bool
	Nav              []NavItem
	User             *models.User
	TelegramStatus   string
	Stats            startups.Stats

	TopRated Section
	TopLiked Section
	Latest   Section
	Featured Section

	Catalog   CatalogView
	Dashboard DashboardView

	TopMentors       []MentorCard
	FinanceMentors   []MentorCard
	AvailableMentors []MentorCard
	MentorsEmpty     *EmptyState
	Courses          []CourseCard
	CoursesEmpty     string

	Roles     []string
	Languages []string

	Flash
}

// Build projects the whole state into an App. It must run under Store.Read
// or Store.Update; the result holds no pointers into the state except User,
// which is copied.
func Build(st *state.State, now time.Time, flash Flash) App {
	set := st.Settings()
	lang := set.Language
	page := st.CurrentPage()

	a := App{
		Lang:             lang,
		Theme:            set.Theme,
		SidebarCollapsed: set.SidebarCollapsed,
		Page:             page,
		Title:            navigation.Title(page, lang),
		SearchVisible:    navigation.SearchVisible(page),
		Stats:            startups.PlatformStats(st),
		Roles:            models.Roles,
		Languages:        models.Languages,
		Flash:            flash,
	}
	for _, p := range navigation.Pages {
		a.Nav = append(a.Nav, NavItem{ID: p, Title: navigation.Title(p, lang), Active: p == page})
	}
	if u := st.CurrentUser(); u != nil {
		cp := *u
		a.User = &cp
		a.TelegramStatus = "Telegram: " + u.TelegramUsername
		if u.TelegramUsername == "" {
			a.TelegramStatus = T(lang, "telegram.none")
		}
	}

	home := startups.HomeSections(st)
	a.TopRated = section(T(lang, "section.topRated"), home.TopRated, lang, now)
	a.TopLiked = section(T(lang, "section.topLiked"), home.TopLiked, lang, now)
	a.Latest = section(T(lang, "section.latest"), home.Latest, lang, now)
	a.Featured = section(T(lang, "section.featured"), home.Featured, lang, now)

	a.Catalog = buildCatalog(st, lang, now)

	mine, stats := startups.Dashboard(st)
	for _, s := range mine {
		a.Dashboard.Cards = append(a.Dashboard.Cards, NewDashboardCard(s, lang, now))
	}
	for _, d := range st.Drafts() {
		a.Dashboard.Drafts = append(a.Dashboard.Drafts, NewDashboardCard(d, lang, now))
	}
	a.Dashboard.Stats = stats
	if len(mine) == 0 {
		e := EmptyStartups(lang, "", false)
		a.Dashboard.Empty = &e
	}

	if len(st.Mentors()) == 0 {
		a.MentorsEmpty = &EmptyState{Title: T(lang, "empty.mentors"), Message: T(lang, "empty.mentorsMsg")}
	}
	a.TopMentors = MentorCards(mentors.Top(st, mentors.TopLimit))
	a.FinanceMentors = MentorCards(mentors.Finance(st, mentors.FinanceLimit))
	a.AvailableMentors = MentorCards(mentors.Available(st, AvailableMentorsLimit))

	a.Courses = CourseCards(courses.All())
	if len(a.Courses) == 0 {
		a.CoursesEmpty = T(lang, "empty.courses")
	}
	return a
}

func section(title string, list []*models.Startup, lang string, now time.Time) Section {
	s := Section{Title: title, Cards: StartupCards(list, lang, now)}
	if len(list) == 0 {
		e := EmptyStartups(lang, title, false)
		s.Empty = &e
	}
	return s
}

func buildCatalog(st *state.State, lang string, now time.Time) CatalogView {
	res := catalog.Current(st)
	c := st.Catalog()
	v := CatalogView{
		Cards:      StartupCards(res.Items, lang, now),
		Pagination: NewPagination(res.Page, res.TotalPages),
		Query:      c.Query,
	}
	if len(res.Items) == 0 {
		e := EmptyStartups(lang, "", true)
		v.Empty = &e
	}
	v.Categories = append(v.Categories, Option{Value: models.All, Label: models.All, Selected: c.Category == models.All})
	for _, cat := range models.Categories {
		v.Categories = append(v.Categories, Option{Value: cat, Label: cat, Selected: c.Category == cat})
	}
	v.Stages = append(v.Stages, Option{Value: models.All, Label: models.All, Selected: c.Stage == models.All})
	for _, s := range models.Stages {
		v.Stages = append(v.Stages, Option{Value: s, Label: StageLabel(s, lang), Selected: c.Stage == s})
	}
	return v
}
