// Package view maps domain entities to plain display data. Nothing here
// touches the store or produces markup.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/rating"
)

type StartupCard struct {
	ID         int64
	Name       string
	Goal       string
	Initials   string
	Color      string
	Liked      bool
	Likes      int64
	Comments   int
	// Rating rounds to one decimal while Stars floors, so 4.96 reads
	// "5.0" over four and a half stars.
	Rating     string
	Stars      []rating.Star
	Category   string
	StageLabel string
	StageColor string
	Date       string
	Views      string
}

func NewStartupCard(s *models.Startup, lang string, now time.Time) StartupCard {
	r := s.Rating
	if r == 0 {
		r = rating.Default
	}
	return StartupCard{
		ID:         s.ID,
		Name:       s.Name,
		Goal:       s.Goal,
		Initials:   Initials(s.Name),
		Color:      Color(s.ID),
		Liked:      s.LikedByUser,
		Likes:      s.Likes,
		Comments:   len(s.Comments),
		Rating:     strconv.FormatFloat(r, 'f', 1, 64),
		Stars:      rating.Stars(r),
		Category:   s.Category,
		StageLabel: StageLabel(s.Stage, lang),
		StageColor: StageColor(s.Stage),
		Date:       FormatDate(s.CreatedAt, now, lang),
		Views:      fmt.Sprintf("%d %s", s.Views, T(lang, "views")),
	}
}

func StartupCards(list []*models.Startup, lang string, now time.Time) []StartupCard {
	out := make([]StartupCard, len(list))
	for i, s := range list {
		out[i] = NewStartupCard(s, lang, now)
	}
	return out
}

// Initials takes the first letter of up to two words, upper-cased.
func Initials(name string) string {
	var b []rune
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		b = append(b, unicode.ToUpper(r[0]))
		if len(b) == 2 {
			break
		}
	}
	return string(b)
}

// Color derives a stable logo background from the id.
func Color(id int64) string {
	hue := id % 360
	if hue < 0 {
		hue += 360
	}
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", hue)
}

// FormatDate renders t relative to now: today, yesterday, days and weeks
// ago within a month, else a localized calendar date.
func FormatDate(t, now time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return T(lang, "date.today")
	case days == 1:
		return T(lang, "date.yesterday")
	case days < 7:
		return fmt.Sprintf(T(lang, "date.days"), days)
	case days < 30:
		return fmt.Sprintf(T(lang, "date.weeks"), days/7)
	}
	if lang == models.LangEN {
		return t.Format("01/02/2006")
	}
	return t.Format("02.01.2006")
}

type EmptyState struct {
	Section string
	Title   string
	Message string
	CTA     string
}

// EmptyStartups is shown in place of an empty grid. The catalog says no
// startups were found; home sections say there are no projects.
func EmptyStartups(lang, section string, catalog bool) EmptyState {
	title := T(lang, "empty.projects")
	if catalog {
		title = T(lang, "empty.startups")
	}
	return EmptyState{
		Section: section,
		Title:   title,
		Message: T(lang, "empty.message"),
		CTA:     T(lang, "empty.cta"),
	}
}

type Pagination struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

func NewPagination(page, total int) Pagination {
	return Pagination{
		Page:       page,
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    total > 0 && page < total,
	}
}

type DashboardCard struct {
	ID       int64
	Name     string
	Goal     string
	Views    int64
	Likes    int64
	Comments int
	Category string
	Stage    string
	Date     string
}

func NewDashboardCard(s *models.Startup, lang string, now time.Time) DashboardCard {
	return DashboardCard{
		ID:       s.ID,
		Name:     s.Name,
		Goal:     s.Goal,
		Views:    s.Views,
		Likes:    s.Likes,
		Comments: len(s.Comments),
		Category: s.Category,
		Stage:    s.Stage,
		Date:     FormatDate(s.CreatedAt, now, lang),
	}
}

type MentorCard struct {
	ID         int64
	Name       string
	Initials   string
	Specialty  string
	Experience string
	Rating     string
	Projects   int
	Available  bool
}

func NewMentorCard(m *models.Mentor) MentorCard {
	return MentorCard{
		ID:         m.ID,
		Name:       m.Name,
		Initials:   Initials(m.Name),
		Specialty:  m.Specialty,
		Experience: m.Experience,
		Rating:     strconv.FormatFloat(m.Rating, 'f', 1, 64),
		Projects:   m.Projects,
		Available:  m.Available,
	}
}

func MentorCards(list []*models.Mentor) []MentorCard {
	out := make([]MentorCard, len(list))
	for i, m := range list {
		out[i] = NewMentorCard(m)
	}
	return out
}

type CourseCard struct {
	models.Course
	HasStudentPrice bool
}

func CourseCards(list []models.Course) []CourseCard {
	out := make([]CourseCard, len(list))
	for i, c := range list {
		out[i] = CourseCard{Course: c, HasStudentPrice: c.StudentPrice != ""}
	}
	return out
}

const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// Notification is the transient message shown after an action.
type Notification struct {
	Kind string
	Text string
}

func Notify(kind, text string) *Notification {
	return &Notification{Kind: kind, Text: text}
}

// ContactText formats a startup's contacts; telegram is optional.
func ContactText(lang, email, telegram string) string {
	v := email
	if telegram != "" {
		v += ", Telegram: " + telegram
	}
	return fmt.Sprintf(T(lang, "notify.contact"), v)
}

// Field is one labelled value of the detail view.
type Field struct {
	Label string
	Value string
}

type Detail struct {
	Card        StartupCard
	Description string
	AuthorName  string
	Email       string
	Telegram    string
	Github      string
	Website     string
	Fields      []Field
}

// NewDetail lists the optional metrics that were filled in, in form order.
func NewDetail(s *models.Startup, lang string, now time.Time) Detail {
	d := Detail{
		Card:        NewStartupCard(s, lang, now),
		Description: s.Description,
		AuthorName:  s.AuthorName,
		Email:       s.ContactEmail,
		Telegram:    s.TelegramContact,
		Github:      s.Links.Github,
		Website:     s.Links.Website,
	}
	ints := []struct {
		label string
		v     *int64
	}{
		{"Team size", s.TeamSize},
		{"Project cost", s.ProjectCost},
		{"Monthly expenses", s.MonthlyExpenses},
		{"Investment asked", s.InvestmentAsked},
		{"Users", s.TractionUsers},
		{"Revenue", s.TractionRevenue},
	}
	for _, f := range ints {
		if f.v != nil {
			d.Fields = append(d.Fields, Field{Label: f.label, Value: strconv.FormatInt(*f.v, 10)})
		}
	}
	strs := []struct {
		label string
		v     *string
	}{
		{"Market size", s.MarketSize},
		{"Target audience", s.TargetAudience},
		{"Region", s.Region},
	}
	for _, f := range strs {
		if f.v != nil {
			d.Fields = append(d.Fields, Field{Label: f.label, Value: *f.v})
		}
	}
	return d
}
