package models

import "time"

const (
	RoleFounder  = "founder"
	RoleInvestor = "investor"
	RoleMentor   = "mentor"
)

var Roles = []string{RoleFounder, RoleInvestor, RoleMentor}

func ValidRole(r string) bool { return contains(Roles, r) }

// User is the single signed-in profile of this instance.
type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Bio              string    `json:"bio"`
	TelegramUsername string    `json:"telegramUsername,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Mentor struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Experience string  `json:"experience"`
	Rating     float64 `json:"rating"`
	Projects   int     `json:"projects"`
	Available  bool    `json:"available"`
	Avatar     string  `json:"avatar,omitempty"`
}

type Course struct {
	ID           int    `json:"id"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	Price        string `json:"price"`
	StudentPrice string `json:"studentPrice"`
	Image        string `json:"image"`
	Link         string `json:"link"`
	Category     string `json:"category"`
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	LangRU = "ru"
	LangEN = "en"
	LangKZ = "kz"
)

var Languages = []string{LangRU, LangEN, LangKZ}

func ValidLanguage(l string) bool { return contains(Languages, l) }

type Settings struct {
	Theme            string `json:"theme"`
	Language         string `json:"language"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeDark, Language: LangRU}
}
