package models

import "time"

// Categories and Stages are the accepted enum values, in display order.
var (
	Categories = []string{"IT", "AI", "FinTech", "EdTech", "Health", "Eco", "Ecommerce", "Other"}
	Stages     = []string{"idea", "mvp", "beta", "ready", "scaling"}
)

// All is the wildcard used by catalog filters.
const All = "all"

func ValidCategory(c string) bool { return contains(Categories, c) }
func ValidStage(s string) bool    { return contains(Stages, s) }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type Links struct {
	Github  string `json:"github"`
	Website string `json:"website"`
}

// Comment is kept for shape compatibility; no flow creates comments yet.
type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Startup is a published project or a draft. Optional numeric and text
// fields are nil when the form left them blank.
type Startup struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Goal            string    `json:"goal"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Stage           string    `json:"stage"`
	TeamSize        *int64    `json:"teamSize,omitempty"`
	ProjectCost     *int64    `json:"projectCost,omitempty"`
	MonthlyExpenses *int64    `json:"monthlyExpenses,omitempty"`
	InvestmentAsked *int64    `json:"investmentAsked,omitempty"`
	MarketSize      *string   `json:"marketSize,omitempty"`
	TargetAudience  *string   `json:"targetAudience,omitempty"`
	Region          *string   `json:"region,omitempty"`
	TractionUsers   *int64    `json:"tractionUsers,omitempty"`
	TractionRevenue *int64    `json:"tractionRevenue,omitempty"`
	Links           Links     `json:"links"`
	ContactEmail    string    `json:"contactEmail,omitempty"`
	TelegramContact string    `json:"telegramContact,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitzero"`
	UpdatedAt       time.Time `json:"updatedAt,omitzero"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	LikedByUser     bool      `json:"likedByUser"`
	Comments        []Comment `json:"comments"`
	Rating          float64   `json:"rating"`
	Author          int64     `json:"author,omitempty"`
	AuthorName      string    `json:"authorName,omitempty"`
	IsDraft         bool      `json:"isDraft"`
}
