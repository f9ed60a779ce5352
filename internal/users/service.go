package users

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/navigation"
	"github.com/startuphub/startuphub/internal/state"
)

var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrTelegramRequired = errors.New("telegram username required")
	ErrTelegramFormat   = errors.New("telegram username must look like @name")
)

const MinPasswordLength = 6

var telegramHandle = regexp.MustCompile(`^@[A-Za-z0-9_]{5,32}$`)

// Service performs the simulated sign-in flows. No credential is checked or
// stored; a user record is fabricated from the submitted form.
type Service struct {
	store *state.Store
}

func NewService(s *state.Store) *Service {
	return &Service{store: s}
}

// Login signs in as a founder named after the email's local part.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	var out models.User
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		now := s.store.Now()
		name, _, _ := strings.Cut(email, "@")
		u := &models.User{
			ID:        st.NextID(now),
			Name:      name,
			Email:     email,
			Role:      models.RoleFounder,
			CreatedAt: now,
		}
		st.SetUser(u)
		out = *u
		// a visitor sent to login from the publish form lands back on it
		if st.CurrentPage() == state.PagePublish {
			if _, err := navigation.Go(st, state.PagePublish); err != nil {
				return state.Change{}, err
			}
		}
		return state.Change{Kind: state.ChangeUser, Persist: state.ScopeUser}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
	Role     string `form:"role"`
}

// Register signs in a new user and opens the dashboard.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name, email := strings.TrimSpace(in.Name), strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" || in.Confirm == "" || in.Role == "" {
		return nil, ErrMissingFields
	}
	if in.Password != in.Confirm {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !models.ValidRole(in.Role) {
		return nil, &models.ValidationError{Fields: []string{"role"}}
	}
	var out models.User
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		now := s.store.Now()
		u := &models.User{
			ID:        st.NextID(now),
			Name:      name,
			Email:     email,
			Role:      in.Role,
			CreatedAt: now,
		}
		st.SetUser(u)
		out = *u
		if _, err := navigation.Go(st, state.PageDashboard); err != nil {
			return state.Change{}, err
		}
		return state.Change{Kind: state.ChangeUser, Persist: state.ScopeUser}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the user. Protected pages fall back to home.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		st.SetUser(nil)
		if p := st.CurrentPage(); p == state.PageDashboard || p == state.PagePublish {
			if _, err := navigation.Go(st, state.PageHome); err != nil {
				return state.Change{}, err
			}
		}
		return state.Change{Kind: state.ChangeUser, Persist: state.ScopeUser}, nil
	})
}

// ProfileInput is the profile form. Blank name or email keep the old value.
type ProfileInput struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Bio   string `form:"bio"`
	Role  string `form:"role"`
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) error {
	if in.Role != "" && !models.ValidRole(in.Role) {
		return &models.ValidationError{Fields: []string{"role"}}
	}
	return s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		u := st.CurrentUser()
		if u == nil {
			return state.Change{}, state.ErrNotSignedIn
		}
		if v := strings.TrimSpace(in.Name); v != "" {
			u.Name = v
		}
		if v := strings.TrimSpace(in.Email); v != "" {
			u.Email = v
		}
		u.Bio = in.Bio
		if in.Role != "" {
			u.Role = in.Role
		}
		return state.Change{Kind: state.ChangeUser, Persist: state.ScopeUser}, nil
	})
}

// LinkTelegram attaches a Telegram handle to the profile.
func (s *Service) LinkTelegram(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", ErrTelegramRequired
	}
	if !telegramHandle.MatchString(handle) {
		return "", ErrTelegramFormat
	}
	err := s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		u := st.CurrentUser()
		if u == nil {
			return state.Change{}, state.ErrNotSignedIn
		}
		u.TelegramUsername = handle
		return state.Change{Kind: state.ChangeUser, Persist: state.ScopeUser}, nil
	})
	return handle, err
}

// CurrentUserID reports the signed-in profile's id.
func (s *Service) CurrentUserID() (int64, bool) {
	var (
		id int64
		ok bool
	)
	s.store.Read(func(st *state.State) {
		if u := st.CurrentUser(); u != nil {
			id, ok = u.ID, true
		}
	})
	return id, ok
}
