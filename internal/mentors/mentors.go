// Package mentors derives the mentor sections and handles mentor imports.
package mentors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/state"
)

var ErrNotFound = errors.New("mentor not found")

const (
	TopLimit     = 3
	FinanceLimit = 2
)

// Top returns the n best rated mentors.
func Top(st *state.State, n int) []*models.Mentor {
	sorted := append([]*models.Mentor(nil), st.Mentors()...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	return limit(sorted, n)
}

// Available returns mentors accepting requests; n <= 0 means no limit.
func Available(st *state.State, n int) []*models.Mentor {
	var out []*models.Mentor
	for _, m := range st.Mentors() {
		if m.Available {
			out = append(out, m)
		}
	}
	return limit(out, n)
}

// Finance returns mentors whose specialty is finance or investment.
func Finance(st *state.State, n int) []*models.Mentor {
	var out []*models.Mentor
	for _, m := range st.Mentors() {
		sp := strings.ToLower(m.Specialty)
		if strings.Contains(m.Specialty, "Финансы") || strings.Contains(sp, "finance") || strings.Contains(sp, "инвест") {
			out = append(out, m)
		}
	}
	return limit(out, n)
}

func limit(list []*models.Mentor, n int) []*models.Mentor {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}

type Service struct {
	store *state.Store
}

func NewService(s *state.Store) *Service {
	return &Service{store: s}
}

// Contact returns the mentor's name for a signed-in visitor.
func (s *Service) Contact(id int64) (string, error) {
	var (
		name string
		err  error
	)
	s.store.Read(func(st *state.State) {
		if !st.SignedIn() {
			err = state.ErrNotSignedIn
			return
		}
		for _, m := range st.Mentors() {
			if m.ID == id {
				name = m.Name
				return
			}
		}
		err = ErrNotFound
	})
	return name, err
}

// Import replaces the mentor collection and persists it.
func (s *Service) Import(ctx context.Context, list []*models.Mentor) error {
	verr := &models.ValidationError{}
	seen := make(map[int64]bool, len(list))
	for i, m := range list {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			verr.Add(fmt.Sprintf("mentors[%d].name", i))
			continue
		}
		if seen[m.ID] {
			verr.Add(fmt.Sprintf("mentors[%d].id", i))
		}
		seen[m.ID] = true
	}
	if err := verr.Err(); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *state.State) (state.Change, error) {
		st.SetMentors(list)
		return state.Change{Kind: state.ChangeMentors, Persist: state.ScopeMentors}, nil
	})
}
