// Package rating derives the 1 to 5 score of a startup relative to the
// published corpus, and the five-icon star strip used to display it.
package rating

import (
	"math"
	"time"

	"github.com/startuphub/startuphub/internal/models"
)

const (
	Min     = 1.0
	Max     = 5.0
	Default = 3.0

	likesWeight    = 0.4
	commentsWeight = 0.3
	viewsWeight    = 0.2
	recencyWeight  = 0.1
)

// Compute scores s against the non-draft startups in corpus.
// Likes, comments and views are normalized by the corpus maximum to [0,5];
// recency is bucketed by age in days.
func Compute(s *models.Startup, corpus []*models.Startup, now time.Time) float64 {
	var maxLikes, maxComments, maxViews int64
	published := 0
	for _, c := range corpus {
		if c.IsDraft {
			continue
		}
		published++
		maxLikes = max(maxLikes, c.Likes)
		maxComments = max(maxComments, int64(len(c.Comments)))
		maxViews = max(maxViews, c.Views)
	}
	if published == 0 {
		return Default
	}

	score := normalized(s.Likes, maxLikes)*likesWeight +
		normalized(int64(len(s.Comments)), maxComments)*commentsWeight +
		normalized(s.Views, maxViews)*viewsWeight +
		recency(s.CreatedAt, now)*recencyWeight
	return Clamp(score)
}

func normalized(v, maxV int64) float64 {
	if maxV <= 0 {
		return 0
	}
	return float64(v) / float64(maxV) * 5
}

func recency(created, now time.Time) float64 {
	var days float64
	if !created.IsZero() {
		days = now.Sub(created).Hours() / 24
	}
	switch {
	case days <= 30:
		return 5
	case days <= 90:
		return 4
	case days <= 180:
		return 3
	}
	return 2
}

// Clamp bounds r to [Min, Max]; NaN maps to Default.
func Clamp(r float64) float64 {
	if math.IsNaN(r) {
		return Default
	}
	return math.Min(Max, math.Max(Min, r))
}

type Star int

const (
	StarFull Star = iota
	StarHalf
	StarEmpty
)

func (s Star) String() string {
	switch s {
	case StarFull:
		return "full"
	case StarHalf:
		return "half"
	}
	return "empty"
}

// Stars returns exactly five icons: floor(r) full, one half when the
// fractional part is at least 0.5, the rest empty.
func Stars(r float64) []Star {
	r = math.Min(Max, math.Max(0, r))
	full := int(math.Floor(r))
	half := r-float64(full) >= 0.5 && full < 5
	out := make([]Star, 0, 5)
	for i := 0; i < full; i++ {
		out = append(out, StarFull)
	}
	if half {
		out = append(out, StarHalf)
	}
	for len(out) < 5 {
		out = append(out, StarEmpty)
	}
	return out
}
