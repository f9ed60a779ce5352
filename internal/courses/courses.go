// Package courses serves the static learning catalog embedded in the binary.
package courses

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/startuphub/startuphub/internal/models"
)

//go:embed courses.json
var raw []byte

var catalog []models.Course

func init() {
	if err := json.Unmarshal(raw, &catalog); err != nil {
		panic(fmt.Sprintf("courses: embedded catalog: %v", err))
	}
}

// All returns every course, Russian first.
func All() []models.Course {
	return append([]models.Course(nil), catalog...)
}

// Filter returns the courses in lang ("ru", "en"); "all" or empty returns
// everything.
func Filter(lang string) []models.Course {
	lang = strings.ToUpper(strings.TrimSpace(lang))
	if lang == "" || lang == "ALL" {
		return All()
	}
	var out []models.Course
	for _, c := range catalog {
		if c.Language == lang {
			out = append(out, c)
		}
	}
	return out
}
