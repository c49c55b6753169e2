package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/simre/results-server/internal/repository/models"
)

const (
	DefaultActivityWindow = 5

	schoolActivitySubtitle = "School registered"
	unknownSchool          = "Unknown school"
)

// RecentActivity merges new schools and new results into one feed, newest first,
// truncated to limit entries. Equal timestamps are ordered by kind, then title.
func RecentActivity(schools []models.School, results []models.ResultWithSchool, limit int) []Activity {
	if limit <= 0 {
		limit = DefaultActivityWindow
	}

	feed := make([]Activity, 0, len(schools)+len(results))
	for _, s := range schools {
		feed = append(feed, Activity{
			Kind:     ActivityNewSchool,
			Title:    s.Name,
			Subtitle: schoolActivitySubtitle,
			At:       s.CreatedAt,
		})
	}
	for _, r := range results {
		subtitle := r.SchoolName
		if subtitle == "" {
			subtitle = unknownSchool
		}
		feed = append(feed, Activity{
			Kind:     ActivityNewResult,
			Title:    r.Subject + " - " + r.Assessment,
			Subtitle: subtitle,
			At:       r.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		a, b := feed[i], feed[j]
		if !a.At.Equal(b.At) {
			return a.At.After(b.At)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Title < b.Title
	})

	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

// FormatElapsed renders how long ago at happened, e.g. "3 min ago".
func FormatElapsed(at, now time.Time) string {
	d := now.Sub(at)
	minutes := math.Round(d.Minutes())
	hours := math.Round(minutes / 60)
	days := math.Round(hours / 24)

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d min ago", int(minutes))
	case hours < 24:
		return fmt.Sprintf("%d h ago", int(hours))
	default:
		return fmt.Sprintf("%d d ago", int(days))
	}
}
