package view

import (
	"math"
	"strings"
	"unicode"

	"github.com/adwyte/synergysphere-web/internal/upstream"
)

// Initials derives an avatar fallback from a display name or email.
// One word yields its first character, several words the first characters of
// the first and last word. Empty input yields "?".
func Initials(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		return string(unicode.ToUpper(firstRune(fields[0])))
	default:
		first := unicode.ToUpper(firstRune(fields[0]))
		last := unicode.ToUpper(firstRune(fields[len(fields)-1]))
		return string(first) + string(last)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}

// ProgressPercentage is the rounded completion ratio. Zero total means zero
// percent. Values above 100 (completed > total) pass through unclamped.
func ProgressPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Badge is a label plus a rendering tone for the UI shell.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// StatusBadge maps a project status to its badge.
func StatusBadge(status string) Badge {
	switch status {
	case ProjectActive:
		return Badge{Label: "Active", Tone: "default"}
	case ProjectCompleted:
		return Badge{Label: "Completed", Tone: "secondary"}
	case ProjectOverdue:
		return Badge{Label: "Overdue", Tone: "destructive"}
	default:
		return Badge{Label: status, Tone: "secondary"}
	}
}

// PriorityBadge maps a task priority to its badge.
func PriorityBadge(priority string) Badge {
	switch priority {
	case "high":
		return Badge{Label: "High", Tone: "destructive"}
	case "medium":
		return Badge{Label: "Medium", Tone: "default"}
	case "low":
		return Badge{Label: "Low", Tone: "secondary"}
	default:
		return Badge{Label: priority, Tone: "secondary"}
	}
}

// DisplayName is the member's name, falling back to email when name is null.
func DisplayName(m upstream.Member) string {
	if m.Name != nil && *m.Name != "" {
		return *m.Name
	}
	return m.Email
}

// AssigneeName resolves a task's assignee against the loaded member set.
// A nil id or an id with no matching member renders "Unassigned".
func AssigneeName(assigneeID *int64, members []upstream.Member) string {
	if assigneeID == nil {
		return "Unassigned"
	}
	for _, m := range members {
		if m.ID == *assigneeID {
			return DisplayName(m)
		}
	}
	return "Unassigned"
}
