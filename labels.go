package folio

// Devlog category codes as stored in devlog.category.
const (
	CategoryFeature  = 1
	CategoryBugfix   = 2
	CategoryLearning = 3
)

// Project status codes as stored in projects.status.
const (
	StatusPlanned    = 1
	StatusInProgress = 2
	StatusCompleted  = 3
)

// CategoryToken maps a category code to the lowercase token used in JSON.
func CategoryToken(code int) string {
	switch code {
	case CategoryFeature:
		return "feature"
	case CategoryBugfix:
		return "bugfix"
	case CategoryLearning:
		return "learning"
	default:
		return "update"
	}
}

// CategoryLabel maps a category code to the display label used in the feed.
// Feed readers show this verbatim, so it differs from CategoryToken.
func CategoryLabel(code int) string {
	switch code {
	case CategoryFeature:
		return "Feature"
	case CategoryBugfix:
		return "Bug Fix"
	case CategoryLearning:
		return "Learning"
	default:
		return "Update"
	}
}

// StatusToken maps a project status code to its JSON token. Unknown codes are
// treated as planned.
func StatusToken(code int) string {
	switch code {
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	default:
		return "planned"
	}
}
