package folio

import "time"

// DevlogRecord is a devlog row as read from the database. NULL columns are
// collapsed to zero values by the store.
type DevlogRecord struct {
	ID       int64
	Title    string
	Date     time.Time
	Category int
	Content  string
	Tags     string // comma-separated, as stored
}

// DevlogStamp is the id/date pair the sitemap needs.
type DevlogStamp struct {
	ID   int64
	Date time.Time
}

// ProjectRecord is a projects row as read from the database.
type ProjectRecord struct {
	ID          int64
	Title       string
	Description string
	Status      int
	Featured    bool
	Thumbnail   string
	Tags        string
	Repo        string
	Demo        string
}

// DevlogEntry is the JSON shape served by /api/devlog.
type DevlogEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// Project is the JSON shape served by /api/projects.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
}

type errorBody struct {
	Error string `json:"error"`
}
