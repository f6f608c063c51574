package folio

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgDevlogFailed   = "Failed to fetch devlog entries"
	msgProjectsFailed = "Failed to fetch projects"
	msgFeedFailed     = "Error generating RSS feed"
	msgSitemapFailed  = "Error generating sitemap"

	xmlCacheControl = "public, max-age=3600"
)

func (a *App) handleDevlog(c echo.Context) error {
	records, err := a.Store.ListDevlog(c.Request().Context(), 0)
	if err != nil {
		a.log.Error("fetch devlog entries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody{Error: msgDevlogFailed})
	}
	entries := make([]DevlogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, toDevlogEntry(r))
	}
	return c.JSON(http.StatusOK, entries)
}

func (a *App) handleProjects(c echo.Context) error {
	records, err := a.Store.ListProjects(c.Request().Context())
	if err != nil {
		a.log.Error("fetch projects", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody{Error: msgProjectsFailed})
	}
	projects := make([]Project, 0, len(records))
	for _, r := range records {
		projects = append(projects, toProject(r))
	}
	return c.JSON(http.StatusOK, projects)
}

func (a *App) handleFeed(c echo.Context) error {
	records, err := a.Store.ListDevlog(c.Request().Context(), FeedLimit)
	if err != nil {
		return a.plainFailure(c, "generate rss feed", msgFeedFailed, err)
	}
	body, err := renderRSS(records, a.now())
	if err != nil {
		return a.plainFailure(c, "generate rss feed", msgFeedFailed, err)
	}
	return writeXML(c, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	stamps, err := a.Store.ListDevlogStamps(c.Request().Context())
	if err != nil {
		return a.plainFailure(c, "generate sitemap", msgSitemapFailed, err)
	}
	body, err := renderSitemap(stamps, a.now())
	if err != nil {
		return a.plainFailure(c, "generate sitemap", msgSitemapFailed, err)
	}
	return writeXML(c, body)
}

// plainFailure logs err and answers with a fixed plain-text 500 body.
func (a *App) plainFailure(c echo.Context, op, msg string, err error) error {
	a.log.Error(op, zap.Error(err), zap.String("path", c.Path()))
	return c.String(http.StatusInternalServerError, msg)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func writeXML(c echo.Context, body []byte) error {
	c.Response().Header().Set("Cache-Control", xmlCacheControl)
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", body)
}

func toDevlogEntry(r DevlogRecord) DevlogEntry {
	return DevlogEntry{
		ID:       strconv.FormatInt(r.ID, 10),
		Title:    r.Title,
		Date:     FormatEntryDate(r.Date),
		Content:  r.Content,
		Tags:     ParseTags(r.Tags),
		Category: CategoryToken(r.Category),
	}
}

func toProject(r ProjectRecord) Project {
	image := r.Thumbnail
	if image == "" {
		image = PlaceholderImage
	}
	return Project{
		ID:           strconv.FormatInt(r.ID, 10),
		Title:        r.Title,
		Description:  r.Description,
		Image:        image,
		Technologies: ParseTags(r.Tags),
		GithubURL:    r.Repo,
		LiveURL:      r.Demo,
		Status:       StatusToken(r.Status),
		Featured:     r.Featured,
	}
}
