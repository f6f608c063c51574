package litestore

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quinnchrest/folio"
)

// Fixture is a YAML document of rows used to populate a preview database.
type Fixture struct {
	Devlog   []DevlogFixture  `yaml:"devlog"`
	Projects []ProjectFixture `yaml:"projects"`
}

// DevlogFixture mirrors a devlog row. Tags are written as a list and stored
// comma-separated.
type DevlogFixture struct {
	ID       int64    `yaml:"id"`
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Category int      `yaml:"category"`
	Content  string   `yaml:"content"`
	Tags     []string `yaml:"tags"`
}

// ProjectFixture mirrors a projects row.
type ProjectFixture struct {
	ID          int64    `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      int      `yaml:"status"`
	Featured    bool     `yaml:"featured"`
	Thumbnail   string   `yaml:"thumbnail"`
	Tags        []string `yaml:"tags"`
	Repo        string   `yaml:"repo"`
	Demo        string   `yaml:"demo"`
}

// LoadFixture parses a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture yaml: %w", err)
	}
	return f, nil
}

// Seed writes every fixture row, replacing rows with the same id.
func (s *Store) Seed(ctx context.Context, f Fixture) error {
	for _, d := range f.Devlog {
		date, err := parseDate(d.Date)
		if err != nil {
			return fmt.Errorf("devlog %d: %w", d.ID, err)
		}
		if err := s.PutDevlog(ctx, folio.DevlogRecord{
			ID:       d.ID,
			Title:    d.Title,
			Date:     date,
			Category: d.Category,
			Content:  d.Content,
			Tags:     folio.JoinTags(d.Tags),
		}); err != nil {
			return err
		}
	}
	for _, p := range f.Projects {
		if err := s.PutProject(ctx, folio.ProjectRecord{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Status:      p.Status,
			Featured:    p.Featured,
			Thumbnail:   p.Thumbnail,
			Tags:        folio.JoinTags(p.Tags),
			Repo:        p.Repo,
			Demo:        p.Demo,
		}); err != nil {
			return err
		}
	}
	return nil
}
