// Package storage reads and writes the JSON artifacts that couple the
// scraper to its downstream consumers. The files are the whole contract:
// the analyzer and dashboard never call into the scraper, they only read
// what it wrote.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minjipark/audioguide-scraper/internal/domain"
)

// Artifact filenames produced by the analyze stage.
const (
	MetricsFile       = "audio_guide_metrics.json"
	ComparisonFile    = "museum_comparison.json"
	EnhancedPostsFile = "enhanced_posts.json"
)

// Store persists artifacts under a single data directory. Each save
// overwrites the target file wholesale; there is no update path.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// PostsFilename derives the listing artifact name from the run's
// keyword, spaces replaced with underscores.
func PostsFilename(keyword string) string {
	return fmt.Sprintf("posts_%s.json", slug(keyword))
}

// DetailsFilename derives the post-detail artifact name.
func DetailsFilename(keyword string) string {
	return fmt.Sprintf("posts_%s_detail.json", slug(keyword))
}

func slug(keyword string) string {
	return strings.ReplaceAll(keyword, " ", "_")
}

func (s *Store) SaveListings(keyword string, records []domain.ListingRecord) error {
	return s.writeJSON(PostsFilename(keyword), records)
}

func (s *Store) LoadListings(keyword string) ([]domain.ListingRecord, error) {
	var records []domain.ListingRecord
	if err := s.readJSON(PostsFilename(keyword), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) SaveDetails(keyword string, details []domain.PostDetail) error {
	return s.writeJSON(DetailsFilename(keyword), details)
}

func (s *Store) LoadDetails(keyword string) ([]domain.PostDetail, error) {
	var details []domain.PostDetail
	if err := s.readJSON(DetailsFilename(keyword), &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *Store) SaveMetrics(metrics []domain.MuseumMetrics) error {
	return s.writeJSON(MetricsFile, metrics)
}

func (s *Store) LoadMetrics() ([]domain.MuseumMetrics, error) {
	var metrics []domain.MuseumMetrics
	if err := s.readJSON(MetricsFile, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *Store) SaveComparison(cmp domain.Comparison) error {
	return s.writeJSON(ComparisonFile, cmp)
}

func (s *Store) LoadComparison() (domain.Comparison, error) {
	var cmp domain.Comparison
	if err := s.readJSON(ComparisonFile, &cmp); err != nil {
		return domain.Comparison{}, err
	}
	return cmp, nil
}

func (s *Store) SaveEnhancedPosts(posts []domain.EnhancedPost) error {
	return s.writeJSON(EnhancedPostsFile, posts)
}

func (s *Store) LoadEnhancedPosts() ([]domain.EnhancedPost, error) {
	var posts []domain.EnhancedPost
	if err := s.readJSON(EnhancedPostsFile, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// writeJSON marshals v and replaces the target file through a temp file
// and rename, so readers never see a half-written artifact.
func (s *Store) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.Dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}
