package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/audioguide-scraper/internal/domain"
	"github.com/minjipark/audioguide-scraper/internal/storage"
)

func TestPostsFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "posts_audio_guide.json", storage.PostsFilename("audio guide"))
	assert.Equal(t, "posts_louvre.json", storage.PostsFilename("louvre"))
	assert.Equal(t, "posts_audio_guide_detail.json", storage.DetailsFilename("audio guide"))
}

func TestSaveLoadListings(t *testing.T) {
	t.Parallel()

	store := storage.New(t.TempDir())
	records := []domain.ListingRecord{
		{Link: "/travel-forum/a", Title: "A", Time: "3 days ago", Forum: "Italy"},
		{Link: "/travel-forum/b", Title: "B", Time: "", Forum: ""},
	}

	require.NoError(t, store.SaveListings("audio guide", records))

	loaded, err := store.LoadListings("audio guide")
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

// An empty batch must persist as a JSON array, not null, so downstream
// readers in other languages keep working.
func TestSaveListings_EmptyIsArray(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := storage.New(dir)

	require.NoError(t, store.SaveListings("audio guide", []domain.ListingRecord{}))

	data, err := os.ReadFile(filepath.Join(dir, "posts_audio_guide.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSaveLoadDetails(t *testing.T) {
	t.Parallel()

	store := storage.New(t.TempDir())
	details := []domain.PostDetail{
		{
			URL:     "https://community.example.com/post-1",
			Title:   "Audio guide at the Uffizi?",
			Content: "Is it worth renting?",
			Replies: []domain.ReplyRecord{
				{Author: "travelfan42", Content: "Yes."},
				{Content: "No."},
			},
		},
	}

	require.NoError(t, store.SaveDetails("audio guide", details))

	loaded, err := store.LoadDetails("audio guide")
	require.NoError(t, err)
	assert.Equal(t, details, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	store := storage.New(t.TempDir())

	_, err := store.LoadListings("audio guide")
	assert.Error(t, err)
}

// Saving twice replaces the artifact wholesale.
func TestSave_Overwrites(t *testing.T) {
	t.Parallel()

	store := storage.New(t.TempDir())

	require.NoError(t, store.SaveListings("audio guide", []domain.ListingRecord{
		{Link: "/a", Title: "A"}, {Link: "/b", Title: "B"},
	}))
	require.NoError(t, store.SaveListings("audio guide", []domain.ListingRecord{
		{Link: "/c", Title: "C"},
	}))

	loaded, err := store.LoadListings("audio guide")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "/c", loaded[0].Link)
}
