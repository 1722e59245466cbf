package read2me

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestLibraryArticleLifecycle(t *testing.T) {
	lib := newTestLibrary(t)

	id, err := lib.CreateArticle(ArticleData{
		URL:       "https://example.com/life",
		Title:     "Lifecycle",
		PlainText: "body",
	}, []string{"Ada Lovelace"})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if id != ContentID("https://example.com/life") {
		t.Errorf("ID = %s, want content hash of URL", id)
	}

	exists, err := lib.ArticleExists(id)
	if err != nil || !exists {
		t.Fatalf("ArticleExists = %v, %v, want true", exists, err)
	}

	article, err := lib.Article(id)
	if err != nil {
		t.Fatalf("Article failed: %v", err)
	}
	if article == nil {
		t.Fatal("Article returned nil")
	}
	if article.Title != "Lifecycle" {
		t.Errorf("title = %s, want Lifecycle", article.Title)
	}
	if len(article.Authors) != 1 || article.Authors[0] != "Ada Lovelace" {
		t.Errorf("authors = %v, want [Ada Lovelace]", article.Authors)
	}

	_, err = lib.CreateArticle(ArticleData{URL: "https://example.com/life"}, nil)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate create error = %v, want ErrAlreadyExists", err)
	}

	tldr := "short version"
	affected, err := lib.UpdateArticle(id, ArticleFields{TlDr: &tldr})
	if err != nil || affected != 1 {
		t.Fatalf("UpdateArticle = %d, %v, want 1 row", affected, err)
	}

	total, err := lib.TotalArticles()
	if err != nil || total != 1 {
		t.Fatalf("TotalArticles = %d, %v, want 1", total, err)
	}

	affected, err = lib.DeleteArticle(id)
	if err != nil || affected != 1 {
		t.Fatalf("DeleteArticle = %d, %v, want 1 row", affected, err)
	}
	gone, err := lib.Article(id)
	if err != nil {
		t.Fatalf("Article after delete errored: %v", err)
	}
	if gone != nil {
		t.Error("article still readable after delete")
	}
}

func TestLibraryAvailableMedia(t *testing.T) {
	lib := newTestLibrary(t)

	if _, err := lib.CreateArticle(ArticleData{
		URL:       "https://example.com/spoken",
		Title:     "Spoken",
		AudioFile: "/audio/spoken.mp3",
	}, []string{"Ada Lovelace"}); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if _, err := lib.CreateArticle(ArticleData{URL: "https://example.com/silent"}, nil); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if _, err := lib.CreateText(TextData{Text: "read aloud", AudioFile: "/audio/t.mp3"}); err != nil {
		t.Fatalf("CreateText failed: %v", err)
	}

	media, err := lib.AvailableMedia()
	if err != nil {
		t.Fatalf("AvailableMedia failed: %v", err)
	}
	if len(media) != 2 {
		t.Fatalf("media entries = %d, want 2", len(media))
	}

	types := map[string]int{}
	for _, m := range media {
		types[m.Type]++
	}
	if types[MediaTypeArticle] != 1 || types[MediaTypeText] != 1 {
		t.Errorf("type counts = %v, want one article and one text", types)
	}
}

func TestLibraryPodcastSeed(t *testing.T) {
	lib := newTestLibrary(t)

	textID, err := lib.CreateText(TextData{Text: "the source text"})
	if err != nil {
		t.Fatalf("CreateText failed: %v", err)
	}

	podcastID, err := lib.CreatePodcast(PodcastData{Title: "From Text"}, textID, "")
	if err != nil {
		t.Fatalf("CreatePodcast failed: %v", err)
	}

	p, err := lib.Podcast(podcastID)
	if err != nil {
		t.Fatalf("Podcast failed: %v", err)
	}
	if p == nil {
		t.Fatal("Podcast returned nil")
	}
	if p.SeedTextID != textID || p.SeedArticleID != "" {
		t.Errorf("seed = (%s, %s), want text %s", p.SeedArticleID, p.SeedTextID, textID)
	}
}

func TestLibraryAuthors(t *testing.T) {
	lib := newTestLibrary(t)

	if err := lib.AddAuthor(Author{ID: "auth-1", Name: "Grace Hopper"}); err != nil {
		t.Fatalf("AddAuthor failed: %v", err)
	}
	if err := lib.AddAuthor(Author{ID: "auth-1", Name: "Grace Hopper"}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate author error = %v, want ErrAlreadyExists", err)
	}

	author, err := lib.Author("auth-1")
	if err != nil {
		t.Fatalf("Author failed: %v", err)
	}
	if author == nil || author.Name != "Grace Hopper" {
		t.Errorf("Author = %+v, want Grace Hopper", author)
	}
}

func TestLibraryArticlesPagination(t *testing.T) {
	lib := newTestLibrary(t)

	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	urls := []string{"https://example.com/x", "https://example.com/y", "https://example.com/z"}
	for i := range dates {
		if _, err := lib.CreateArticle(ArticleData{URL: urls[i], DateAdded: dates[i]}, nil); err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
	}

	page, err := lib.Articles(1, 2)
	if err != nil {
		t.Fatalf("Articles failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if page[0].DateAdded != "2024-01-02" || page[1].DateAdded != "2024-01-01" {
		t.Errorf("page dates = %s, %s, want 2024-01-02, 2024-01-01", page[0].DateAdded, page[1].DateAdded)
	}
}
