package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"read2me/internal/storage"
)

func TestOutputMediaList_JSON(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatJSON, &out, &errBuf)

	media := []storage.AvailableMedia{
		{
			ID:            "abc123",
			Title:         "Spoken Article",
			DateAdded:     "2024-03-01",
			DatePublished: "2024-02-28",
			Authors:       []string{"Ada Lovelace"},
			Text:          "body",
			Type:          storage.MediaTypeArticle,
		},
		{
			ID:        "def456",
			Title:     "Episode",
			DateAdded: "2024-03-02",
			Type:      storage.MediaTypePodcast,
		},
	}

	if err := f.OutputMediaList(media); err != nil {
		t.Fatalf("OutputMediaList failed: %v", err)
	}

	var decoded []mediaItem
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d items, want 2", len(decoded))
	}
	if decoded[0].Type != "article" || decoded[1].Type != "podcast" {
		t.Errorf("types = %s, %s, want article, podcast", decoded[0].Type, decoded[1].Type)
	}
	if len(decoded[0].Authors) != 1 || decoded[0].Authors[0] != "Ada Lovelace" {
		t.Errorf("authors = %v, want [Ada Lovelace]", decoded[0].Authors)
	}
}

func TestOutputMediaList_Text(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)

	media := []storage.AvailableMedia{
		{ID: "abc123", Title: "Spoken", DateAdded: "2024-03-01", Type: storage.MediaTypeArticle},
	}
	if err := f.OutputMediaList(media); err != nil {
		t.Fatalf("OutputMediaList failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "id=abc123") {
		t.Errorf("missing id=abc123 in output: %s", got)
	}
	if !strings.Contains(got, "type=article") {
		t.Errorf("missing type=article in output: %s", got)
	}
}

func TestOutputMediaList_HumanStripsMarkup(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)

	media := []storage.AvailableMedia{
		{
			ID:        "abc123",
			Title:     "Markup",
			DateAdded: "2024-03-01",
			Text:      "<b>Hello</b> world",
			Type:      storage.MediaTypeText,
		},
	}
	if err := f.OutputMediaList(media); err != nil {
		t.Fatalf("OutputMediaList failed: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "<b>") {
		t.Errorf("markup leaked into human output: %s", got)
	}
	if !strings.Contains(got, "Hello") {
		t.Errorf("text content missing from human output: %s", got)
	}
}

func TestOutputMediaList_HumanEmpty(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatHuman, &out, &errBuf)

	if err := f.OutputMediaList(nil); err != nil {
		t.Fatalf("OutputMediaList failed: %v", err)
	}
	if !strings.Contains(out.String(), "No media") {
		t.Errorf("missing empty-state message: %s", out.String())
	}
}

func TestOutputArticleOverviews_Text(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatText, &out, &errBuf)

	overviews := []storage.ArticleOverview{
		{ID: "abc123", Title: "First", Authors: []string{"Ada Lovelace"}, URL: "https://example.com/1"},
	}
	if err := f.OutputArticleOverviews(overviews); err != nil {
		t.Fatalf("OutputArticleOverviews failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "title=First") || !strings.Contains(got, "authors=Ada Lovelace") {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestOutputArticle_JSON(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(FormatJSON, &out, &errBuf)

	article := &storage.Article{
		ID:        "abc123",
		URL:       "https://example.com/a",
		Title:     "A Title",
		DateAdded: "2024-03-01",
		AudioFile: "/audio/a.mp3",
	}
	authors := []storage.Author{{ID: "auth-1", Name: "Ada Lovelace"}}

	if err := f.OutputArticle(article, authors); err != nil {
		t.Fatalf("OutputArticle failed: %v", err)
	}

	var decoded articleDetail
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if decoded.ID != "abc123" || decoded.AudioFile != "/audio/a.mp3" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Authors) != 1 || decoded.Authors[0] != "Ada Lovelace" {
		t.Errorf("authors = %v, want [Ada Lovelace]", decoded.Authors)
	}
}

func TestUnknownFormat(t *testing.T) {
	var out, errBuf bytes.Buffer
	f := NewFormatterWithWriters(Format("xml"), &out, &errBuf)

	if err := f.OutputMediaList(nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
