package read2me

import (
	"fmt"

	"read2me/internal/storage"
)

// Sentinel errors surfaced by Library operations; check with errors.Is.
var (
	// ErrAlreadyExists reports a create whose content-derived ID (or unique
	// author name) is already stored.
	ErrAlreadyExists = storage.ErrAlreadyExists

	// ErrNoFields reports an update call with an empty field set.
	ErrNoFields = storage.ErrNoFields
)

// Media type tags carried by AvailableMedia entries.
const (
	MediaTypeArticle = storage.MediaTypeArticle
	MediaTypePodcast = storage.MediaTypePodcast
	MediaTypeText    = storage.MediaTypeText
)

// Library is the public API for the read2me media archive. It wraps the
// SQLite store; the audio/markdown/VTT artifacts it records are produced and
// managed by external pipelines — only their paths live here.
type Library struct {
	store *storage.Store
}

// Open opens (creating if needed) the archive database at dbPath.
func Open(dbPath string) (*Library, error) {
	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Library{store: store}, nil
}

// Close releases the underlying database connection.
func (l *Library) Close() error {
	return l.store.Close()
}

// ContentID returns the deterministic 6-character identifier for a canonical
// content value (an article URL, a raw text, or a podcast title). Callers use
// it to pre-check existence before creating.
func ContentID(value string) string {
	return storage.ContentID(value)
}

// CreateArticle stores an article and links it to the given authors,
// creating author rows as needed. Returns the article's content-derived ID.
// A duplicate URL yields ErrAlreadyExists.
func (l *Library) CreateArticle(data ArticleData, authorNames []string) (string, error) {
	return l.store.CreateArticle(&storage.Article{
		URL:           data.URL,
		Title:         data.Title,
		DatePublished: data.DatePublished,
		DateAdded:     data.DateAdded,
		Language:      data.Language,
		PlainText:     data.PlainText,
		MarkdownText:  data.MarkdownText,
		TlDr:          data.TlDr,
		AudioFile:     data.AudioFile,
		MarkdownFile:  data.MarkdownFile,
		VTTFile:       data.VTTFile,
	}, authorNames)
}

// UpdateArticle applies the non-nil fields to an article and returns the
// rows affected — 0 when the ID is absent. An empty field set yields
// ErrNoFields.
func (l *Library) UpdateArticle(id string, fields ArticleFields) (int64, error) {
	return l.store.UpdateArticle(id, storage.ArticleFields{
		Title:         fields.Title,
		DatePublished: fields.DatePublished,
		Language:      fields.Language,
		PlainText:     fields.PlainText,
		MarkdownText:  fields.MarkdownText,
		TlDr:          fields.TlDr,
		AudioFile:     fields.AudioFile,
		MarkdownFile:  fields.MarkdownFile,
		VTTFile:       fields.VTTFile,
	})
}

// Articles returns up to limit articles ordered newest-first by date added,
// skipping the first skip rows.
func (l *Library) Articles(skip, limit int) ([]Article, error) {
	internal, err := l.store.GetArticles(skip, limit)
	if err != nil {
		return nil, err
	}
	articles := make([]Article, len(internal))
	for i, a := range internal {
		articles[i] = articleFromInternal(a)
	}
	return articles, nil
}

// Article returns a single article with its authors resolved, or nil when
// the ID is absent.
func (l *Library) Article(id string) (*Article, error) {
	internal, err := l.store.GetArticle(id)
	if err != nil || internal == nil {
		return nil, err
	}
	article := articleFromInternal(*internal)
	authors, err := l.store.GetArticleAuthors(id)
	if err != nil {
		return nil, err
	}
	for _, a := range authors {
		article.Authors = append(article.Authors, a.Name)
	}
	return &article, nil
}

// ArticleExists reports whether an article with the given ID is stored.
func (l *Library) ArticleExists(id string) (bool, error) {
	return l.store.ArticleExists(id)
}

// TotalArticles returns the number of stored articles.
func (l *Library) TotalArticles() (int, error) {
	return l.store.CountArticles()
}

// DeleteArticle removes an article and returns the rows affected — 0 when
// the ID is absent. Author links are removed with it; podcasts seeded from
// the article keep their rows.
func (l *Library) DeleteArticle(id string) (int64, error) {
	return l.store.DeleteArticle(id)
}

// ArticleOverviews returns the compact article listing, newest first,
// paginated like Articles.
func (l *Library) ArticleOverviews(skip, limit int) ([]ArticleOverview, error) {
	internal, err := l.store.GetArticleOverviews(skip, limit)
	if err != nil {
		return nil, err
	}
	overviews := make([]ArticleOverview, len(internal))
	for i, o := range internal {
		overviews[i] = ArticleOverview{
			ID:            o.ID,
			Title:         o.Title,
			Authors:       o.Authors,
			DatePublished: o.DatePublished,
			URL:           o.URL,
		}
	}
	return overviews, nil
}

// CreateText stores a standalone text and returns its content-derived ID.
// A duplicate text yields ErrAlreadyExists.
func (l *Library) CreateText(data TextData) (string, error) {
	return l.store.CreateText(&storage.Text{
		Text:      data.Text,
		DateAdded: data.DateAdded,
		Language:  data.Language,
		PlainText: data.PlainText,
		AudioFile: data.AudioFile,
	})
}

// UpdateText applies the non-nil fields to a text row. Same contract as
// UpdateArticle.
func (l *Library) UpdateText(id string, fields TextFields) (int64, error) {
	return l.store.UpdateText(id, storage.TextFields{
		Language:  fields.Language,
		PlainText: fields.PlainText,
		AudioFile: fields.AudioFile,
	})
}

// Text returns a single text by ID, or nil when absent.
func (l *Library) Text(id string) (*Text, error) {
	internal, err := l.store.GetText(id)
	if err != nil || internal == nil {
		return nil, err
	}
	return &Text{
		ID:        internal.ID,
		Text:      internal.Text,
		DateAdded: internal.DateAdded,
		Language:  internal.Language,
		PlainText: internal.PlainText,
		AudioFile: internal.AudioFile,
	}, nil
}

// CreatePodcast stores a podcast and, when a seed ID is given, links it back
// to the article or text it was generated from. Returns the podcast's
// content-derived ID. A duplicate title yields ErrAlreadyExists.
func (l *Library) CreatePodcast(data PodcastData, seedTextID, seedArticleID string) (string, error) {
	return l.store.CreatePodcast(&storage.Podcast{
		Title:        data.Title,
		Text:         data.Text,
		DateAdded:    data.DateAdded,
		Language:     data.Language,
		PlainText:    data.PlainText,
		AudioFile:    data.AudioFile,
		MarkdownFile: data.MarkdownFile,
	}, seedTextID, seedArticleID)
}

// UpdatePodcast applies the non-nil fields to a podcast row. Same contract
// as UpdateArticle.
func (l *Library) UpdatePodcast(id string, fields PodcastFields) (int64, error) {
	return l.store.UpdatePodcast(id, storage.PodcastFields{
		Text:         fields.Text,
		Language:     fields.Language,
		PlainText:    fields.PlainText,
		AudioFile:    fields.AudioFile,
		MarkdownFile: fields.MarkdownFile,
	})
}

// Podcast returns a single podcast with its seed reference resolved, or nil
// when the ID is absent.
func (l *Library) Podcast(id string) (*Podcast, error) {
	internal, err := l.store.GetPodcast(id)
	if err != nil || internal == nil {
		return nil, err
	}
	seedArticle, seedText, err := l.store.GetPodcastSeed(id)
	if err != nil {
		return nil, err
	}
	return &Podcast{
		ID:            internal.ID,
		Title:         internal.Title,
		Text:          internal.Text,
		DateAdded:     internal.DateAdded,
		Language:      internal.Language,
		PlainText:     internal.PlainText,
		AudioFile:     internal.AudioFile,
		MarkdownFile:  internal.MarkdownFile,
		SeedArticleID: seedArticle,
		SeedTextID:    seedText,
	}, nil
}

// AvailableMedia returns every stored article, podcast, and text that has an
// audio artifact, as one unified listing.
func (l *Library) AvailableMedia() ([]AvailableMedia, error) {
	internal, err := l.store.FetchAvailableMedia()
	if err != nil {
		return nil, err
	}
	media := make([]AvailableMedia, len(internal))
	for i, m := range internal {
		media[i] = AvailableMedia{
			ID:            m.ID,
			Title:         m.Title,
			DateAdded:     m.DateAdded,
			DatePublished: m.DatePublished,
			Authors:       m.Authors,
			Text:          m.Text,
			Type:          m.Type,
		}
	}
	return media, nil
}

// AddAuthor stores an author with a caller-supplied ID. A duplicate ID or
// name yields ErrAlreadyExists.
func (l *Library) AddAuthor(author Author) error {
	return l.store.AddAuthor(storage.Author{ID: author.ID, Name: author.Name})
}

// Author returns an author by ID, or nil when absent.
func (l *Library) Author(id string) (*Author, error) {
	internal, err := l.store.GetAuthor(id)
	if err != nil || internal == nil {
		return nil, err
	}
	return &Author{ID: internal.ID, Name: internal.Name}, nil
}

func articleFromInternal(a storage.Article) Article {
	return Article{
		ID:            a.ID,
		URL:           a.URL,
		Title:         a.Title,
		DatePublished: a.DatePublished,
		DateAdded:     a.DateAdded,
		Language:      a.Language,
		PlainText:     a.PlainText,
		MarkdownText:  a.MarkdownText,
		TlDr:          a.TlDr,
		AudioFile:     a.AudioFile,
		MarkdownFile:  a.MarkdownFile,
		VTTFile:       a.VTTFile,
	}
}
