package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrAlreadyExists signals a create against a content ID (or unique
	// name) that is already stored. Callers can pre-check with the
	// Exists helpers or handle this idempotently.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoFields signals an update call with an empty field set; no
	// statement is executed.
	ErrNoFields = errors.New("no fields to update")
)

type Store struct {
	db *sql.DB
}

type Article struct {
	ID            string
	URL           string
	Title         string
	DatePublished string // YYYY-MM-DD, empty when unset
	DateAdded     string // YYYY-MM-DD
	Language      string
	PlainText     string
	MarkdownText  string
	TlDr          string
	AudioFile     string
	MarkdownFile  string
	VTTFile       string
}

type Text struct {
	ID        string
	Text      string
	DateAdded string
	Language  string
	PlainText string
	AudioFile string
}

type Podcast struct {
	ID           string
	Title        string
	Text         string
	DateAdded    string
	Language     string
	PlainText    string
	AudioFile    string
	MarkdownFile string
}

type Author struct {
	ID   string
	Name string
}

// Media type tags used in AvailableMedia listings.
const (
	MediaTypeArticle = "article"
	MediaTypePodcast = "podcast"
	MediaTypeText    = "text"
)

// AvailableMedia is one row of the cross-entity listing of items that have a
// finished audio artifact.
type AvailableMedia struct {
	ID            string
	Title         string
	DateAdded     string
	DatePublished string
	Authors       []string
	Text          string
	Type          string
}

// ArticleOverview is the compact listing shape for articles: identity plus
// display fields, authors resolved through the join table.
type ArticleOverview struct {
	ID            string
	Title         string
	Authors       []string
	DatePublished string
	URL           string
}

// NewStore opens the database at dbPath and initializes the schema. The
// connection is long-lived; each public operation runs as one statement or
// one transaction against it.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys so join rows follow their parents
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Articles

// CreateArticle inserts an article; its ID is derived from the URL. Each
// author name is resolved to an existing author row by exact name or created
// with a fresh ID, then linked through article_author. The insert and all
// author wiring commit as one transaction. A duplicate URL surfaces as
// ErrAlreadyExists.
func (s *Store) CreateArticle(a *Article, authorNames []string) (string, error) {
	if a.URL == "" {
		return "", errors.New("article url is required")
	}
	id := ContentID(a.URL)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin create article: %w", err)
	}
	defer tx.Rollback()

	dateAdded := a.DateAdded
	if dateAdded == "" {
		dateAdded = today()
	}

	_, err = tx.Exec(
		`INSERT INTO articles (id, url, title, date_published, date_added, language,
		                       plain_text, markdown_text, tl_dr, audio_file, markdown_file, vtt_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.URL, nullable(a.Title), normalizeDate(a.DatePublished), dateAdded,
		nullable(a.Language), nullable(a.PlainText), nullable(a.MarkdownText),
		nullable(a.TlDr), nullable(a.AudioFile), nullable(a.MarkdownFile), nullable(a.VTTFile),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("article %s: %w", id, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to insert article: %w", err)
	}

	for _, name := range authorNames {
		authorID, err := findOrCreateAuthor(tx, name)
		if err != nil {
			return "", err
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO article_author (article_id, author_id) VALUES (?, ?)",
			id, authorID,
		); err != nil {
			return "", fmt.Errorf("failed to link author %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create article: %w", err)
	}
	return id, nil
}

// findOrCreateAuthor resolves an author name to its row ID, inserting a new
// row with a generated ID when the name is unknown.
func findOrCreateAuthor(tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRow("SELECT id FROM authors WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up author %q: %w", name, err)
	}

	id = uuid.NewString()
	if _, err := tx.Exec("INSERT INTO authors (id, name) VALUES (?, ?)", id, name); err != nil {
		return "", fmt.Errorf("failed to create author %q: %w", name, err)
	}
	return id, nil
}

// UpdateArticle applies the non-nil fields to the article row and returns the
// number of rows affected: 0 when the ID is absent, never an error for that
// case. An empty field set returns ErrNoFields without touching the database.
func (s *Store) UpdateArticle(id string, fields ArticleFields) (int64, error) {
	return s.applyUpdate("articles", id, fields.assignments())
}

// UpdateText applies the non-nil fields to the text row. Same contract as
// UpdateArticle.
func (s *Store) UpdateText(id string, fields TextFields) (int64, error) {
	return s.applyUpdate("texts", id, fields.assignments())
}

// UpdatePodcast applies the non-nil fields to the podcast row. Same contract
// as UpdateArticle.
func (s *Store) UpdatePodcast(id string, fields PodcastFields) (int64, error) {
	return s.applyUpdate("podcasts", id, fields.assignments())
}

func (s *Store) applyUpdate(table, id string, set *setClause) (int64, error) {
	if set.empty() {
		return 0, ErrNoFields
	}

	query := "UPDATE " + table + " SET " + strings.Join(set.cols, ", ") + " WHERE id = ?"
	result, err := s.db.Exec(query, append(set.args, id)...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s %s: %w", table, id, err)
	}
	return result.RowsAffected()
}

const articleColumns = `id, url, title, date_published, date_added, language,
	plain_text, markdown_text, tl_dr, audio_file, markdown_file, vtt_file`

// GetArticles returns up to limit articles ordered newest-first by
// date_added, skipping the first skip rows. The ID tie-break keeps pages
// stable when several articles share a date.
func (s *Store) GetArticles(skip, limit int) ([]Article, error) {
	rows, err := s.db.Query(
		"SELECT "+articleColumns+" FROM articles ORDER BY date_added DESC, id LIMIT ? OFFSET ?",
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// GetArticle returns a single article by ID, or nil when absent.
func (s *Store) GetArticle(id string) (*Article, error) {
	row := s.db.QueryRow("SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var a Article
	var title, datePublished, language, plainText, markdownText, tlDr,
		audioFile, markdownFile, vttFile sql.NullString
	err := row.Scan(&a.ID, &a.URL, &title, &datePublished, &a.DateAdded,
		&language, &plainText, &markdownText, &tlDr, &audioFile, &markdownFile, &vttFile)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}
	a.Title = title.String
	a.DatePublished = datePublished.String
	a.Language = language.String
	a.PlainText = plainText.String
	a.MarkdownText = markdownText.String
	a.TlDr = tlDr.String
	a.AudioFile = audioFile.String
	a.MarkdownFile = markdownFile.String
	a.VTTFile = vttFile.String
	return &a, nil
}

// ArticleExists reports whether an article with the given ID is stored.
func (s *Store) ArticleExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM articles WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check article %s: %w", id, err)
	}
	return true, nil
}

// CountArticles returns the total number of stored articles.
func (s *Store) CountArticles() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// DeleteArticle removes an article by ID and returns the number of rows
// affected (0 when absent). Join rows in article_author follow via FK
// cascade; seed references pointing at the article are set to NULL.
func (s *Store) DeleteArticle(id string) (int64, error) {
	result, err := s.db.Exec("DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete article %s: %w", id, err)
	}
	return result.RowsAffected()
}

// GetArticleAuthors returns the authors linked to an article, ordered by name.
func (s *Store) GetArticleAuthors(articleID string) ([]Author, error) {
	rows, err := s.db.Query(
		`SELECT authors.id, authors.name
		 FROM authors
		 JOIN article_author ON authors.id = article_author.author_id
		 WHERE article_author.article_id = ?
		 ORDER BY authors.name`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get article authors: %w", err)
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// GetArticleOverviews returns the compact article listing with authors
// resolved, newest first, paginated like GetArticles.
func (s *Store) GetArticleOverviews(skip, limit int) ([]ArticleOverview, error) {
	rows, err := s.db.Query(`
		SELECT articles.id, articles.title, group_concat(authors.name),
		       articles.date_published, articles.url
		FROM articles
		LEFT JOIN article_author ON articles.id = article_author.article_id
		LEFT JOIN authors ON article_author.author_id = authors.id
		GROUP BY articles.id
		ORDER BY articles.date_added DESC, articles.id
		LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get article overviews: %w", err)
	}
	defer rows.Close()

	var overviews []ArticleOverview
	for rows.Next() {
		var o ArticleOverview
		var title, authors, datePublished sql.NullString
		if err := rows.Scan(&o.ID, &title, &authors, &datePublished, &o.URL); err != nil {
			return nil, fmt.Errorf("failed to scan article overview: %w", err)
		}
		o.Title = title.String
		o.DatePublished = datePublished.String
		o.Authors = splitAuthors(authors)
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

// Texts

// CreateText inserts a standalone text; its ID is derived from the raw text.
// A duplicate text surfaces as ErrAlreadyExists.
func (s *Store) CreateText(t *Text) (string, error) {
	if t.Text == "" {
		return "", errors.New("text content is required")
	}
	id := ContentID(t.Text)

	dateAdded := t.DateAdded
	if dateAdded == "" {
		dateAdded = today()
	}

	_, err := s.db.Exec(
		`INSERT INTO texts (id, text, date_added, language, plain_text, audio_file)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, t.Text, dateAdded, nullable(t.Language), nullable(t.PlainText), nullable(t.AudioFile),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("text %s: %w", id, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to insert text: %w", err)
	}
	return id, nil
}

// GetText returns a single text by ID, or nil when absent.
func (s *Store) GetText(id string) (*Text, error) {
	var t Text
	var language, plainText, audioFile sql.NullString
	err := s.db.QueryRow(
		"SELECT id, text, date_added, language, plain_text, audio_file FROM texts WHERE id = ?", id,
	).Scan(&t.ID, &t.Text, &t.DateAdded, &language, &plainText, &audioFile)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get text %s: %w", id, err)
	}
	t.Language = language.String
	t.PlainText = plainText.String
	t.AudioFile = audioFile.String
	return &t, nil
}

// Podcasts

// CreatePodcast inserts a podcast; its ID is derived from the title. When a
// seed text or seed article ID is given, one seed_text row links the podcast
// back to its source; the insert and the link commit as one transaction.
// A duplicate title surfaces as ErrAlreadyExists.
func (s *Store) CreatePodcast(p *Podcast, seedTextID, seedArticleID string) (string, error) {
	if p.Title == "" {
		return "", errors.New("podcast title is required")
	}
	id := ContentID(p.Title)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin create podcast: %w", err)
	}
	defer tx.Rollback()

	dateAdded := p.DateAdded
	if dateAdded == "" {
		dateAdded = today()
	}

	_, err = tx.Exec(
		`INSERT INTO podcasts (id, title, text, date_added, language, plain_text, audio_file, markdown_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, nullable(p.Text), dateAdded, nullable(p.Language),
		nullable(p.PlainText), nullable(p.AudioFile), nullable(p.MarkdownFile),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("podcast %s: %w", id, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to insert podcast: %w", err)
	}

	if seedTextID != "" || seedArticleID != "" {
		if _, err := tx.Exec(
			"INSERT INTO seed_text (podcast_id, article_id, text_id) VALUES (?, ?, ?)",
			id, nullable(seedArticleID), nullable(seedTextID),
		); err != nil {
			return "", fmt.Errorf("failed to link podcast seed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create podcast: %w", err)
	}
	return id, nil
}

// GetPodcast returns a single podcast by ID, or nil when absent.
func (s *Store) GetPodcast(id string) (*Podcast, error) {
	var p Podcast
	var text, language, plainText, audioFile, markdownFile sql.NullString
	err := s.db.QueryRow(
		`SELECT id, title, text, date_added, language, plain_text, audio_file, markdown_file
		 FROM podcasts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &text, &p.DateAdded, &language, &plainText, &audioFile, &markdownFile)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get podcast %s: %w", id, err)
	}
	p.Text = text.String
	p.Language = language.String
	p.PlainText = plainText.String
	p.AudioFile = audioFile.String
	p.MarkdownFile = markdownFile.String
	return &p, nil
}

// GetPodcastSeed returns the IDs of the article and text a podcast was
// generated from. Both come back empty when the podcast has no seed row.
func (s *Store) GetPodcastSeed(podcastID string) (articleID, textID string, err error) {
	var art, txt sql.NullString
	err = s.db.QueryRow(
		"SELECT article_id, text_id FROM seed_text WHERE podcast_id = ?", podcastID,
	).Scan(&art, &txt)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to get podcast seed: %w", err)
	}
	return art.String, txt.String, nil
}

// Authors

// AddAuthor inserts an author with a caller-supplied ID. A duplicate ID or
// name surfaces as ErrAlreadyExists so callers decide how to react.
func (s *Store) AddAuthor(author Author) error {
	_, err := s.db.Exec("INSERT INTO authors (id, name) VALUES (?, ?)", author.ID, author.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("author %q: %w", author.Name, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to add author: %w", err)
	}
	return nil
}

// GetAuthor returns an author by ID, or nil when absent.
func (s *Store) GetAuthor(id string) (*Author, error) {
	var a Author
	err := s.db.QueryRow("SELECT id, name FROM authors WHERE id = ?", id).Scan(&a.ID, &a.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author %s: %w", id, err)
	}
	return &a, nil
}

// Listings

// FetchAvailableMedia returns every article, podcast, and text that has an
// audio artifact, normalized into one listing. Authors are resolved for
// articles only, matching the stored join; podcasts and texts carry none.
func (s *Store) FetchAvailableMedia() ([]AvailableMedia, error) {
	var media []AvailableMedia

	rows, err := s.db.Query(`
		SELECT articles.id, articles.title, articles.date_added, articles.date_published,
		       group_concat(authors.name), articles.plain_text
		FROM articles
		LEFT JOIN article_author ON articles.id = article_author.article_id
		LEFT JOIN authors ON article_author.author_id = authors.id
		WHERE articles.audio_file IS NOT NULL
		GROUP BY articles.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available articles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m AvailableMedia
		var title, datePublished, authors, text sql.NullString
		if err := rows.Scan(&m.ID, &title, &m.DateAdded, &datePublished, &authors, &text); err != nil {
			return nil, fmt.Errorf("failed to scan available article: %w", err)
		}
		m.Title = title.String
		m.DatePublished = datePublished.String
		m.Authors = splitAuthors(authors)
		m.Text = text.String
		m.Type = MediaTypeArticle
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, title, date_added, text
		FROM podcasts
		WHERE audio_file IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available podcasts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m AvailableMedia
		var text sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.DateAdded, &text); err != nil {
			return nil, fmt.Errorf("failed to scan available podcast: %w", err)
		}
		m.Text = text.String
		m.Type = MediaTypePodcast
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, date_added, plain_text
		FROM texts
		WHERE audio_file IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available texts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m AvailableMedia
		var text sql.NullString
		if err := rows.Scan(&m.ID, &m.DateAdded, &text); err != nil {
			return nil, fmt.Errorf("failed to scan available text: %w", err)
		}
		m.Text = text.String
		m.Type = MediaTypeText
		media = append(media, m)
	}
	return media, rows.Err()
}

// helpers

// nullable maps the empty string to NULL so "unset" never round-trips as "".
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeDate validates a YYYY-MM-DD publication date. Invalid or absent
// values become NULL, never an error — publication dates arrive from
// unreliable scrapers and must not block a create.
func normalizeDate(s string) any {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func splitAuthors(concat sql.NullString) []string {
	if !concat.Valid || concat.String == "" {
		return nil
	}
	return strings.Split(concat.String, ",")
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
