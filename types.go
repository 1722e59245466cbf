package read2me

// ArticleData carries the fields of an article to create. The ID is derived
// from the URL; unset optional fields stay empty. File paths reference
// artifacts produced elsewhere and are stored as opaque strings.
type ArticleData struct {
	URL           string `json:"url"`
	Title         string `json:"title,omitempty"`
	DatePublished string `json:"date_published,omitempty"`
	DateAdded     string `json:"date_added,omitempty"`
	Language      string `json:"language,omitempty"`
	PlainText     string `json:"plain_text,omitempty"`
	MarkdownText  string `json:"markdown_text,omitempty"`
	TlDr          string `json:"tl_dr,omitempty"`
	AudioFile     string `json:"audio_file,omitempty"`
	MarkdownFile  string `json:"markdown_file,omitempty"`
	VTTFile       string `json:"vtt_file,omitempty"`
}

// TextData carries the fields of a standalone text to create. The ID is
// derived from the raw text.
type TextData struct {
	Text      string `json:"text"`
	DateAdded string `json:"date_added,omitempty"`
	Language  string `json:"language,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
	AudioFile string `json:"audio_file,omitempty"`
}

// PodcastData carries the fields of a podcast to create. The ID is derived
// from the title.
type PodcastData struct {
	Title        string `json:"title"`
	Text         string `json:"text,omitempty"`
	DateAdded    string `json:"date_added,omitempty"`
	Language     string `json:"language,omitempty"`
	PlainText    string `json:"plain_text,omitempty"`
	AudioFile    string `json:"audio_file,omitempty"`
	MarkdownFile string `json:"markdown_file,omitempty"`
}

// Article is a stored article with its authors resolved.
type Article struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title,omitempty"`
	DatePublished string   `json:"date_published,omitempty"`
	DateAdded     string   `json:"date_added"`
	Language      string   `json:"language,omitempty"`
	PlainText     string   `json:"plain_text,omitempty"`
	MarkdownText  string   `json:"markdown_text,omitempty"`
	TlDr          string   `json:"tl_dr,omitempty"`
	AudioFile     string   `json:"audio_file,omitempty"`
	MarkdownFile  string   `json:"markdown_file,omitempty"`
	VTTFile       string   `json:"vtt_file,omitempty"`
	Authors       []string `json:"authors,omitempty"`
}

// Text is a stored standalone text.
type Text struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	DateAdded string `json:"date_added"`
	Language  string `json:"language,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
	AudioFile string `json:"audio_file,omitempty"`
}

// Podcast is a stored podcast with its seed reference resolved.
type Podcast struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Text          string `json:"text,omitempty"`
	DateAdded     string `json:"date_added"`
	Language      string `json:"language,omitempty"`
	PlainText     string `json:"plain_text,omitempty"`
	AudioFile     string `json:"audio_file,omitempty"`
	MarkdownFile  string `json:"markdown_file,omitempty"`
	SeedArticleID string `json:"seed_article_id,omitempty"`
	SeedTextID    string `json:"seed_text_id,omitempty"`
}

// Author is a stored author.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AvailableMedia is one entry of the unified listing of items that have a
// finished audio artifact.
type AvailableMedia struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	DateAdded     string   `json:"date_added"`
	DatePublished string   `json:"date_published,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Text          string   `json:"text,omitempty"`
	Type          string   `json:"type"`
}

// ArticleOverview is the compact article listing shape.
type ArticleOverview struct {
	ID            string   `json:"id"`
	Title         string   `json:"title,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	DatePublished string   `json:"date_published,omitempty"`
	URL           string   `json:"url"`
}

// ArticleFields selects article columns to update; nil fields are left
// untouched. Identity fields are excluded — the ID is derived from the URL.
type ArticleFields struct {
	Title         *string
	DatePublished *string
	Language      *string
	PlainText     *string
	MarkdownText  *string
	TlDr          *string
	AudioFile     *string
	MarkdownFile  *string
	VTTFile       *string
}

// TextFields selects text columns to update.
type TextFields struct {
	Language  *string
	PlainText *string
	AudioFile *string
}

// PodcastFields selects podcast columns to update.
type PodcastFields struct {
	Text         *string
	Language     *string
	PlainText    *string
	AudioFile    *string
	MarkdownFile *string
}
