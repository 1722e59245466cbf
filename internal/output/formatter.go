package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"read2me/internal/storage"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
	strip  *bluemonday.Policy
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return NewFormatterWithWriters(format, os.Stdout, os.Stderr)
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
		strip:  bluemonday.StrictPolicy(),
	}
}

// mediaItem is the JSON shape for one available-media entry.
type mediaItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	DateAdded     string   `json:"date_added"`
	DatePublished string   `json:"date_published,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Text          string   `json:"text,omitempty"`
	Type          string   `json:"type"`
}

// OutputMediaList outputs the available-media listing in the configured format
func (f *Formatter) OutputMediaList(media []storage.AvailableMedia) error {
	switch f.format {
	case FormatJSON:
		items := make([]mediaItem, len(media))
		for i, m := range media {
			items[i] = mediaItem{
				ID:            m.ID,
				Title:         m.Title,
				DateAdded:     m.DateAdded,
				DatePublished: m.DatePublished,
				Authors:       m.Authors,
				Text:          m.Text,
				Type:          m.Type,
			}
		}
		return json.NewEncoder(f.out).Encode(items)
	case FormatText:
		for _, m := range media {
			fmt.Fprintf(f.out, "id=%s\ttype=%s\ttitle=%s\tadded=%s\tauthors=%s\n",
				m.ID, m.Type, m.Title, m.DateAdded, strings.Join(m.Authors, ","))
		}
		return nil
	case FormatHuman:
		if len(media) == 0 {
			fmt.Fprintln(f.out, "No media with audio yet")
			return nil
		}
		fmt.Fprintf(f.out, "Available media (%d):\n\n", len(media))
		for _, m := range media {
			title := m.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(f.out, "[%s] %s — %s\n", m.Type, m.ID, title)
			if len(m.Authors) > 0 {
				fmt.Fprintf(f.out, "  by %s\n", strings.Join(m.Authors, ", "))
			}
			fmt.Fprintf(f.out, "  added %s\n", m.DateAdded)
			if m.Text != "" {
				fmt.Fprintf(f.out, "  %s\n", truncate(f.strip.Sanitize(m.Text), 200))
			}
			fmt.Fprintln(f.out, "---")
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// overviewItem is the JSON shape for one article overview row.
type overviewItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	DatePublished string   `json:"date_published,omitempty"`
	URL           string   `json:"url"`
}

// OutputArticleOverviews outputs the compact article listing
func (f *Formatter) OutputArticleOverviews(overviews []storage.ArticleOverview) error {
	switch f.format {
	case FormatJSON:
		items := make([]overviewItem, len(overviews))
		for i, o := range overviews {
			items[i] = overviewItem{
				ID:            o.ID,
				Title:         o.Title,
				Authors:       o.Authors,
				DatePublished: o.DatePublished,
				URL:           o.URL,
			}
		}
		return json.NewEncoder(f.out).Encode(items)
	case FormatText:
		for _, o := range overviews {
			fmt.Fprintf(f.out, "id=%s\ttitle=%s\tauthors=%s\tpublished=%s\turl=%s\n",
				o.ID, o.Title, strings.Join(o.Authors, ","), o.DatePublished, o.URL)
		}
		return nil
	case FormatHuman:
		if len(overviews) == 0 {
			fmt.Fprintln(f.out, "No articles stored")
			return nil
		}
		fmt.Fprintf(f.out, "Articles (%d):\n\n", len(overviews))
		for _, o := range overviews {
			fmt.Fprintf(f.out, "ID: %s\n", o.ID)
			fmt.Fprintf(f.out, "Title: %s\n", o.Title)
			if len(o.Authors) > 0 {
				fmt.Fprintf(f.out, "Authors: %s\n", strings.Join(o.Authors, ", "))
			}
			if o.DatePublished != "" {
				fmt.Fprintf(f.out, "Published: %s\n", o.DatePublished)
			}
			fmt.Fprintf(f.out, "URL: %s\n", o.URL)
			fmt.Fprintln(f.out, "---")
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// articleDetail is the JSON shape for a single article with its authors.
type articleDetail struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	DatePublished string   `json:"date_published,omitempty"`
	DateAdded     string   `json:"date_added"`
	Language      string   `json:"language,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	TlDr          string   `json:"tl_dr,omitempty"`
	AudioFile     string   `json:"audio_file,omitempty"`
	MarkdownFile  string   `json:"markdown_file,omitempty"`
	VTTFile       string   `json:"vtt_file,omitempty"`
}

// OutputArticle outputs a single article with its authors
func (f *Formatter) OutputArticle(a *storage.Article, authors []storage.Author) error {
	names := make([]string, len(authors))
	for i, au := range authors {
		names[i] = au.Name
	}

	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(articleDetail{
			ID:            a.ID,
			URL:           a.URL,
			Title:         a.Title,
			DatePublished: a.DatePublished,
			DateAdded:     a.DateAdded,
			Language:      a.Language,
			Authors:       names,
			TlDr:          a.TlDr,
			AudioFile:     a.AudioFile,
			MarkdownFile:  a.MarkdownFile,
			VTTFile:       a.VTTFile,
		})
	case FormatText:
		fmt.Fprintf(f.out, "id=%s\turl=%s\ttitle=%s\tpublished=%s\tadded=%s\taudio=%s\n",
			a.ID, a.URL, a.Title, a.DatePublished, a.DateAdded, a.AudioFile)
		return nil
	case FormatHuman:
		fmt.Fprintf(f.out, "ID: %s\n", a.ID)
		fmt.Fprintf(f.out, "Title: %s\n", a.Title)
		fmt.Fprintf(f.out, "URL: %s\n", a.URL)
		if len(names) > 0 {
			fmt.Fprintf(f.out, "Authors: %s\n", strings.Join(names, ", "))
		}
		if a.DatePublished != "" {
			fmt.Fprintf(f.out, "Published: %s\n", a.DatePublished)
		}
		fmt.Fprintf(f.out, "Added: %s\n", a.DateAdded)
		if a.AudioFile != "" {
			fmt.Fprintf(f.out, "Audio: %s\n", a.AudioFile)
		}
		if a.TlDr != "" {
			fmt.Fprintf(f.out, "\n%s\n", truncate(f.strip.Sanitize(a.TlDr), 500))
		} else if a.PlainText != "" {
			fmt.Fprintf(f.out, "\n%s\n", truncate(f.strip.Sanitize(a.PlainText), 500))
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// Error outputs an error message to stderr
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintf(f.err, format+"\n", args...)
}

// Warning outputs a warning message to stderr
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
