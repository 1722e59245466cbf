package storage

// Updatable column sets, one per entity. UPDATE statements are assembled from
// these closed enumerations only — column names never originate from caller
// strings. Identity fields (url, raw text, title for podcasts) are excluded
// because the row ID is derived from them.

// ArticleFields selects article columns to update. Nil fields are left alone.
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

func (f ArticleFields) assignments() *setClause {
	s := &setClause{}
	s.add("title", f.Title)
	if f.DatePublished != nil {
		s.addValue("date_published", normalizeDate(*f.DatePublished))
	}
	s.add("language", f.Language)
	s.add("plain_text", f.PlainText)
	s.add("markdown_text", f.MarkdownText)
	s.add("tl_dr", f.TlDr)
	s.add("audio_file", f.AudioFile)
	s.add("markdown_file", f.MarkdownFile)
	s.add("vtt_file", f.VTTFile)
	return s
}

// TextFields selects text columns to update. The raw text itself is not
// updatable since the row ID hashes it.
type TextFields struct {
	Language  *string
	PlainText *string
	AudioFile *string
}

func (f TextFields) assignments() *setClause {
	s := &setClause{}
	s.add("language", f.Language)
	s.add("plain_text", f.PlainText)
	s.add("audio_file", f.AudioFile)
	return s
}

// PodcastFields selects podcast columns to update. The title is not updatable
// since the row ID hashes it.
type PodcastFields struct {
	Text         *string
	Language     *string
	PlainText    *string
	AudioFile    *string
	MarkdownFile *string
}

func (f PodcastFields) assignments() *setClause {
	s := &setClause{}
	s.add("text", f.Text)
	s.add("language", f.Language)
	s.add("plain_text", f.PlainText)
	s.add("audio_file", f.AudioFile)
	s.add("markdown_file", f.MarkdownFile)
	return s
}

// setClause accumulates "col = ?" assignments and their arguments.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v *string) {
	if v != nil {
		// Empty string clears the column back to NULL, same as on create.
		s.addValue(col, nullable(*v))
	}
}

func (s *setClause) addValue(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setClause) empty() bool {
	return len(s.cols) == 0
}
