package storage

const Schema = `
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL UNIQUE,
    title TEXT,
    date_published TEXT,
    date_added TEXT NOT NULL,
    language TEXT,
    plain_text TEXT,
    markdown_text TEXT,
    tl_dr TEXT,
    audio_file TEXT,
    markdown_file TEXT,
    vtt_file TEXT
);

CREATE INDEX IF NOT EXISTS idx_articles_date_added ON articles(date_added DESC);

CREATE TABLE IF NOT EXISTS texts (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    date_added TEXT NOT NULL,
    language TEXT,
    plain_text TEXT,
    audio_file TEXT
);

CREATE TABLE IF NOT EXISTS podcasts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    text TEXT,
    date_added TEXT NOT NULL,
    language TEXT,
    plain_text TEXT,
    audio_file TEXT,
    markdown_file TEXT
);

CREATE TABLE IF NOT EXISTS authors (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS article_author (
    article_id TEXT NOT NULL,
    author_id TEXT NOT NULL,
    PRIMARY KEY (article_id, author_id),
    FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE CASCADE,
    FOREIGN KEY (author_id) REFERENCES authors(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_article_author_author ON article_author(author_id);

CREATE TABLE IF NOT EXISTS seed_text (
    podcast_id TEXT NOT NULL,
    article_id TEXT,
    text_id TEXT,
    FOREIGN KEY (podcast_id) REFERENCES podcasts(id) ON DELETE CASCADE,
    FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE SET NULL,
    FOREIGN KEY (text_id) REFERENCES texts(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_seed_text_podcast ON seed_text(podcast_id);
`
