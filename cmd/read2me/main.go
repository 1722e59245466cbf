package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"read2me/internal/output"
	"read2me/internal/storage"
)

var (
	configPath   string
	cfg          *storage.Config
	outputFormat string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "read2me",
		Short: "Personal archive of articles, texts and podcasts with their audio renditions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "human", "output format: json, text, human")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(addTextCmd())
	rootCmd.AddCommand(addPodcastCmd())
	rootCmd.AddCommand(addAuthorCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(mediaCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(setCmd())
	rootCmd.AddCommand(setTextCmd())
	rootCmd.AddCommand(setPodcastCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = storage.DefaultConfig()
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg = storage.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

func addCmd() *cobra.Command {
	var article storage.Article
	var authors []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an article to the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			// Pre-check so a re-run with the same URL reads as a no-op
			// instead of an error.
			id := storage.ContentID(article.URL)
			exists, err := store.ArticleExists(id)
			if err != nil {
				return err
			}
			if exists {
				fmt.Printf("Article %s already archived for %s\n", id, article.URL)
				return nil
			}

			if _, err := store.CreateArticle(&article, authors); err != nil {
				return fmt.Errorf("failed to add article: %w", err)
			}

			fmt.Printf("Archived article %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&article.URL, "url", "", "article URL (required)")
	cmd.Flags().StringVar(&article.Title, "title", "", "article title")
	cmd.Flags().StringVar(&article.DatePublished, "published", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&article.Language, "language", "", "article language")
	cmd.Flags().StringVar(&article.PlainText, "plain-text", "", "plain text content")
	cmd.Flags().StringVar(&article.MarkdownText, "markdown-text", "", "markdown content")
	cmd.Flags().StringVar(&article.TlDr, "tl-dr", "", "short summary")
	cmd.Flags().StringVar(&article.AudioFile, "audio-file", "", "path to the audio rendition")
	cmd.Flags().StringVar(&article.MarkdownFile, "markdown-file", "", "path to the markdown file")
	cmd.Flags().StringVar(&article.VTTFile, "vtt-file", "", "path to the VTT subtitle file")
	cmd.Flags().StringArrayVar(&authors, "author", nil, "author name (repeatable)")
	cmd.MarkFlagRequired("url")
	return cmd
}

func addTextCmd() *cobra.Command {
	var text storage.Text
	var fromFile string
	cmd := &cobra.Command{
		Use:   "add-text",
		Short: "Add a standalone text to the archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile != "" {
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("failed to read text file: %w", err)
				}
				text.Text = string(data)
			}
			if text.Text == "" {
				return errors.New("either --text or --file is required")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.CreateText(&text)
			if errors.Is(err, storage.ErrAlreadyExists) {
				fmt.Printf("Text %s already archived\n", storage.ContentID(text.Text))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to add text: %w", err)
			}

			fmt.Printf("Archived text %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&text.Text, "text", "", "raw text content")
	cmd.Flags().StringVar(&fromFile, "file", "", "read the text from a file")
	cmd.Flags().StringVar(&text.Language, "language", "", "text language")
	cmd.Flags().StringVar(&text.PlainText, "plain-text", "", "normalized plain text")
	cmd.Flags().StringVar(&text.AudioFile, "audio-file", "", "path to the audio rendition")
	return cmd
}

func addPodcastCmd() *cobra.Command {
	var podcast storage.Podcast
	var seedText, seedArticle string
	cmd := &cobra.Command{
		Use:   "add-podcast",
		Short: "Add a podcast to the archive, optionally linked to its source",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.CreatePodcast(&podcast, seedText, seedArticle)
			if errors.Is(err, storage.ErrAlreadyExists) {
				fmt.Printf("Podcast %s already archived\n", storage.ContentID(podcast.Title))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to add podcast: %w", err)
			}

			fmt.Printf("Archived podcast %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&podcast.Title, "title", "", "podcast title (required)")
	cmd.Flags().StringVar(&podcast.Text, "text", "", "podcast script")
	cmd.Flags().StringVar(&podcast.Language, "language", "", "podcast language")
	cmd.Flags().StringVar(&podcast.PlainText, "plain-text", "", "normalized plain text")
	cmd.Flags().StringVar(&podcast.AudioFile, "audio-file", "", "path to the audio file")
	cmd.Flags().StringVar(&podcast.MarkdownFile, "markdown-file", "", "path to the markdown file")
	cmd.Flags().StringVar(&seedText, "seed-text", "", "ID of the text this podcast was generated from")
	cmd.Flags().StringVar(&seedArticle, "seed-article", "", "ID of the article this podcast was generated from")
	cmd.MarkFlagRequired("title")
	return cmd
}

func addAuthorCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "add-author <name>",
		Short: "Add an author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if id == "" {
				id = uuid.NewString()
			}
			err = store.AddAuthor(storage.Author{ID: id, Name: args[0]})
			if errors.Is(err, storage.ErrAlreadyExists) {
				fmt.Printf("Author %q already exists\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Added author %s (%s)\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "author ID (generated when omitted)")
	return cmd
}

func listCmd() *cobra.Command {
	var skip, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if limit == 0 {
				limit = cfg.Listing.PageSize
			}
			overviews, err := store.GetArticleOverviews(skip, limit)
			if err != nil {
				return fmt.Errorf("failed to list articles: %w", err)
			}
			return formatter.OutputArticleOverviews(overviews)
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "number of articles to skip")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of articles (default: config page size)")
	return cmd
}

func mediaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "media",
		Short: "List all items that have an audio rendition",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			media, err := store.FetchAvailableMedia()
			if err != nil {
				return fmt.Errorf("failed to list media: %w", err)
			}
			return formatter.OutputMediaList(media)
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <article-id>",
		Short: "Show one archived article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(output.Format(outputFormat))

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			article, err := store.GetArticle(args[0])
			if err != nil {
				return err
			}
			if article == nil {
				return fmt.Errorf("no article with ID %s", args[0])
			}

			authors, err := store.GetArticleAuthors(article.ID)
			if err != nil {
				return err
			}
			return formatter.OutputArticle(article, authors)
		},
	}
}

// stringFlag returns a pointer to the flag value only when the flag was set,
// so unset flags never clobber stored columns.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <article-id>",
		Short: "Update fields of an archived article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fields := storage.ArticleFields{
				Title:         stringFlag(cmd, "title"),
				DatePublished: stringFlag(cmd, "published"),
				Language:      stringFlag(cmd, "language"),
				PlainText:     stringFlag(cmd, "plain-text"),
				MarkdownText:  stringFlag(cmd, "markdown-text"),
				TlDr:          stringFlag(cmd, "tl-dr"),
				AudioFile:     stringFlag(cmd, "audio-file"),
				MarkdownFile:  stringFlag(cmd, "markdown-file"),
				VTTFile:       stringFlag(cmd, "vtt-file"),
			}

			affected, err := store.UpdateArticle(args[0], fields)
			if errors.Is(err, storage.ErrNoFields) {
				fmt.Println("Nothing to update")
				return nil
			}
			if err != nil {
				return err
			}
			if affected == 0 {
				fmt.Printf("No article with ID %s\n", args[0])
				return nil
			}
			fmt.Printf("Updated article %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("title", "", "article title")
	cmd.Flags().String("published", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().String("language", "", "article language")
	cmd.Flags().String("plain-text", "", "plain text content")
	cmd.Flags().String("markdown-text", "", "markdown content")
	cmd.Flags().String("tl-dr", "", "short summary")
	cmd.Flags().String("audio-file", "", "path to the audio rendition")
	cmd.Flags().String("markdown-file", "", "path to the markdown file")
	cmd.Flags().String("vtt-file", "", "path to the VTT subtitle file")
	return cmd
}

func setTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-text <text-id>",
		Short: "Update fields of an archived text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fields := storage.TextFields{
				Language:  stringFlag(cmd, "language"),
				PlainText: stringFlag(cmd, "plain-text"),
				AudioFile: stringFlag(cmd, "audio-file"),
			}

			affected, err := store.UpdateText(args[0], fields)
			if errors.Is(err, storage.ErrNoFields) {
				fmt.Println("Nothing to update")
				return nil
			}
			if err != nil {
				return err
			}
			if affected == 0 {
				fmt.Printf("No text with ID %s\n", args[0])
				return nil
			}
			fmt.Printf("Updated text %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("language", "", "text language")
	cmd.Flags().String("plain-text", "", "normalized plain text")
	cmd.Flags().String("audio-file", "", "path to the audio rendition")
	return cmd
}

func setPodcastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-podcast <podcast-id>",
		Short: "Update fields of an archived podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fields := storage.PodcastFields{
				Text:         stringFlag(cmd, "text"),
				Language:     stringFlag(cmd, "language"),
				PlainText:    stringFlag(cmd, "plain-text"),
				AudioFile:    stringFlag(cmd, "audio-file"),
				MarkdownFile: stringFlag(cmd, "markdown-file"),
			}

			affected, err := store.UpdatePodcast(args[0], fields)
			if errors.Is(err, storage.ErrNoFields) {
				fmt.Println("Nothing to update")
				return nil
			}
			if err != nil {
				return err
			}
			if affected == 0 {
				fmt.Printf("No podcast with ID %s\n", args[0])
				return nil
			}
			fmt.Printf("Updated podcast %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("text", "", "podcast script")
	cmd.Flags().String("language", "", "podcast language")
	cmd.Flags().String("plain-text", "", "normalized plain text")
	cmd.Flags().String("audio-file", "", "path to the audio file")
	cmd.Flags().String("markdown-file", "", "path to the markdown file")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <article-id>",
		Short: "Delete an archived article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			affected, err := store.DeleteArticle(args[0])
			if err != nil {
				return err
			}
			if affected == 0 {
				fmt.Printf("No article with ID %s\n", args[0])
				return nil
			}
			fmt.Printf("Deleted article %s\n", args[0])
			return nil
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = "./config/config.yaml"
			}

			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}

			cfg := storage.DefaultConfig()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			if err := os.WriteFile(configPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Created default config at %s\n", configPath)
			return nil
		},
	}
}
