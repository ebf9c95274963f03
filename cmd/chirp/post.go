package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/abdulachik/chirp/internal/config"
	"github.com/abdulachik/chirp/internal/poster"
	"github.com/abdulachik/chirp/internal/store"
	"github.com/abdulachik/chirp/internal/twitter"
	"github.com/spf13/cobra"
)

var (
	postMediaPath string
	postDryRun    bool
)

var postCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Post a tweet",
	Long: `Publish a tweet from the authorized account.

Examples:
  chirp post "hello world"
  chirp post "look at this" --media photo.png
  chirp post "hello" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runPost,
}

func init() {
	postCmd.Flags().StringVar(&postMediaPath, "media", "", "Path to an image or video to attach")
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Show what would be posted without actually posting")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	text := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForPosting(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	content := poster.PostContent{Text: text}
	if postMediaPath != "" {
		media, err := os.ReadFile(postMediaPath)
		if err != nil {
			return fmt.Errorf("read media file: %w", err)
		}
		content.Media = media
		content.MediaType = http.DetectContentType(media)
	}

	if postDryRun {
		fmt.Println("=== DRY RUN - Not posting ===")
		fmt.Println(content.Text)
		if postMediaPath != "" {
			fmt.Printf("media: %s (%s, %d bytes)\n", postMediaPath, content.MediaType, len(content.Media))
		}
		return nil
	}

	client, db, err := authorizedClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	p := poster.NewTwitterPoster(client)
	result, err := p.Post(ctx, content)
	if err != nil {
		return err
	}

	fmt.Printf("Posted successfully!\nURL: %s\n", result.PostURL)

	if err := db.RecordPost(ctx, store.Post{
		TweetID: result.PostID,
		Text:    text,
	}); err != nil {
		slog.Warn("failed to record post", "error", err)
	}

	return nil
}

// authorizedClient builds a client from the environment's access token or,
// failing that, the stored login.
func authorizedClient(ctx context.Context, cfg *config.Config) (*twitter.Client, *store.Store, error) {
	db, err := store.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	creds := twitter.Credentials{
		ConsumerKey:       cfg.ConsumerKey,
		ConsumerSecret:    cfg.ConsumerSecret,
		AccessToken:       cfg.AccessToken,
		AccessTokenSecret: cfg.AccessTokenSecret,
	}
	var identity twitter.Identity

	if !cfg.HasAccessToken() {
		saved, err := db.LoadCredentials(ctx)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if saved == nil {
			db.Close()
			return nil, nil, fmt.Errorf("no access token: set TWITTER_ACCESS_TOKEN or run %q first", "chirp login")
		}
		creds.AccessToken = saved.AccessToken
		creds.AccessTokenSecret = saved.AccessTokenSecret
		identity = twitter.Identity{UserID: saved.UserID, ScreenName: saved.ScreenName}
	}

	client := twitter.NewClient(twitter.Config{
		Credentials: creds,
		Identity:    identity,
		Timeout:     cfg.RequestTimeout,
	})
	return client, db, nil
}
