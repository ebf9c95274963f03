package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdulachik/chirp/internal/config"
	"github.com/abdulachik/chirp/internal/store"
	"github.com/abdulachik/chirp/internal/twitter"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize chirp with a Twitter account",
	Long: `Run the three-legged OAuth handshake using the out-of-band (PIN) flow.

Chirp prints an authorization URL; open it in a browser, approve the app,
and enter the PIN Twitter shows you. The resulting access token is saved
locally and reused by every later command.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForLogin(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	db, err := store.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	client := twitter.NewClient(twitter.Config{
		Credentials: twitter.Credentials{
			ConsumerKey:    cfg.ConsumerKey,
			ConsumerSecret: cfg.ConsumerSecret,
		},
		Timeout: cfg.RequestTimeout,
	})

	if err := client.RequestToken(ctx); err != nil {
		return fmt.Errorf("obtain request token: %w", err)
	}

	authorizeURL, err := client.AuthorizeURL()
	if err != nil {
		return fmt.Errorf("build authorize URL: %w", err)
	}

	fmt.Println("(1) Go to:", authorizeURL)
	fmt.Println("(2) Grant access; Twitter will show you a PIN.")
	fmt.Print("(3) Enter that PIN here: ")

	var pin string
	if _, err := fmt.Scanln(&pin); err != nil {
		return fmt.Errorf("read PIN: %w", err)
	}
	pin = strings.TrimSpace(pin)

	if err := client.AccessToken(ctx, pin); err != nil {
		return fmt.Errorf("exchange PIN for access token: %w", err)
	}

	creds := client.Credentials()
	identity := client.Identity()
	if err := db.SaveCredentials(ctx, store.Credentials{
		AccessToken:       creds.AccessToken,
		AccessTokenSecret: creds.AccessTokenSecret,
		UserID:            identity.UserID,
		ScreenName:        identity.ScreenName,
	}); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	fmt.Printf("Logged in as @%s (user id %s).\n", identity.ScreenName, identity.UserID)
	return nil
}
