package main

import (
	"context"
	"fmt"

	"github.com/abdulachik/chirp/internal/config"
	"github.com/spf13/cobra"
)

var whoamiVerify bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authorized account",
	Long: `Show which account chirp is authorized as, along with recently
published tweets. With --verify, the access token is also checked against
the API.`,
	RunE: runWhoami,
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiVerify, "verify", false, "Check the access token against the API")
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForPosting(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	client, db, err := authorizedClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if whoamiVerify {
		identity, err := client.VerifyCredentials(ctx)
		if err != nil {
			return fmt.Errorf("verify credentials: %w", err)
		}
		fmt.Printf("Authorized as @%s (user id %s), token valid.\n", identity.ScreenName, identity.UserID)
	} else if identity := client.Identity(); identity.ScreenName != "" {
		fmt.Printf("Authorized as @%s (user id %s).\n", identity.ScreenName, identity.UserID)
	} else {
		fmt.Println("Access token present (identity unknown; use --verify).")
	}

	posts, err := db.RecentPosts(ctx, 5)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent posts:")
	for _, p := range posts {
		fmt.Printf("  %s  %s\n", p.PostedAt.Format("2006-01-02 15:04"), p.Text)
	}
	return nil
}
