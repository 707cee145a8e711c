package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/catalog"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/dashboard"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/config"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/httputil"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/redis"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [handle]",
	Short: "Print a one-shot dashboard for a handle",
	Long: `Fetches a user's Codeforces data and prints the dashboard summary
to the terminal: profile, streaks, weak tags, and optionally practice
recommendations for the weakest tag.

Example:
  go run ./cmd/cfdash report tourist
  go run ./cmd/cfdash report tourist --recommend`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var reportRecommend bool

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportRecommend, "recommend", false, "also print recommendations for the weakest tag")
}

func runReport(cmd *cobra.Command, args []string) error {
	handle := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	rdb, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	httpClient := httputil.New(cfg.Codeforces.RequestTimeout, log).
		WithRateLimit(cfg.Codeforces.RequestInterval)
	cfClient := codeforces.NewClient(cfg.Codeforces.BaseURL, httpClient, log)
	store := catalog.NewStore(cfClient, redis.NewCache(rdb, "cfdash"), cfg.Codeforces.CatalogTTL, log)

	svcCfg := dashboard.DefaultConfig()
	svcCfg.SubmissionCount = cfg.Codeforces.SubmissionCount
	service := dashboard.NewService(cfClient, store, svcCfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	view := service.Build(ctx, handle, time.Now())

	if view.Profile == nil {
		fmt.Println("Could not fetch user. Check handle or network.")
		return nil
	}

	p := view.Profile
	fmt.Printf("=== %s ===\n", p.Handle)
	fmt.Printf("Rank:   %s\n", titleOrUnrated(p.Rank))
	fmt.Printf("Rating: %s (max %s)\n", intLabel(p.Rating), intLabel(p.MaxRating))
	fmt.Printf("Streak: %d days current, %d days longest\n", view.Streaks.Current, view.Streaks.Longest)

	if len(view.WeakTags) == 0 {
		fmt.Println("\nWeak tags: not enough data")
	} else {
		fmt.Println("\nWeak tags:")
		for _, wt := range view.WeakTags {
			fmt.Printf("  %-28s %2d/%2d solved (%.0f%%)\n", wt.Tag, wt.SolvedCount, wt.TotalAttempts, wt.SuccessRate*100)
		}
	}

	if reportRecommend && len(view.WeakTags) > 0 {
		tag := view.WeakTags[0].Tag
		fmt.Printf("\nRecommendations for %q:\n", tag)

		recs := service.Recommend(ctx, handle, tag, 0)
		if len(recs) == 0 {
			fmt.Println("  No problems found for this tag.")
		}
		for _, r := range recs {
			fmt.Printf("  [%s] %s\n      %s\n", r.Rating, r.Name, r.Link)
		}
	}

	return nil
}

func intLabel(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func titleOrUnrated(rank string) string {
	if rank == "" {
		return "Unrated"
	}
	words := strings.Fields(rank)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
