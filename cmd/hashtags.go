package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	globalConfig "github.com/postline/postline/config"
	"github.com/postline/postline/infrastructure/platformapi"
	"github.com/postline/postline/usecase"
	"github.com/postline/postline/validations"
)

var (
	hashtagsPlatform string
	hashtagsLimit    int
	hashtagsDays     int
)

var hashtagsCmd = &cobra.Command{
	Use:   "hashtags",
	Short: "Show the most frequent hashtags across recent posts",
	RunE:  runHashtags,
}

func init() {
	hashtagsCmd.Flags().StringVarP(&hashtagsPlatform, "platform", "P", "", "target platform | example: --platform=instagram")
	hashtagsCmd.Flags().IntVarP(&hashtagsLimit, "top", "n", 20, "how many hashtags to show")
	hashtagsCmd.Flags().IntVarP(&hashtagsDays, "days", "", 90, "how many days back to scan")
	rootCmd.AddCommand(hashtagsCmd)
}

func runHashtags(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := resolvePlatform(hashtagsPlatform)
	if err != nil {
		return err
	}

	cfg, err := globalConfig.LoadPlatforms()
	if err != nil {
		return err
	}
	if err := validations.ValidatePlatformConfig(ctx, cfg, p); err != nil {
		return err
	}

	clock := usecase.NewSystemClock()
	registry := platformapi.NewRegistry(cfg, globalConfig.UploadTimeout)
	service := usecase.NewAnalyticsService(registry, clock)

	posts, err := registry.FetchPostMetrics(ctx, p, clock.Now().AddDate(0, 0, -hashtagsDays))
	if err != nil {
		return err
	}

	for _, entry := range service.TopHashtags(posts, hashtagsLimit) {
		fmt.Printf("%6d  %s\n", entry.Count, entry.Tag)
	}
	return nil
}
