package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	globalConfig "github.com/postline/postline/config"
	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	"github.com/postline/postline/infrastructure/history"
	"github.com/postline/postline/infrastructure/platformapi"
	"github.com/postline/postline/infrastructure/schedulestore"
	pkgError "github.com/postline/postline/pkg/error"
	"github.com/postline/postline/usecase"
	"github.com/postline/postline/validations"
)

var (
	scheduleCSVPath  string
	schedulePlatform string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a CSV batch and run the dispatcher until every post is resolved",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleCSVPath, "csv", "c", "", "path to the batch CSV file")
	scheduleCmd.Flags().StringVarP(&schedulePlatform, "platform", "P", "", "target platform | example: --platform=instagram")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := resolvePlatform(schedulePlatform)
	if err != nil {
		return err
	}
	if scheduleCSVPath == "" {
		scheduleCSVPath = promptLine(fmt.Sprintf("CSV file for %s batch: ", p))
	}
	if scheduleCSVPath == "" {
		return fmt.Errorf("a batch CSV path is required")
	}

	cfg, err := globalConfig.LoadPlatforms()
	if err != nil {
		return err
	}
	if err := validations.ValidatePlatformConfig(ctx, cfg, p); err != nil {
		return err
	}

	store, err := schedulestore.NewFileStore(globalConfig.PathSchedules)
	if err != nil {
		return err
	}

	var historySink domainSchedule.IHistorySink
	if sink, err := history.NewSQLiteSink(globalConfig.HistoryDBPath); err != nil {
		logrus.WithError(err).Warn("[APP] Upload history disabled")
	} else {
		historySink = sink
	}

	clock := usecase.NewSystemClock()
	registry := platformapi.NewRegistry(cfg, globalConfig.UploadTimeout)
	tokenCache := usecase.NewTokenCacheService(registry, clock, globalConfig.TokenCacheTTL)

	loader := usecase.NewLoaderService()
	posts, err := loader.Load(ctx, scheduleCSVPath, p)
	if err != nil {
		return err
	}

	initializer := usecase.NewInitializerService(store, clock)
	tracked, err := initializer.Initialize(ctx, scheduleCSVPath, posts, p)
	if err != nil {
		if complete, ok := err.(pkgError.AlreadyCompleteError); ok {
			logrus.Info(complete.Error())
			return nil
		}
		return err
	}
	logrus.Infof("[APP] Tracking %d posts, starting dispatcher", tracked)

	dispatcher := usecase.NewDispatcherService(
		store,
		registry,
		tokenCache,
		historySink,
		clock,
		globalConfig.DispatcherInterval,
		globalConfig.UploadTimeout,
	)
	return dispatcher.Run(ctx)
}

func resolvePlatform(raw string) (domainPlatform.Platform, error) {
	if raw != "" {
		return domainPlatform.Parse(raw)
	}

	fmt.Println("Select a platform:")
	all := domainPlatform.All()
	for idx, p := range all {
		fmt.Printf("  %d) %s\n", idx+1, p)
	}

	answer := promptLine("Choice: ")
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(all) {
		return all[n-1], nil
	}
	return domainPlatform.Parse(answer)
}

func promptLine(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
