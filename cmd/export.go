package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	globalConfig "github.com/postline/postline/config"
	domainAnalytics "github.com/postline/postline/domains/analytics"
	"github.com/postline/postline/infrastructure/platformapi"
	"github.com/postline/postline/usecase"
	"github.com/postline/postline/validations"
)

var (
	exportPlatform string
	exportFormat   string
	exportDays     int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export post and engagement analytics to CSV or XLSX",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportPlatform, "platform", "P", "", "target platform | example: --platform=twitter")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format, csv or xlsx")
	exportCmd.Flags().IntVarP(&exportDays, "days", "", 30, "how many days back to export")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := resolvePlatform(exportPlatform)
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

	result, err := service.Export(ctx, domainAnalytics.ExportRequest{
		Platform: p,
		Format:   domainAnalytics.ExportFormat(exportFormat),
		OutDir:   globalConfig.PathExports,
		Since:    clock.Now().AddDate(0, 0, -exportDays),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d rows to %s\n", result.Rows, result.Path)
	return nil
}
