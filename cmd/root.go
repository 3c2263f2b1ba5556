package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	globalConfig "github.com/postline/postline/config"
	domainPlatform "github.com/postline/postline/domains/platform"
	"github.com/postline/postline/pkg/utils"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "postline",
	Short: "Cross-platform social media scheduler",
	Long: `postline schedules and publishes media posts from CSV batches to
facebook, instagram, threads, pinterest, tiktok, twitter, youtube and rumble,
and exports post analytics. Scheduling state is persisted to disk so a
restart neither re-publishes nor loses posts.`,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig loads configuration from environment variables
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		globalConfig.AppPort = envPort
	}
	if envDebug := viper.GetBool("app_debug"); envDebug {
		globalConfig.AppDebug = envDebug
	}
	if envStorages := viper.GetString("path_storages"); envStorages != "" {
		globalConfig.PathStorages = envStorages
	}
	if envSchedules := viper.GetString("path_schedules"); envSchedules != "" {
		globalConfig.PathSchedules = envSchedules
	}
	if envExports := viper.GetString("path_exports"); envExports != "" {
		globalConfig.PathExports = envExports
	}
	if envInterval := viper.GetInt("dispatcher_interval_seconds"); envInterval > 0 {
		globalConfig.DispatcherInterval = time.Duration(envInterval) * time.Second
	}
}

func initFlags() {
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.AppDebug,
		"debug", "d",
		globalConfig.AppDebug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.PathStorages,
		"storages", "",
		globalConfig.PathStorages,
		`directory for schedule documents and history --storages <string> | example: --storages="storages"`,
	)
	rootCmd.PersistentFlags().DurationVarP(
		&globalConfig.DispatcherInterval,
		"interval", "",
		globalConfig.DispatcherInterval,
		`polling interval of the dispatcher --interval <duration> | example: --interval=60s`,
	)
}

func initApp() {
	if globalConfig.AppDebug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(globalConfig.PathStorages, globalConfig.PathSchedules, globalConfig.PathExports); err != nil {
		logrus.Errorln(err)
	}

	// Scaffold an empty credentials file on first start so operators have
	// something to fill in.
	if _, err := os.Stat(globalConfig.PlatformsFile); os.IsNotExist(err) {
		if err := globalConfig.SavePlatforms(&domainPlatform.Config{}); err != nil {
			logrus.WithError(err).Warn("[APP] Could not scaffold platform config file")
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
