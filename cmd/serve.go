package cmd

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	globalConfig "github.com/postline/postline/config"
	"github.com/postline/postline/infrastructure/history"
	"github.com/postline/postline/infrastructure/schedulestore"
	uiRest "github.com/postline/postline/ui/rest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only status API over the schedule store",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := schedulestore.NewFileStore(globalConfig.PathSchedules)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "postline " + globalConfig.AppVersion,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	uiRest.InitRestHealth(app)
	uiRest.InitRestSchedule(app, store)

	if sink, err := history.NewSQLiteSink(globalConfig.HistoryDBPath); err != nil {
		logrus.WithError(err).Warn("[APP] Upload history endpoint disabled")
	} else {
		uiRest.InitRestHistory(app, sink)
	}

	logrus.Infof("[APP] Status API listening on :%s", globalConfig.AppPort)
	return app.Listen(":" + globalConfig.AppPort)
}
