package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	globalConfig "github.com/postline/postline/config"
	"github.com/postline/postline/infrastructure/platformapi"
	"github.com/postline/postline/validations"
)

var authPlatform string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify that a platform's credentials can be exchanged for an access token",
	RunE:  runAuth,
}

func init() {
	authCmd.Flags().StringVarP(&authPlatform, "platform", "P", "", "target platform | example: --platform=pinterest")
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := resolvePlatform(authPlatform)
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

	registry := platformapi.NewRegistry(cfg, globalConfig.UploadTimeout)
	accessToken, err := registry.Token(ctx, p)
	if err != nil {
		return err
	}

	masked := accessToken
	if len(masked) > 8 {
		masked = masked[:4] + "..." + masked[len(masked)-4:]
	}
	fmt.Printf("%s: token ok (%s)\n", p, masked)
	return nil
}
