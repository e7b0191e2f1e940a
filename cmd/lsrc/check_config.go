package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lsrc-api/internal/appconfig"
	"lsrc-api/internal/logger"
)

var errInvalidConfig = errors.New("configuration is not valid")

func newCheckConfigCmd() *cobra.Command {
	var configURL, envFile string

	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Merge remote or .env overrides over the defaults and validate the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.NewLogger("check-config", "warn")
			ctx := log.WithContext(cmd.Context())

			cfg := appconfig.Initialize(ctx, appconfig.NewLoader(configURL, envFile))
			result := appconfig.Validate(cfg)

			out, err := json.MarshalIndent(struct {
				Config     appconfig.AppConfig        `json:"config"`
				Validation appconfig.ValidationResult `json:"validation"`
			}{cfg, result}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !result.Valid {
				return fmt.Errorf("%w: %s", errInvalidConfig, strings.Join(result.Errors, "; "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configURL, "url", "", "config endpoint returning a flat JSON object")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "fallback .env file")
	return cmd
}
