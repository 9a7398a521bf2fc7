package main

import (
	"encoding/json"
	"fmt"

	"callreport-api/config"
	"callreport-api/ffiec"
	"callreport-api/logging"

	"github.com/spf13/cobra"
)

func newPeriodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List call report reporting periods available from the CDR",
		RunE:  runPeriods,
	}

	cmd.Flags().String("user", "", "FFIEC username")
	cmd.Flags().String("token", "", "FFIEC security token")

	return cmd
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cmd, cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	user, _ := cmd.Flags().GetString("user")
	token, _ := cmd.Flags().GetString("token")

	periods, err := newClient(cfg, logger).ListReportingPeriods(cmd.Context(), ffiec.Credentials{Username: user, Token: token})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(periods)
}
