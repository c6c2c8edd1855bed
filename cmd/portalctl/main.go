package main

import (
	"os"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/drivers/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "develop"

type cli struct {
	verbose        bool
	jsonOutput     bool
	log            *logrus.Logger
	driverConfig   *config.DriverConfig
	internalConfig *config.InternalConfig
}

func main() {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operator tooling for the referral portal service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.log = logger.NewLogrusLogger(c.verbose, c.jsonOutput)
			c.driverConfig = config.NewDriverConfig()
			c.internalConfig = config.NewInternalConfig()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "log as JSON")

	rootCmd.AddCommand(c.userCmd())
	rootCmd.AddCommand(c.backendCmd())

	if err := rootCmd.Execute(); err != nil {
		if c.log == nil {
			c.log = logger.NewLogrusLogger(false, false)
		}
		c.log.WithError(err).Error("portalctl failed")
		os.Exit(1)
	}
}
