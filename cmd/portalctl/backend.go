package main

import (
	"context"
	"fmt"
	"referral-portal-service/internal/app/services/backend"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) backendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Inspect the referral backend",
	}
	cmd.AddCommand(c.backendPingCmd())
	return cmd
}

func (c *cli) backendPingCmd() *cobra.Command {
	var resource string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "List one backend resource and report latency",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.internalConfig.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			transport := backend.NewTransport(c.internalConfig, zap.NewNop())
			start := time.Now()

			var count int
			switch resource {
			case "pharmacies":
				list, err := backend.NewPharmacyClient(transport, zap.NewNop()).ListPharmacies(ctx)
				if err != nil {
					return err
				}
				count = len(list)
			case "referrals":
				list, err := backend.NewAdminReferralClient(transport, zap.NewNop()).ListReferrals(ctx, "")
				if err != nil {
					return err
				}
				count = len(list)
			case "patients":
				list, err := backend.NewPatientClient(transport, zap.NewNop()).ListPatients(ctx)
				if err != nil {
					return err
				}
				count = len(list)
			default:
				return fmt.Errorf("unknown resource %q", resource)
			}

			c.log.WithFields(logrus.Fields{
				"base_url": transport.BaseUrl,
				"resource": resource,
				"count":    count,
				"elapsed":  time.Since(start).String(),
			}).Info("Backend reachable")
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "pharmacies", "pharmacies, referrals or patients")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
	return cmd
}
