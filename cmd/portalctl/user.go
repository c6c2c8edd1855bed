package main

import (
	"context"
	"fmt"
	"os"
	"referral-portal-service/internal/app/drivers/database"
	"referral-portal-service/internal/app/services/core/auth"
	"referral-portal-service/internal/app/services/core/users"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const passwordEnv = "PORTALCTL_PASSWORD"

func (c *cli) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}
	cmd.AddCommand(c.userCreateCmd())
	return cmd
}

func (c *cli) userCreateCmd() *cobra.Command {
	request := new(requests.CreatePortalUser)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a portal user",
		Long:  fmt.Sprintf("Create a portal user. The password is read from $%s so it stays out of shell history.", passwordEnv),
		RunE: func(cmd *cobra.Command, args []string) error {
			request.Password = os.Getenv(passwordEnv)
			utils.SanitizeCreatePortalUserRequest(request)
			if err := utils.ValidateStruct(request); err != nil {
				return exceptions.ErrInputValidation(err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			mongoDB := database.NewMongoDB(c.driverConfig)
			defer mongoDB.Disconnect(context.Background())

			dbName := c.internalConfig.MongoDB.DBName
			collection := c.internalConfig.MongoDB.UsersCollection
			if err := users.EnsureIndexes(ctx, mongoDB, dbName, collection); err != nil {
				return err
			}

			// Creating a user only touches the user repository.
			usecase := auth.NewAuthUsecase(
				users.NewUserMongoRepository(mongoDB, dbName, collection),
				nil, nil, nil, nil, nil,
				c.internalConfig,
				clock.New(),
				zap.NewNop(),
			)
			user, err := usecase.CreatePortalUser(ctx, request)
			if err != nil {
				return err
			}

			c.log.WithFields(logrus.Fields{
				"user_id":     user.ID,
				"email":       user.Email,
				"role":        user.Role,
				"clinic_name": user.ClinicName,
			}).Info("Portal user created")
			return nil
		},
	}

	cmd.Flags().StringVar(&request.Email, "email", "", "login email")
	cmd.Flags().StringVar(&request.Name, "name", "", "display name")
	cmd.Flags().StringVar(&request.Role, "role", "", "clinic_user or internal_admin")
	cmd.Flags().StringVar(&request.ClinicName, "clinic", "", "clinic name, required for clinic_user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
