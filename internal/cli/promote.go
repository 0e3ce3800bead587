package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/database"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/service"
)

var promoteRole string

var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Change the role of an account",
	Long: `Change the role of an existing account. Admin accounts can only be
created this way.

Examples:
  videoshare promote ada@example.com               # Make ada an admin
  videoshare promote bob@example.com --role user   # Demote bob`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		db, err := database.Connect(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		users := service.NewUserService(repository.NewUserRepository(db), nil, nil, cfg.DefaultProfilePicture, log)
		if err := users.SetRole(ctx, args[0], model.Role(promoteRole)); err != nil {
			return err
		}
		log.Info("role updated", zap.String("email", args[0]), zap.String("role", promoteRole))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
	promoteCmd.Flags().StringVar(&promoteRole, "role", string(model.RoleAdmin), "Role to assign (user, creator, admin)")
}
