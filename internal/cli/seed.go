package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/database"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/seed"
	"github.com/goodnessaig1/gidolee-video-share/internal/service"
)

var (
	demoUsers   int
	demoPerUser int
	demoSeed    int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default genre catalog",
	Long: `Install the default genres. Existing genres are left untouched, so the
command can be re-run safely.

Examples:
  videoshare seed                          # Genres only
  videoshare seed --demo-users 10          # Genres plus 10 fake accounts
  videoshare seed --demo-users 5 --per-user 8 --faker-seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&demoUsers, "demo-users", 0, "Fake accounts to create (0 disables demo data)")
	seedCmd.Flags().IntVar(&demoPerUser, "per-user", 5, "Content items per fake account")
	seedCmd.Flags().Int64Var(&demoSeed, "faker-seed", 0, "Seed for reproducible demo data (0 is random)")
}

func runSeed(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	genreRepo := repository.NewGenreRepository(db)
	genres := service.NewGenreService(genreRepo, nil, log)
	created, err := genres.Seed(ctx)
	if err != nil {
		return err
	}
	log.Info("genres seeded", zap.Int("created", created))

	if demoUsers <= 0 {
		return nil
	}

	auth := service.NewAuthService(cfg.JWTSecret, cfg.TokenMaxAge)
	demo := &seed.Demo{
		Users:    service.NewUserService(repository.NewUserRepository(db), auth, nil, cfg.DefaultProfilePicture, log),
		Contents: repository.NewContentRepository(db),
		Genres:   genreRepo,
		Factory:  seed.NewFactory(demoSeed),
		Logger:   log,
	}
	users, contents, err := demo.Run(ctx, demoUsers, demoPerUser)
	if err != nil {
		return err
	}
	log.Info("demo data seeded",
		zap.Int("users", users),
		zap.Int("contents", contents),
		zap.String("password", seed.DemoPassword))
	return nil
}
