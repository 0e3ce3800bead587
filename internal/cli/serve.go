package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/cache"
	"github.com/goodnessaig1/gidolee-video-share/internal/database"
	"github.com/goodnessaig1/gidolee-video-share/internal/handler"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/queue"
	redisclient "github.com/goodnessaig1/gidolee-video-share/internal/redis"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/service"
	transporthttp "github.com/goodnessaig1/gidolee-video-share/internal/transport/http"
	authmw "github.com/goodnessaig1/gidolee-video-share/internal/transport/http/middleware"
	"github.com/goodnessaig1/gidolee-video-share/internal/worker"
)

const limiterCleanupInterval = 5 * time.Minute

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "Apply pending migrations before serving")
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	// 1. Database
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateOnStart {
		if err := database.Migrate(cfg.DSN(), log); err != nil {
			return err
		}
	}

	// 2. Optional collaborators: Redis and object storage
	rc, err := redisclient.Connect(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
	}

	media, err := service.NewMediaService(ctx, cfg, log)
	switch {
	case errors.Is(err, model.ErrStorageDisabled):
		log.Warn("object storage disabled: uploads will be rejected")
	case err != nil:
		return err
	}

	// Collaborator interfaces stay nil unless the backing service exists.
	var (
		contentMedia service.ContentUploader
		avatars      service.AvatarUploader
		uploader     handler.Uploader
		remover      worker.MediaRemover
		genreCache   cache.GenreCache
		publisher    queue.Publisher
	)
	if media != nil {
		contentMedia, avatars, uploader, remover = media, media, media, media
	}
	if rc != nil {
		genreCache = cache.NewGenreCache(rc.Client)
		publisher = queue.NewPublisher(rc.Client, log)
	}

	// 3. Repositories and services
	userRepo := repository.NewUserRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	contentRepo := repository.NewContentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	shareRepo := repository.NewShareRepository(db)
	tx := repository.NewTransactor(db)

	auth := service.NewAuthService(cfg.JWTSecret, cfg.TokenMaxAge)
	genres := service.NewGenreService(genreRepo, genreCache, log)
	contents := service.NewContentService(contentRepo, commentRepo, likeRepo, shareRepo, genres, contentMedia, publisher, log)
	likes := service.NewLikeService(likeRepo, contentRepo, commentRepo, tx, log)
	comments := service.NewCommentService(commentRepo, contentRepo, likeRepo, tx, log)
	shares := service.NewShareService(shareRepo, contentRepo, tx, log)
	users := service.NewUserService(userRepo, auth, avatars, cfg.DefaultProfilePicture, log)

	// 4. Workers
	if rc != nil {
		mgr := worker.NewManager(
			queue.NewConsumer(rc.Client, log),
			worker.NewHandler(contentRepo, remover, log),
			worker.ManagerConfig{WorkerCount: cfg.WorkerCount},
			log,
		)
		if err := mgr.Start(ctx); err != nil {
			return err
		}
		defer mgr.Stop()
	}

	// 5. HTTP
	var limiter *authmw.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = authmw.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
		go cleanupLimiter(ctx, limiter)
	}

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(users, handler.CookieOptions{MaxAge: cfg.TokenMaxAge, Secure: cfg.IsProduction()}, log),
		UserHandler:    handler.NewUserHandler(users, log),
		ContentHandler: handler.NewContentHandler(contents, log),
		CommentHandler: handler.NewCommentHandler(comments, log),
		LikeHandler:    handler.NewLikeHandler(likes, log),
		ShareHandler:   handler.NewShareHandler(shares, log),
		GenreHandler:   handler.NewGenreHandler(genres, log),
		MediaHandler:   handler.NewMediaHandler(uploader, log),
		Tokens:         auth,
		RateLimiter:    limiter,
	})

	log.Info("starting server",
		zap.String("env", cfg.Env),
		zap.Bool("redis", rc != nil),
		zap.Bool("storage", media != nil))
	return transporthttp.NewServer(cfg.ServerPort, router, log).Run(ctx)
}

func cleanupLimiter(ctx context.Context, limiter *authmw.RateLimiter) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Cleanup()
		}
	}
}
