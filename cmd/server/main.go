package main

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "blogspace/docs"
	"blogspace/internal/config"
	"blogspace/internal/database"
	"blogspace/internal/dto"
	"blogspace/internal/errs"
	"blogspace/internal/handlers"
	"blogspace/internal/logger"
	"blogspace/internal/middleware"
	"blogspace/internal/repository"
	"blogspace/internal/routes"
	"blogspace/internal/service"
	"blogspace/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel, cfg.Env)

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer database.Disconnect(client)
	log.Info().Msg("connected to MongoDB")

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	presigner, err := storage.NewS3Presigner(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("s3 presigner init failed")
	}

	userRepo := repository.NewUserRepo(db)
	blogRepo := repository.NewBlogRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	noteRepo := repository.NewNotificationRepo(db)
	txRunner := repository.NewMongoTxRunner(client)

	authSvc := service.NewAuthService(userRepo, service.NewGoogleVerifier(cfg.GoogleClientID), []byte(cfg.JWTSecret))
	blogSvc := service.NewBlogService(blogRepo, userRepo, noteRepo)
	commentSvc := service.NewCommentService(commentRepo, blogRepo, noteRepo, txRunner, log)
	uploadSvc := service.NewUploadService(presigner)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.JWT([]byte(cfg.JWTSecret)))

	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.Deps{
		Auth:     handlers.NewAuthHandler(authSvc),
		Blogs:    handlers.NewBlogHandler(blogSvc),
		Comments: handlers.NewCommentHandler(commentSvc),
		Uploads:  handlers.NewUploadHandler(uploadSvc),
	})

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// errorHandler keeps the error body uniform for everything that escapes a
// handler, middleware rejections included.
func errorHandler(c *fiber.Ctx, err error) error {
	code := errs.StatusOf(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
}
