package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/auth"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/comments"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/config"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/database"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/posts"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, &users.User{}, &posts.Post{}, &comments.Comment{}); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	userRepo := users.NewRepository(db)
	postRepo := posts.NewRepository(db)
	commentRepo := comments.NewRepository(db)

	userSvc := users.NewService(userRepo, cfg.BcryptCost)
	postSvc := posts.NewService(postRepo)
	commentSvc := comments.NewService(commentRepo, postRepo)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	authCtl := auth.NewController(userSvc, tokens)
	userCtl := users.NewController(userSvc)
	postCtl := posts.NewController(postSvc)
	commentCtl := comments.NewController(commentSvc)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/auth", authCtl.Login)
	v1.POST("/user/register", userCtl.Register)

	// Protected routes
	authed := v1.Group("", auth.RequireAuth(tokens, userRepo))

	authed.GET("/user/me", userCtl.Me)
	authed.PATCH("/user/me", userCtl.UpdateMe)
	authed.DELETE("/user/me", userCtl.DeleteMe)
	authed.GET("/users", userCtl.List)
	authed.GET("/user/:username", userCtl.GetByUserName)
	authed.GET("/user/id/:userId", userCtl.GetByID)

	authed.POST("/post/create", postCtl.Create)
	authed.GET("/posts", postCtl.List)
	authed.GET("/post/:postId", postCtl.Get)
	authed.PATCH("/post/:id", postCtl.Update)
	authed.DELETE("/post/:id", postCtl.Delete)

	authed.POST("/post/:postId/comment", commentCtl.Create)
	authed.GET("/comments/post/:postId", commentCtl.ListForPost)
	authed.GET("/comment/:commentId", commentCtl.Get)
	authed.PATCH("/comment/:commentId", commentCtl.Update)
	authed.DELETE("/comment/:commentId", commentCtl.Delete)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
