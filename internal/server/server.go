package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"playto.com/communityfeed/internal/config"
	"playto.com/communityfeed/internal/handler"
	"playto.com/communityfeed/internal/middleware"
	"playto.com/communityfeed/internal/repository"
	"playto.com/communityfeed/internal/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	karmaRepo := repository.NewKarmaRepository(db)

	var searchSvc service.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewSearchService(meiliClient)
	}

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	leaderboardSvc := service.NewLeaderboardService(karmaRepo, redisClient)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)

	likeSvc := service.NewLikeService(likeRepo, postRepo, commentRepo, leaderboardSvc)
	likeHandler := handler.NewLikeHandler(likeSvc)

	commentSvc := service.NewCommentService(commentRepo, postRepo, likeRepo, redisClient)
	commentHandler := handler.NewCommentHandler(commentSvc)

	postSvc := service.NewPostService(postRepo, likeRepo, searchSvc, redisClient)
	postHandler := handler.NewPostHandler(postSvc, commentSvc)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Reads stay open to anonymous callers; a valid token only personalizes
	// the is_liked_by_me flags.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/posts", postHandler.GetAllPosts)
		public.GET("/posts/search", postHandler.SearchPosts)
		public.GET("/posts/:post_id", postHandler.GetPostByID)
		public.GET("/posts/:post_id/comments/tree", postHandler.GetCommentTree)
		public.GET("/comments", commentHandler.GetAllComments)
		public.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/posts", postHandler.CreatePost)
		protected.POST("/comments", commentHandler.CreateComment)

		protected.POST("/posts/:post_id/like", likeHandler.LikePost)
		protected.DELETE("/posts/:post_id/like", likeHandler.UnlikePost)
		protected.POST("/comments/:comment_id/like", likeHandler.LikeComment)
		protected.DELETE("/comments/:comment_id/like", likeHandler.UnlikeComment)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
