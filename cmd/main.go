package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/config"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/handler"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/service"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.InitDB(ctx, cfg.DBURI)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open image store: %v", err)
	}

	photoService := service.NewPhotoService(db, store, cfg)
	authService := service.NewAuthService(db, cfg)

	h := handler.NewHandler(photoService, authService)

	if cfg.EnvType == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	}))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// In development renditions are served straight from the upload dir.
	if cfg.EnvType == config.EnvDevelopment {
		r.Static("/uploads", cfg.UploadDir)
	}

	r.GET("/photos", h.ListPhotos)
	r.GET("/photos/:id", h.GetPhoto)
	r.GET("/collections", h.ListCollections)
	r.GET("/collections/:name/photos", h.ListCollectionPhotos)
	r.GET("/hero", h.GetHeroPhoto)
	r.GET("/about", h.GetAboutPhoto)

	auth := r.Group("/admin")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	admin := r.Group("/admin")
	{
		admin.Use(h.AuthMiddleware())
		admin.POST("/photos", h.UploadPhoto)
		admin.DELETE("/photos", h.DeletePhotos)
	}

	log.Fatal(r.Run(":8080"))
}
