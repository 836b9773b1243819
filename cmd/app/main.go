package main

import (
	"log"
	"os"
	"time"

	"VaultStoreAPI/external/discord"
	"VaultStoreAPI/internal/cache"
	"VaultStoreAPI/internal/db"
	"VaultStoreAPI/internal/push"
	"VaultStoreAPI/internal/repository"
	"VaultStoreAPI/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

const contentCacheTTL = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	redisOpts, err := goredis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatal(err)
	}
	redisClient := goredis.NewClient(redisOpts)
	defer redisClient.Close()
	contentCache := cache.NewRedisCache(redisClient, contentCacheTTL)

	hub := push.NewHub()

	// ======================
	// EXTERNALS
	// ======================
	discordClient, err := discord.NewClient()
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	notifRepo := repository.NewNotificationRepository(pool)
	contentRepo := repository.NewContentRepository(pool)

	// ======================
	// SERVICES
	// ======================
	adminSvc := services.NewAdminService(adminRepo)
	contentSvc := services.NewContentService(contentRepo, contentCache, contentCacheTTL)
	catalogSvc := services.NewCatalogService(productRepo, contentSvc)
	cartSvc := services.NewCartService(cartRepo, productRepo, userRepo)
	couponSvc := services.NewCouponService(couponRepo, userRepo)
	checkoutSvc := services.NewCheckoutService(discordClient, userRepo, cartRepo, couponSvc, orderRepo)
	orderSvc := services.NewOrderService(orderRepo, hub)
	notifSvc := services.NewNotificationService(notifRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/vault-store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, discordClient, userRepo, adminSvc)
	registerProductRoutes(api, catalogSvc)
	registerCartRoutes(api, cartSvc, checkoutSvc)
	registerCouponRoutes(api, couponSvc, couponRepo)
	registerOrderRoutes(api, orderSvc)
	registerAdminOrderRoutes(api, orderSvc)
	registerNotificationRoutes(api, notifSvc, hub)
	registerContentRoutes(api, contentSvc)
	registerAdminRoutes(api, adminSvc)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
