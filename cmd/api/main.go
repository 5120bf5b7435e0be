package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/swaggo/swag"

	"github.com/borgia-ae/borgia-api/docs"
	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/application/workboard"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	infrapdf "github.com/borgia-ae/borgia-api/internal/infrastructure/pdf"
	infraredis "github.com/borgia-ae/borgia-api/internal/infrastructure/redis"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/storage"
	httpRouter "github.com/borgia-ae/borgia-api/internal/interfaces/http"
	"github.com/borgia-ae/borgia-api/pkg/config"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

func main() {
	_ = godotenv.Load() // .env opcional en local

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer be.Close()

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de permisos")
	}
	err = catalog.NewBootstrap(cat, be.Permissions, be.Groups, be.Users, be.Shops, log.Component("bootstrap")).
		Run(cfg.Borgia.DefaultShopID, cfg.Borgia.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}
	baseline, err := authz.LoadBaseline(be.Groups, cfg.Borgia.InternalsGroup)
	if err != nil {
		log.Fatal().Err(err).Msg("grupos base")
	}

	// Revocación de sesiones: sin Redis el logout solo borra la cookie.
	var revoker auth.SessionRevoker = auth.NopRevoker{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		revoker = infraredis.NewRevoker(client)
	}

	settingUC := usecase.NewSettingUseCase(be.Settings)
	shopUC := usecase.NewShopUseCase(be.Shops, be.Groups, be.Tx, cat, cfg.Borgia.DefaultShopID, log.Component("shops"))
	authUC := auth.NewAuthUseCase(be.Users, be.Groups, be.Shops, revoker, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Borgia.DefaultShopID)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(
			workboard.NewErrorContextBuilder(be.Groups, shopUC, baseline),
			log.Component("http"),
		),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Borgia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(be.Users, be.Groups, be.Tx, cfg.Borgia.InternalsGroup),
		GroupUC:   usecase.NewGroupUseCase(be.Groups, be.Users),
		ShopUC:    shopUC,
		ProductUC: usecase.NewProductUseCase(be.Products, settingUC),
		SettingUC: settingUC,
		ListingUC: usecase.NewListingUseCase(
			be.Users, be.Groups, be.Shops, be.Products, be.Events, settingUC, cfg.Borgia.DefaultShopID,
		),
		LedgerUC: ledger.NewLedgerUseCase(be.Tx, be.Events, be.Products, settingUC, log.Component("ledger")),
		WorkboardUC: workboard.NewWorkboardUseCase(
			be.Users, be.Groups, be.Shops, be.Products, be.Events, infrapdf.NewCheckupReport(),
		),
		Resolver:    authz.NewResolver(be.Shops, be.Products),
		Metrics:     httpRouter.NewMetrics("borgia"),
		Cookie:      httpRouter.SessionCookie{Name: cfg.JWT.CookieName, Secure: cfg.JWT.Secure},
		LoginPerMin: cfg.RateLimit.LoginPerMinute,
		LoginBurst:  cfg.RateLimit.LoginBurst,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
