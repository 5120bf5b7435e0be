package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/application/workboard"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	GroupUC     *usecase.GroupUseCase
	ShopUC      *usecase.ShopUseCase
	ProductUC   *usecase.ProductUseCase
	SettingUC   *usecase.SettingUseCase
	ListingUC   *usecase.ListingUseCase
	LedgerUC    *ledger.LedgerUseCase
	WorkboardUC *workboard.WorkboardUseCase
	Resolver    *authz.Resolver
	Metrics     *Metrics // opcional: sin métricas no se expone /metrics
	Cookie      SessionCookie
	LoginPerMin int
	LoginBurst  int
	Log         *logger.Logger
}

// Router registra las rutas. Las rutas estáticas van antes que /:group_name.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	guard := NewGuard(deps.Resolver, deps.Metrics, deps.Log.Component("authz"))
	session := SessionMiddleware(deps.AuthUC, deps.Cookie.Name)

	// Auth (público salvo el cambio de contraseña)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := app.Group("/auth")
	authGroup.Get("/login/", authHandler.LoginContext)
	authGroup.Post("/login/", LoginRateLimit(deps.LoginPerMin, deps.LoginBurst), authHandler.Login)
	authGroup.Get("/logout/", authHandler.Logout)
	authGroup.Post("/password_change/", session, authHandler.ChangePassword)

	// Paneles sin grupo
	workboardHandler := NewWorkboardHandler(deps.WorkboardUC, guard)
	app.Get("/members/", session, workboardHandler.Members)
	app.Get("/managers/", session, workboardHandler.Managers)

	// Todo lo demás actúa en nombre de un grupo del usuario.
	g := app.Group("/:group_name", session, RequireActingGroup(deps.GroupUC))

	userHandler := NewUserHandler(deps.UserUC, deps.ListingUC, guard)
	g.Get("/users/", userHandler.List)
	g.Post("/users/", userHandler.Create)
	g.Put("/users/self/", userHandler.UpdateSelf)
	g.Get("/users/:pk/", userHandler.GetByID)
	g.Put("/users/:pk/", userHandler.Update)
	g.Post("/users/:pk/deactivate/", userHandler.Deactivate)

	groupHandler := NewGroupHandler(deps.GroupUC)
	g.Get("/groups/:pk/", groupHandler.GetByID)
	g.Put("/groups/:pk/", groupHandler.UpdateMembers)

	shopHandler := NewShopHandler(deps.ShopUC, guard)
	g.Get("/shops/", shopHandler.List)
	g.Post("/shops/", shopHandler.Create)
	g.Get("/shops/:shop_pk/", shopHandler.GetByID)
	g.Put("/shops/:shop_pk/", shopHandler.Update)
	g.Get("/shops/:shop_pk/workboard/", workboardHandler.Shop)
	g.Get("/shops/:shop_pk/checkup/", workboardHandler.Checkup)
	g.Get("/shops/:shop_pk/checkup.pdf", workboardHandler.CheckupPDF)

	productHandler := NewProductHandler(deps.ProductUC, guard)
	products := g.Group("/shops/:shop_pk/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:product_pk/", productHandler.GetByID)
	products.Put("/:product_pk/", productHandler.Update)
	products.Delete("/:product_pk/", productHandler.Remove)
	products.Put("/:product_pk/price/", productHandler.UpdatePrice)
	products.Post("/:product_pk/deactivate/", productHandler.ToggleActive)

	ledgerHandler := NewLedgerHandler(deps.LedgerUC, guard)
	g.Get("/shops/:shop_pk/sales/", ledgerHandler.ListSales)
	g.Post("/shops/:shop_pk/sales/", ledgerHandler.Sale)
	g.Post("/transfers/", ledgerHandler.Transfer)
	g.Post("/rechargings/", ledgerHandler.Recharging)
	g.Post("/exceptionalmovements/", ledgerHandler.ExceptionalMovement)

	settingHandler := NewSettingHandler(deps.SettingUC, guard)
	g.Get("/settings/", settingHandler.Get)
	g.Put("/settings/", settingHandler.Update)

	listingHandler := NewListingHandler(deps.ListingUC, guard)
	g.Get("/api/:kind/", listingHandler.List)
	g.Get("/api/:kind/:pk/", listingHandler.Detail)
}
