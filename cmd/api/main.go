package main

import (
	"os"
	"os/signal"
	"syscall"

	"fish-ledger/internal/handler"
	"fish-ledger/internal/middleware"
	"fish-ledger/internal/repository"
	"fish-ledger/internal/service"
	"fish-ledger/internal/ws"
	"fish-ledger/pkg/config"
	"fish-ledger/pkg/database"
	"fish-ledger/pkg/jwt"
	"fish-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Config + logging
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	jwt.Configure(cfg.JWTSecret, cfg.JWTExpiry)

	// 2. Database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// 3. Repositories
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	itemRepo := repository.NewItemRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	billRepo := repository.NewSupplierBillRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	reportRepo := repository.NewReportRepo(db)

	if err := service.SeedAccess(privilegeRepo, roleRepo, userRepo, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.WithError(err).Fatal("failed to seed roles and owner account")
	}

	// 4. WebSocket hub carries ledger_update events to open windows
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Services
	ledger := service.NewLedger(itemRepo, customerRepo, supplierRepo)
	numbers := service.NewNumberingService(repository.NewSequenceRepo())

	authService := service.NewAuthService(userRepo, log)
	masterService := service.NewMasterService(categoryRepo, itemRepo, customerRepo, supplierRepo, settingRepo, wsHub, log)
	saleService := service.NewSaleService(db, saleRepo, numbers, ledger, wsHub, log)
	purchaseService := service.NewPurchaseService(db, purchaseRepo, numbers, ledger, wsHub, log)
	billService := service.NewSupplierBillService(db, billRepo, numbers, ledger, wsHub, log)
	paymentService := service.NewPaymentService(db, paymentRepo, ledger, wsHub, log)
	reportService := service.NewReportService(reportRepo, customerRepo, supplierRepo)

	// 6. Handlers
	authHandler := handler.NewAuthHandler(authService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)
	masterHandler := handler.NewMasterHandler(masterService)
	saleHandler := handler.NewSaleHandler(saleService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	billHandler := handler.NewSupplierBillHandler(billService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	// Heartbeat skips the idle check so a returning window can revive its session.
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo, 0), authHandler.Heartbeat)

	protected := api.Group("", middleware.RequireAuth(userRepo, service.SessionIdleTimeout))

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// Dashboard + reports
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", reportHandler.GetStockMovement)
	protected.Get("/reports/statement/:party/:id", middleware.RequirePrivilege("report:view"), reportHandler.GetStatement)

	// Master data
	protected.Get("/categories", middleware.RequirePrivilege("master:view"), masterHandler.ListCategories)
	protected.Post("/categories", middleware.RequirePrivilege("master:manage"), masterHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege("master:manage"), masterHandler.UpdateCategory)

	protected.Get("/items", middleware.RequirePrivilege("master:view"), masterHandler.ListItems)
	protected.Get("/items/:id", middleware.RequirePrivilege("master:view"), masterHandler.GetItem)
	protected.Post("/items", middleware.RequirePrivilege("master:manage"), masterHandler.CreateItem)
	protected.Put("/items/:id", middleware.RequirePrivilege("master:manage"), masterHandler.UpdateItem)
	protected.Delete("/items/:id", middleware.RequirePrivilege("master:manage"), masterHandler.DeactivateItem)

	protected.Get("/customers", middleware.RequirePrivilege("master:view"), masterHandler.ListCustomers)
	protected.Get("/customers/:id", middleware.RequirePrivilege("master:view"), masterHandler.GetCustomer)
	protected.Post("/customers", middleware.RequirePrivilege("master:manage"), masterHandler.CreateCustomer)
	protected.Put("/customers/:id", middleware.RequirePrivilege("master:manage"), masterHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequirePrivilege("master:manage"), masterHandler.DeactivateCustomer)

	protected.Get("/suppliers", middleware.RequirePrivilege("master:view"), masterHandler.ListSuppliers)
	protected.Get("/suppliers/:id", middleware.RequirePrivilege("master:view"), masterHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequirePrivilege("master:manage"), masterHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequirePrivilege("master:manage"), masterHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequirePrivilege("master:manage"), masterHandler.DeactivateSupplier)

	protected.Get("/settings", masterHandler.ListSettings)
	protected.Get("/settings/:key", masterHandler.GetSetting)
	protected.Put("/settings/:key", middleware.RequirePrivilege("settings:manage"), masterHandler.SetSetting)

	// Ledger documents
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), saleHandler.List)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), saleHandler.Get)
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), saleHandler.Create)
	protected.Put("/sales/:id", middleware.RequirePrivilege("sale:update"), saleHandler.Update)
	protected.Delete("/sales/:id", middleware.RequirePrivilege("sale:delete"), saleHandler.Delete)

	protected.Get("/purchases", middleware.RequirePrivilege("purchase:view"), purchaseHandler.List)
	protected.Get("/purchases/:id", middleware.RequirePrivilege("purchase:view"), purchaseHandler.Get)
	protected.Post("/purchases", middleware.RequirePrivilege("purchase:create"), purchaseHandler.Create)
	protected.Put("/purchases/:id", middleware.RequirePrivilege("purchase:update"), purchaseHandler.Update)
	protected.Delete("/purchases/:id", middleware.RequirePrivilege("purchase:delete"), purchaseHandler.Delete)

	protected.Get("/supplier-bills/preview", middleware.RequirePrivilege("bill:view"), billHandler.Preview)
	protected.Get("/supplier-bills", middleware.RequirePrivilege("bill:view"), billHandler.List)
	protected.Get("/supplier-bills/:id", middleware.RequirePrivilege("bill:view"), billHandler.Get)
	protected.Post("/supplier-bills", middleware.RequirePrivilege("bill:create"), billHandler.Create)
	protected.Put("/supplier-bills/:id", middleware.RequirePrivilege("bill:update"), billHandler.Update)
	protected.Delete("/supplier-bills/:id", middleware.RequirePrivilege("bill:delete"), billHandler.Delete)

	protected.Get("/payments", middleware.RequireAnyPrivilege("payment:create", "report:view"), paymentHandler.List)
	protected.Post("/payments", middleware.RequirePrivilege("payment:create"), paymentHandler.Create)
	protected.Delete("/payments/:id", middleware.RequirePrivilege("payment:delete"), paymentHandler.Delete)

	// WebSocket change feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	if err := database.Close(db); err != nil {
		log.WithError(err).Warn("closing database")
	}
	log.Info("Server exited")
}
