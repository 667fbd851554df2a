package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "peerlend/internal/adapter/http"
	idemp "peerlend/internal/adapter/middleware"
	"peerlend/internal/adapter/repository/sqldb"
	"peerlend/internal/config"
	"peerlend/internal/infrastructure/cache"
	"peerlend/internal/infrastructure/db"
	"peerlend/internal/infrastructure/notify"
	"peerlend/internal/usecase/account"
	"peerlend/internal/usecase/creditreport"
	"peerlend/internal/usecase/ledger"
	"peerlend/internal/usecase/marketplace"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	uow := sqldb.NewGormUoW(gdb)
	lg := ledger.NewService()
	notifier := notify.NewLogNotifier()

	acct := httpadp.NewAccountHandler(account.NewUsecase(uow, lg))
	mkt := httpadp.NewMarketplaceHandler(marketplace.NewUsecase(uow, lg, notifier))
	cr := httpadp.NewCreditReportHandler(creditreport.NewUsecase(uow, notifier))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	httpadp.RegisterRoutes(e, httpadp.NewHandler(), acct, mkt, cr)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
