package main

import (
	"context"
	"fmt"
	"hr-payroll-backend/config"
	apiv1 "hr-payroll-backend/controllers/v1"
	publicapi "hr-payroll-backend/controllers/v1/public"
	"hr-payroll-backend/db"
	"hr-payroll-backend/fiberlog"
	"hr-payroll-backend/initializers"
	"hr-payroll-backend/lib/ws"
	connectionhub "hr-payroll-backend/lib/ws/hub/connection-hub"
	"hr-payroll-backend/middleware"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	bodyLimit := config.Conf.Upload.MaxSizeMb * 1024 * 1024
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.RateLimiter(config.Conf.RateLimit.PerMinute))

	if *config.Conf.App.SwaggerEnabled {
		swaggerCfg := swagger.Config{
			Path:     "/swagger",
			FilePath: "./docs/swagger.json",
		}
		app.Use(swagger.New(swaggerCfg))
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(int64(bodyLimit)))

	// без авторизации
	apiv1.InitAuthApiRouters(apiV1, config.Conf.RateLimit.LoginPerMinute)
	publicapi.InitKioskApiRouters(apiV1)
	publicapi.InitApplyApiRouters(apiV1)

	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.RbacMiddleware())
	apiv1.InitProfileApiRouters(apiV1)
	apiv1.InitEmployeeApiRouters(apiV1)
	apiv1.InitAttendanceApiRouters(apiV1)
	apiv1.InitPayrollApiRouters(apiV1)
	apiv1.InitLeaveApiRouters(apiV1)
	apiv1.InitApplicationApiRouters(apiV1)
	apiv1.InitChatApiRouters(apiV1)
	apiv1.InitSettingsApiRouters(apiV1)
	apiv1.InitSecurityApiRouters(apiV1)
	apiv1.InitBackupApiRouters(apiV1)
	apiv1.InitExportApiRouters(apiV1)
	ws.InitWs(apiV1.Group("/ws"))

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = <-c
		log.Info("Gracefully shutting down...")
		cancel()
		connectionhub.Instance.Shutdown()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		db.Close()
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
