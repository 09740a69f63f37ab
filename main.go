package main

import (
	"context"
	"fmt"
	"hirex-backend/config"
	apiv1 "hirex-backend/controllers/v1"
	"hirex-backend/controllers/v1/dict"
	"hirex-backend/fiberlog"
	"hirex-backend/initializers"
	"hirex-backend/middleware"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.BodyLimit),
	})
	app.Use(fiberRecover.New())

	if config.Conf.App.SwaggerOn == nil || *config.Conf.App.SwaggerOn {
		swaggerCfg := swagger.Config{
			Path:     "/swagger",
			FilePath: "./docs/swagger.json",
		}
		if _, err := os.Stat(swaggerCfg.FilePath); err == nil {
			app.Use(swagger.New(swaggerCfg))
		} else {
			log.Warn("swagger.json not found, swagger UI is disabled")
		}
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyURL))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimit))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, PUT",
	}))
	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.RbacMiddleware())
	app.Mount("/api/v1", apiV1)
	apiv1.InitJobRequisitionApiRouters(apiV1)
	apiv1.InitApprovalApiRouters(apiV1)
	apiv1.InitJobDescriptionApiRouters(apiV1)
	apiv1.InitPermissionsApiRouters(apiV1)

	//dict
	dicts := fiber.New()
	apiV1.Mount("/dict", dicts)
	dict.InitDepartmentDictApiRouters(dicts)
	dict.InitJobTitleDictApiRouters(dicts)
	dict.InitRoleDictApiRouters(dicts)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
