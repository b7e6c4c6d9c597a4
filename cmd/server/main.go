package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlongerich/DonationTracker-sub002/modules/donations/infrastructure/persistence"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/presentation/controllers"
	"github.com/mlongerich/DonationTracker-sub002/modules/donations/services"
	"github.com/mlongerich/DonationTracker-sub002/pkg/configuration"
	"github.com/mlongerich/DonationTracker-sub002/pkg/eventbus"
	"github.com/mlongerich/DonationTracker-sub002/pkg/middleware"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	bus := eventbus.NewEventPublisher(logger)
	reviewService := services.NewReviewService(persistence.NewDonationRepository(), bus)

	r := mux.NewRouter()
	r.Use(
		middleware.RequestLogger(logger),
		middleware.ProvidePool(pool),
		middleware.RequireTenant(conf.TenantIDHeader),
	)
	controllers.NewReviewAPIController(reviewService).Register(r)

	root := http.NewServeMux()
	root.Handle("/", r)
	if conf.Prometheus.Enabled {
		root.Handle(conf.Prometheus.Path, promhttp.Handler())
	}

	srv := &http.Server{
		Addr:              conf.SocketAddress,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", conf.SocketAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
