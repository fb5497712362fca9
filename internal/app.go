package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tatico/internal/controllers"
	"tatico/internal/providers"
	"tatico/internal/streak"
	"tatico/internal/structures"
	"tatico/internal/timer"
	"tatico/internal/tracker/interfaces"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	Controller *controllers.TrackerController
	Timer      *timer.Controller
}

func NewApp(
	controller *controllers.TrackerController,
	timerCtl *timer.Controller,
	streakEngine *streak.Engine,
	scheduler interfaces.SchedulerInterface,
	compressor interfaces.CompressorInterface,
	conf *structures.Config,
	logger providers.Logger,
) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	// Runs exactly once per process; repeated renders never re-trigger it.
	streakEngine.Evaluate(time.Now())

	scheduler.Init()

	// Warm the dashboard so the day's verse is fetched up front.
	view := controller.Dashboard()
	logger.Infof(providers.TypeApp, "Day D-%d, streak %d, subject %s",
		view.DaysUntilExam, view.StreakDays, view.CurrentSubject)

	var metricsServer *http.Server
	if conf.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         conf.Metrics.Addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			logger.Infof(providers.TypeApp, "Exposing metrics on %s", conf.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf(providers.TypeApp, "Metrics listener error: %s", err)
			}
		}()
	}

	app := &App{
		Controller: controller,
		Timer:      timerCtl,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof(providers.TypeApp, "Shutdown signal received")

	timerCtl.Close()
	scheduler.Stop()

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			return nil, err
		}
	}

	if err := scheduler.Persist(); err != nil {
		return nil, err
	}
	compressor.Close()
	logger.Infof(providers.TypeApp, "gracefully stopped")
	logger.Close()
	return app, nil
}
