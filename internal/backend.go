package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/i8kfans/internal/api"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/controller"
	"github.com/markusressel/i8kfans/internal/fans"
	"github.com/markusressel/i8kfans/internal/persistence"
	"github.com/markusressel/i8kfans/internal/requirements"
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/markusressel/i8kfans/internal/statistics"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// replaced in tests
var (
	cleanup  = sensors.CleanupAtExit
	exitFunc = os.Exit
)

// exit releases sensor resources before terminating, deferred calls in main do not run on os.Exit
func exit(code int) {
	cleanup()
	exitFunc(code)
}

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Warning("i8kfans is not running as root, changing fan levels will most likely fail")
	}

	if configuration.CurrentConfig.Requirements.Enabled.Get() {
		if _, err := requirements.Check(configuration.CurrentConfig.Requirements); err != nil {
			ui.ErrorAndNotify("Missing requirements", "%v", err)
			exit(1)
			return
		}
	}

	var pers persistence.Persistence = persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("Actuation history disabled, unable to prepare database at %s: %v", configuration.CurrentConfig.DbPath, err)
		pers = nil
	}

	loop, sensorList, err := InitializeObjects(pers)
	if err != nil {
		ui.Error("%v", err)
		exit(1)
		return
	}

	statistics.Register(statistics.NewSensorCollector(sensorList))
	statistics.Register(statistics.NewFanCollector(loop))
	statistics.Register(statistics.NewControllerCollector(loop))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if configuration.CurrentConfig.Statistics.Enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Serving metrics on :%d/metrics", port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				}
			})
		}
	}
	{
		if configuration.CurrentConfig.Api.Enabled {
			// === REST API
			conf := configuration.CurrentConfig.Api
			rest := api.CreateRestService(loop, pers, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)

			g.Add(func() error {
				ui.Info("Serving REST API on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start REST API: %w", err)
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST API: %v", err)
				}
			})
		}
	}
	{
		// === control loop
		g.Add(func() error {
			return loop.Run(ctx)
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		exit(1)
	} else {
		ui.Info("Done.")
		exit(0)
	}
}

// InitializeObjects creates the sensors, the actuator and the control loop from the current configuration.
// Both sensors are registered in sensors.SensorMap.
func InitializeObjects(pers persistence.Persistence) (controller.ControlLoop, []sensors.Sensor, error) {
	config := configuration.CurrentConfig

	var sensorList []sensors.Sensor
	for _, sensorConfig := range []configuration.SensorConfig{config.Cpu.Sensor, config.Gpu.Sensor} {
		sensor, err := sensors.NewSensor(sensorConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to process sensor configuration %s: %w", sensorConfig.ID, err)
		}
		sensors.SensorMap.Set(sensor.GetId(), sensor)
		sensorList = append(sensorList, sensor)
	}

	actuator, err := fans.NewActuator(config.Fans)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to process fans configuration: %w", err)
	}

	thresholds := controller.Thresholds{
		Cpu: config.Thresholds(configuration.FanCpu),
		Gpu: config.Thresholds(configuration.FanGpu),
	}
	loop := controller.NewControlLoop(pers, sensorList[0], sensorList[1], actuator, thresholds, config.Interval)

	return loop, sensorList, nil
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
