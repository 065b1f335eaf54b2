package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	promapi "github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gohttpmetricsprometheus "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/reload"

	backendapp "github.com/slok/tsplot/internal/http/backend/app"
	httpbackendmetricsprometheus "github.com/slok/tsplot/internal/http/backend/metrics/prometheus"
	"github.com/slok/tsplot/internal/http/backend/storage"
	storagefake "github.com/slok/tsplot/internal/http/backend/storage/fake"
	storageprometheus "github.com/slok/tsplot/internal/http/backend/storage/prometheus"
	storagewrappers "github.com/slok/tsplot/internal/http/backend/storage/wrappers"
	"github.com/slok/tsplot/internal/http/ui"
	"github.com/slok/tsplot/internal/log"
)

type serverCommand struct {
	statusServer struct {
		address         string
		healthCheckPath string
		metricsPath     string
		pprofPath       string
	}
	appServer struct {
		address string
	}
	hotReload struct {
		address string
		path    string
	}

	source struct {
		fake     bool
		fakeSeed int64
		dataURL  string
		dataFile string
		http     httpClientConfig
	}

	prometheus struct {
		catalogPath          string
		promAddress          string
		cacheRefreshInterval time.Duration
		http                 httpClientConfig
	}
}

// NewServerCommand returns the server command.
func NewServerCommand(app *kingpin.Application) Command {
	c := &serverCommand{}
	cmd := app.Command("server", "Starts the tsplot web server.")
	cmd.Flag("app-listen-address", "Application listen address.").Default(":8080").StringVar(&c.appServer.address)
	cmd.Flag("status-listen-address", "Status (health check, metrics, pprof...) listen address.").Default(":8081").StringVar(&c.statusServer.address)
	cmd.Flag("health-check-path", "Health check path.").Default("/status").StringVar(&c.statusServer.healthCheckPath)
	cmd.Flag("metrics-path", "Prometheus metrics path where metrics will be served.").Default("/metrics").StringVar(&c.statusServer.metricsPath)
	cmd.Flag("pprof-path", "PProf path where debug tool is available.").Default("/debug/pprof").StringVar(&c.statusServer.pprofPath)
	cmd.Flag("hot-reload-addr", "The listen address for hot-reloading the chart sources that allow it.").Default(":8082").StringVar(&c.hotReload.address)
	cmd.Flag("hot-reload-path", "The webhook path for hot-reloading the chart sources that allow it.").Default("/-/reload").StringVar(&c.hotReload.path)

	// Chart sources.
	cmd.Flag("fake", "Use fake chart data.").BoolVar(&c.source.fake)
	cmd.Flag("fake-seed", "The random seed of the fake chart data.").Default("42").Int64Var(&c.source.fakeSeed)
	cmd.Flag("data-url", "The URL of the JSON charts document.").StringVar(&c.source.dataURL)
	cmd.Flag("data-file", "The path of the JSON charts document.").StringVar(&c.source.dataFile)
	cmd.Flag("data-timeout", "The timeout when getting the charts document from its URL.").Default("30s").DurationVar(&c.source.http.timeout)
	cmd.Flag("data-auth-basic-user", "Basic auth user for the charts document URL.").StringVar(&c.source.http.auth.basicUser)
	cmd.Flag("data-auth-basic-password", "Basic auth password for the charts document URL.").StringVar(&c.source.http.auth.basicPassword)
	cmd.Flag("data-tls-insecure-skip-verify", "Skip TLS certificate verification for the charts document URL.").BoolVar(&c.source.http.tls.insecureSkipVerify)
	cmd.Flag("data-tls-ca-file", "CA certificate file for the charts document URL TLS.").StringVar(&c.source.http.tls.caFile)

	cmd.Flag("prometheus-catalog", "The path of the YAML catalog of charts based on Prometheus queries.").StringVar(&c.prometheus.catalogPath)
	cmd.Flag("prometheus-address", "Prometheus server address.").Default("http://localhost:9090").StringVar(&c.prometheus.promAddress)
	cmd.Flag("prometheus-cache-refresh-interval", "The interval for Prometheus chart data refresh.").Default("1m").DurationVar(&c.prometheus.cacheRefreshInterval)
	cmd.Flag("prometheus-auth-basic-user", "Basic auth user for Prometheus.").StringVar(&c.prometheus.http.auth.basicUser)
	cmd.Flag("prometheus-auth-basic-password", "Basic auth password for Prometheus.").StringVar(&c.prometheus.http.auth.basicPassword)
	cmd.Flag("prometheus-tls-insecure-skip-verify", "Skip TLS certificate verification for Prometheus.").BoolVar(&c.prometheus.http.tls.insecureSkipVerify)
	cmd.Flag("prometheus-tls-ca-file", "CA certificate file for Prometheus TLS.").StringVar(&c.prometheus.http.tls.caFile)
	cmd.Flag("prometheus-tls-cert-file", "Client certificate file for Prometheus mTLS.").StringVar(&c.prometheus.http.tls.certFile)
	cmd.Flag("prometheus-tls-key-file", "Client key file for Prometheus mTLS.").StringVar(&c.prometheus.http.tls.keyFile)

	return c
}

// reloader is implemented by the chart sources that can be hot-reloaded.
type reloader interface {
	Reload(ctx context.Context) error
}

func (c serverCommand) Name() string { return "server" }
func (c serverCommand) Run(ctx context.Context, config RootConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := config.Logger.WithValues(log.Kv{"command": c.Name()})
	promReg := prometheus.DefaultRegisterer
	uiBackendMetricsRecorder := httpbackendmetricsprometheus.NewRecorder(promReg)

	repo, err := c.newChartGetter(ctx, logger, uiBackendMetricsRecorder)
	if err != nil {
		return err
	}

	var g run.Group
	reloadManager := reload.NewManager()

	// Hot-reload.
	{
		if r, ok := repo.(reloader); ok {
			reloadManager.Add(1000, reload.ReloaderFunc(func(ctx context.Context, id string) error {
				logger.WithValues(log.Kv{"reload-id": id}).Infof("Reloading chart source")
				return r.Reload(ctx)
			}))
		}

		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				logger.Infof("Hot-reload manager running")
				defer logger.Infof("Hot-reload manager stopped")
				return reloadManager.Run(ctx)
			},
			func(_ error) { cancel() },
		)
	}

	// Stop on context cancellation (e.g: SIGTERM).
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				<-ctx.Done()
				logger.Infof("Stopping server")
				return nil
			},
			func(_ error) { cancel() },
		)
	}

	// SIGHUP reloads.
	{
		sigC := make(chan os.Signal, 1)
		signal.Notify(sigC, syscall.SIGHUP)
		reloadC := make(chan struct{})
		exitC := make(chan struct{})
		reloadManager.On(chanNotifier(reloadC, "sighup"))

		g.Add(
			func() error {
				for {
					select {
					case <-sigC:
						logger.Infof("Hot-reload triggered from OS SIGHUP signal")
						select {
						case reloadC <- struct{}{}:
						case <-exitC:
							return nil
						}
					case <-exitC:
						return nil
					}
				}
			},
			func(_ error) {
				signal.Stop(sigC)
				close(exitC)
			},
		)
	}

	// Hot-reload webhook server.
	{
		reloadC := make(chan struct{})
		reloadManager.On(chanNotifier(reloadC, "http"))

		mux := http.NewServeMux()
		mux.HandleFunc(c.hotReload.path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			logger.Infof("Hot-reload triggered from http webhook")
			select {
			case reloadC <- struct{}{}:
			case <-r.Context().Done():
			}
		})

		addHTTPServer(&g, logger.WithValues(log.Kv{"server": "hot-reload", "addr": c.hotReload.address}), &http.Server{
			Addr:    c.hotReload.address,
			Handler: mux,
		})
	}

	// Status server (health checks, metrics, pprof).
	{
		mux := http.NewServeMux()
		mux.HandleFunc(c.statusServer.pprofPath+"/", pprof.Index)
		mux.HandleFunc(c.statusServer.pprofPath+"/cmdline", pprof.Cmdline)
		mux.HandleFunc(c.statusServer.pprofPath+"/profile", pprof.Profile)
		mux.HandleFunc(c.statusServer.pprofPath+"/symbol", pprof.Symbol)
		mux.HandleFunc(c.statusServer.pprofPath+"/trace", pprof.Trace)
		mux.Handle(c.statusServer.metricsPath, promhttp.Handler())
		mux.HandleFunc(c.statusServer.healthCheckPath, func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })

		addHTTPServer(&g, logger.WithValues(log.Kv{
			"server":       "status",
			"addr":         c.statusServer.address,
			"metrics":      c.statusServer.metricsPath,
			"health-check": c.statusServer.healthCheckPath,
			"pprof":        c.statusServer.pprofPath,
		}), &http.Server{
			Addr:    c.statusServer.address,
			Handler: mux,
		})
	}

	// Application server.
	{
		app, err := backendapp.NewApp(backendapp.AppConfig{
			ChartGetter: storagewrappers.NewLoggedChartGetter(
				storagewrappers.NewMeasuredChartGetter(repo, uiBackendMetricsRecorder),
				logger,
			),
			MetricsRecorder: uiBackendMetricsRecorder,
			Logger:          logger,
		})
		if err != nil {
			return fmt.Errorf("could not create app: %w", err)
		}

		uiHandler, err := ui.NewUI(ui.UIConfig{
			Logger:   logger,
			ChartApp: app,
			MetricsRecorder: gohttpmetricsprometheus.NewRecorder(gohttpmetricsprometheus.Config{
				Prefix:   httpbackendmetricsprometheus.Prefix,
				Registry: promReg,
			}),
		})
		if err != nil {
			return fmt.Errorf("could not create ui handler: %w", err)
		}

		mux := http.NewServeMux()
		mux.Handle(ui.ServePrefix+"/", uiHandler)
		mux.Handle("/", http.RedirectHandler(ui.ServePrefix, http.StatusSeeOther))

		addHTTPServer(&g, logger.WithValues(log.Kv{"server": "app", "addr": c.appServer.address}), &http.Server{
			Addr:    c.appServer.address,
			Handler: mux,
		})
	}

	return g.Run()
}

// chanNotifier is a hot-reload notifier triggered by the channel.
func chanNotifier(c <-chan struct{}, id string) reload.NotifierFunc {
	return reload.NotifierFunc(func(ctx context.Context) (string, error) {
		select {
		case <-c:
			return id, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
}

// addHTTPServer runs the server on the group, draining the connections on stop.
func addHTTPServer(g *run.Group, logger log.Logger, server *http.Server) {
	g.Add(
		func() error {
			logger.Infof("HTTP server listening...")
			return server.ListenAndServe()
		},
		func(_ error) {
			logger.Infof("Start draining connections")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := server.Shutdown(ctx)
			if err != nil {
				logger.Errorf("Error while shutting down the server: %s", err)
				return
			}
			logger.Infof("Server stopped")
		},
	)
}

// newChartGetter returns the configured chart source. Fake data has preference,
// then the Prometheus catalog and last the JSON document.
func (c serverCommand) newChartGetter(ctx context.Context, logger log.Logger, metricsRecorder httpbackendmetricsprometheus.Recorder) (storage.ChartGetter, error) {
	switch {
	case c.source.fake:
		logger.Warningf("Using fake chart source")
		return storagefake.NewRepository(time.Now(), c.source.fakeSeed), nil

	case c.prometheus.catalogPath != "":
		httpClient, err := newHTTPClient(c.prometheus.http, logger)
		if err != nil {
			return nil, fmt.Errorf("could not create prometheus http client: %w", err)
		}

		logger.Infof("Using Prometheus chart source at %s", c.prometheus.promAddress)

		client, err := promapi.NewClient(promapi.Config{
			Address: c.prometheus.promAddress,
			Client:  httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create prometheus api client: %w", err)
		}

		catalogPath, err := filepath.Abs(c.prometheus.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog path: %w", err)
		}

		repo, err := storageprometheus.NewRepository(ctx, storageprometheus.RepositoryConfig{
			PrometheusClient:     storageprometheus.NewMeasuredPrometheusAPIClient(metricsRecorder, promv1.NewAPI(client)),
			CatalogFS:            os.DirFS(filepath.Dir(catalogPath)),
			CatalogPath:          filepath.Base(catalogPath),
			CacheRefreshInterval: c.prometheus.cacheRefreshInterval,
			MetricsRecorder:      metricsRecorder,
			Logger:               logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create prometheus chart source: %w", err)
		}

		return repo, nil

	case c.source.dataURL != "":
		httpClient, err := newHTTPClient(c.source.http, logger)
		if err != nil {
			return nil, fmt.Errorf("could not create http client: %w", err)
		}

		logger.Infof("Using charts document at %s", c.source.dataURL)
		return newDocumentChartGetter(c.source.dataURL, httpClient, logger)

	case c.source.dataFile != "":
		logger.Infof("Using charts document file %s", c.source.dataFile)
		return newDocumentChartGetter(c.source.dataFile, nil, logger)

	default:
		return nil, fmt.Errorf("no chart source configured")
	}
}
