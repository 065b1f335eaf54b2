package commands

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/slok/tsplot/internal/http/backend/storage"
	storagefs "github.com/slok/tsplot/internal/http/backend/storage/fs"
	storagehttp "github.com/slok/tsplot/internal/http/backend/storage/http"
	"github.com/slok/tsplot/internal/log"
)

type httpClientConfig struct {
	timeout time.Duration
	auth    struct {
		basicUser     string
		basicPassword string
	}
	tls struct {
		insecureSkipVerify bool
		caFile             string
		certFile           string
		keyFile            string
	}
}

func newHTTPClient(config httpClientConfig, logger log.Logger) (*http.Client, error) {
	// Create HTTP transport with optional TLS configuration.
	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Configure TLS if any TLS options are set.
	if config.tls.insecureSkipVerify || config.tls.caFile != "" || config.tls.certFile != "" || config.tls.keyFile != "" {
		tlsConfig, err := buildTLSConfig(config)
		if err != nil {
			return nil, fmt.Errorf("could not build TLS config: %w", err)
		}
		transport.TLSClientConfig = tlsConfig
		logger.Infof("TLS enabled for HTTP client")
	}

	var roundTripper http.RoundTripper = transport

	// Add basic auth if configured.
	if config.auth.basicUser != "" || config.auth.basicPassword != "" {
		logger.Infof("Basic auth enabled for HTTP client")
		roundTripper = &basicAuthRoundTripper{
			username: config.auth.basicUser,
			password: config.auth.basicPassword,
			next:     roundTripper,
		}
	}

	timeout := config.timeout
	if timeout <= 0 {
		timeout = 1 * time.Minute // At least we end at some point
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: roundTripper,
	}, nil
}

func buildTLSConfig(config httpClientConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: config.tls.insecureSkipVerify,
	}

	// Load CA certificate if provided.
	if config.tls.caFile != "" {
		caCert, err := os.ReadFile(config.tls.caFile)
		if err != nil {
			return nil, fmt.Errorf("could not read CA file: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
	}

	// Load client certificate and key for mTLS if provided.
	if config.tls.certFile != "" && config.tls.keyFile != "" {
		cert, err := tls.LoadX509KeyPair(config.tls.certFile, config.tls.keyFile)
		if err != nil {
			return nil, fmt.Errorf("could not load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	} else if config.tls.certFile != "" || config.tls.keyFile != "" {
		return nil, fmt.Errorf("both cert-file and key-file must be provided for mTLS")
	}

	return tlsConfig, nil
}

type basicAuthRoundTripper struct {
	username string
	password string
	next     http.RoundTripper
}

func (rt *basicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(rt.username, rt.password)
	return rt.next.RoundTrip(req)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// newDocumentChartGetter returns the chart source of a JSON charts document
// located on an HTTP server or on the local file system.
func newDocumentChartGetter(location string, httpClient *http.Client, logger log.Logger) (storage.ChartGetter, error) {
	if isURL(location) {
		repo, err := storagehttp.NewRepository(storagehttp.RepositoryConfig{
			URL:        location,
			HTTPClient: httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create HTTP chart source: %w", err)
		}
		return repo, nil
	}

	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("invalid document path: %w", err)
	}

	repo, err := storagefs.NewRepository(storagefs.RepositoryConfig{
		FS:     os.DirFS(filepath.Dir(absPath)),
		Path:   filepath.Base(absPath),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create file chart source: %w", err)
	}

	return repo, nil
}
