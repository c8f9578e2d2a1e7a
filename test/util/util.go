// Package util provides helper functions shared across integration tests.
//
// StartMosquitto launches a disposable Mosquitto broker in a Docker container
// for MQTT-based tests. WaitForHTTP and WaitForMetric poll HTTP endpoints
// until they are ready.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// Default timeouts for helper operations
	HTTPTimeout           = 5 * time.Second
	MosquittoReadyTimeout = 10 * time.Second
	MetricTimeout         = 5 * time.Second

	pollInterval = 50 * time.Millisecond
)

const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
connection_messages true
`

// Broker is a running Mosquitto container.
type Broker struct {
	URL       string
	container tc.Container
	dir       string
}

// Terminate stops the container and removes its configuration.
func (b *Broker) Terminate() {
	if b.container != nil {
		_ = b.container.Terminate(context.Background())
	}
	_ = os.RemoveAll(b.dir)
}

// StartMosquitto launches a temporary Mosquitto broker and waits until it
// accepts MQTT connections.
func StartMosquitto(ctx context.Context) (*Broker, error) {
	dir, err := os.MkdirTemp("", "mosq")
	if err != nil {
		return nil, err
	}
	b := &Broker{dir: dir}
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(mosquittoConf), 0o644); err != nil {
		b.Terminate()
		return nil, err
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{{
			HostFilePath:      path,
			ContainerFilePath: "/mosquitto/config/mosquitto.conf",
			FileMode:          0o644,
		}},
	}
	b.container, err = tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		b.Terminate()
		return nil, err
	}
	host, err := b.container.Host(ctx)
	if err != nil {
		b.Terminate()
		return nil, err
	}
	port, err := b.container.MappedPort(ctx, "1883")
	if err != nil {
		b.Terminate()
		return nil, err
	}
	b.URL = fmt.Sprintf("tcp://%s:%s", host, port.Port())

	waitCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	if err := waitForMQTTReady(waitCtx, b.URL); err != nil {
		b.Terminate()
		return nil, err
	}
	return b, nil
}

func waitForMQTTReady(ctx context.Context, broker string) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("readiness-check")
	for {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// WaitForHTTP polls url until it answers with HTTP 200 or the context is
// done.
func WaitForHTTP(ctx context.Context, url string) error {
	_, err := poll(ctx, url, func(status int, _ string) bool { return status == http.StatusOK })
	if err != nil {
		return fmt.Errorf("server not ready: %w", err)
	}
	return nil
}

// WaitForMetric polls the given metrics URL until the provided substring is
// found in the output or the context is done.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	_, err := poll(ctx, metricsURL, func(_ int, body string) bool { return strings.Contains(body, substr) })
	if err != nil {
		return fmt.Errorf("metric %q not found: %w", substr, err)
	}
	return nil
}

func poll(ctx context.Context, url string, done func(status int, body string) bool) (string, error) {
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			body, rerr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if rerr == nil && done(resp.StatusCode, string(body)) {
				return string(body), nil
			}
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
