package mqtt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	coremon "github.com/kilianp07/transport/core/monitoring"
	"github.com/kilianp07/transport/infra/logger"
)

// helper to generate self-signed cert
func generateCert(t *testing.T) (certFile, keyFile, caFile string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}
	tmpl := x509.Certificate{SerialNumber: big.NewInt(1), Subject: pkix.Name{CommonName: "test"}, NotBefore: time.Now(), NotAfter: time.Now().Add(time.Hour)}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	caFile = filepath.Join(dir, "ca.pem")
	for path, data := range map[string][]byte{certFile: certPEM, keyFile: keyPEM, caFile: certPEM} {
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return
}

func TestLoadTLSConfig(t *testing.T) {
	cert, key, ca := generateCert(t)
	cfg := Config{UseTLS: true, ClientCert: cert, ClientKey: key, CABundle: ca}
	tlsCfg, err := cfg.LoadTLSConfig()
	if err != nil {
		t.Fatalf("load tls: %v", err)
	}
	if len(tlsCfg.Certificates) == 0 || tlsCfg.RootCAs == nil {
		t.Fatalf("tls config incomplete")
	}

	if _, err := (Config{UseTLS: true}).LoadTLSConfig(); err == nil {
		t.Fatalf("expected error for missing files")
	}
}

func TestNewClientOptions(t *testing.T) {
	opts, err := NewClientOptions(Config{Broker: "tcp://localhost:1883", ClientID: "id", Username: "u", Password: "p", LWTTopic: "lwt", LWTPayload: "bye", LWTQoS: 1})
	if err != nil {
		t.Fatalf("opts: %v", err)
	}
	if opts.Username != "u" || opts.Password != "p" {
		t.Fatalf("auth not set")
	}
	if !opts.WillEnabled || opts.WillTopic != "lwt" || string(opts.WillPayload) != "bye" {
		t.Fatalf("will options incorrect")
	}

	opts, err = NewClientOptions(Config{Broker: "tcp://x", AuthMethod: "tls", Username: "u"})
	if err != nil {
		t.Fatalf("opts: %v", err)
	}
	if opts.Username != "" {
		t.Fatalf("username set for tls-only auth")
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.RequestTopic != DefaultRequestTopic || cfg.ResponsePrefix != DefaultResponsePrefix {
		t.Fatalf("topics not defaulted: %+v", cfg)
	}
	if cfg.MaxRetries != 3 || cfg.BackoffMS != 100 || cfg.TimeoutMS != 5000 {
		t.Fatalf("retries not defaulted: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing broker error")
	}

	cfg = Config{Broker: "tcp://x", ResponsePrefix: "resp/"}
	cfg.SetDefaults()
	if got := cfg.ResponseTopic("42"); got != "resp/42" {
		t.Fatalf("response topic = %q", got)
	}

	bad := []Config{
		{Broker: "tcp://x", RequestTopic: "solve/+"},
		{Broker: "tcp://x", RequestTopic: "solve", QoS: map[string]byte{"request": 3}},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func TestConnectFailure(t *testing.T) {
	restore, _ := useBroker(newBroker(), func(c *mockClient) { c.connectErr = errors.New("refused") })
	defer restore()
	if _, err := NewRequester(Config{Broker: "tcp://x"}); err == nil {
		t.Fatalf("expected connect error")
	}
}

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) CapturePanic(any)    {}
func (r *recordMonitor) Flush(time.Duration) {}

func TestPublishRetries(t *testing.T) {
	mc := &mockClient{publishErrs: []error{errPublish, errPublish}}
	cfg := Config{MaxRetries: 2, BackoffMS: 1}
	if err := publish(mc, cfg, logger.NopLogger{}, "t", 0, []byte("x")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := len(mc.publishedTopics()); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestPublishErrorCaptured(t *testing.T) {
	mon := &recordMonitor{}
	coremon.Init(mon)
	defer coremon.Init(coremon.NopMonitor{})

	mc := &mockClient{publishErrs: []error{errPublish, errPublish}}
	cfg := Config{MaxRetries: 1, BackoffMS: 1}
	err := publish(mc, cfg, logger.NopLogger{}, "transport/solve/request", 0, []byte("x"))
	if !errors.Is(err, errPublish) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if mon.err == nil {
		t.Fatalf("error not captured")
	}
	if mon.tags["module"] != "mqtt" || mon.tags["topic"] != "transport/solve/request" {
		t.Fatalf("tags not set: %v", mon.tags)
	}
}
