package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Default topics used when the configuration leaves them empty.
const (
	DefaultRequestTopic   = "transport/solve/request"
	DefaultResponsePrefix = "transport/solve/response"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker     string `json:"broker"`
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	AuthMethod string `json:"auth_method"`
	UseTLS     bool   `json:"use_tls"`
	ClientCert string `json:"client_cert"`
	ClientKey  string `json:"client_key"`
	CABundle   string `json:"ca_bundle"`
	// QoS per role: "request" and "response".
	QoS            map[string]byte `json:"qos"`
	RequestTopic   string          `json:"request_topic"`
	ResponsePrefix string          `json:"response_prefix"`
	LWTTopic       string          `json:"lwt_topic"`
	LWTPayload     string          `json:"lwt_payload"`
	LWTQoS         byte            `json:"lwt_qos"`
	LWTRetain      bool            `json:"lwt_retain"`
	MaxRetries     int             `json:"max_retries"`
	BackoffMS      int             `json:"backoff_ms"`
	// TimeoutMS bounds how long a Requester waits for a response.
	TimeoutMS int         `json:"timeout_ms"`
	TLSConfig *tls.Config `json:"-"`
}

// SetDefaults fills empty topics, retries and timeouts.
func (c *Config) SetDefaults() {
	if c.RequestTopic == "" {
		c.RequestTopic = DefaultRequestTopic
	}
	if c.ResponsePrefix == "" {
		c.ResponsePrefix = DefaultResponsePrefix
	}
	c.ResponsePrefix = strings.TrimSuffix(c.ResponsePrefix, "/")
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS <= 0 {
		c.BackoffMS = 100
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return errors.New("mqtt: broker is required")
	}
	if strings.ContainsAny(c.RequestTopic, "+#") {
		return fmt.Errorf("mqtt: request topic %q must not contain wildcards", c.RequestTopic)
	}
	for role, q := range c.QoS {
		if q > 2 {
			return fmt.Errorf("mqtt: qos %d for %s out of range", q, role)
		}
	}
	return nil
}

func (c Config) qos(role string) byte {
	if q, ok := c.QoS[role]; ok {
		return q
	}
	return 0
}

func (c Config) backoff() time.Duration { return time.Duration(c.BackoffMS) * time.Millisecond }

func (c Config) timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

// ResponseTopic returns the topic carrying the reply to requestID.
func (c Config) ResponseTopic(requestID string) string {
	return c.ResponsePrefix + "/" + requestID
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caBytes) {
		return nil, fmt.Errorf("ca bundle %s holds no certificate", c.CABundle)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}
