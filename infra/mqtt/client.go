package mqtt

import (
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/transport/core/monitoring"
	"github.com/kilianp07/transport/infra/logger"
)

// pahoClient is the subset of paho.Client used here.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.AuthMethod == "username_password" || cfg.AuthMethod == "both" || cfg.AuthMethod == "" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// connect dials the broker. subscribe runs on every (re)connection so the
// subscription survives broker restarts.
func connect(cfg Config, log logger.Logger, topic string, qos byte, handler paho.MessageHandler) (pahoClient, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(topic, qos, handler); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe %s error: %v", topic, token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return c, nil
}

// publish sends payload, retrying with exponential backoff. The final
// failure is reported to the monitor.
func publish(cli pahoClient, cfg Config, log logger.Logger, topic string, qos byte, payload []byte) error {
	var err error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		token := cli.Publish(topic, qos, false, payload)
		token.Wait()
		if err = token.Error(); err == nil {
			return nil
		}
		log.Errorf("publish attempt %d on %s failed: %v", attempt+1, topic, err)
		if attempt < cfg.MaxRetries {
			time.Sleep(cfg.backoff() * time.Duration(1<<attempt))
		}
	}
	monitoring.CaptureException(err, map[string]string{"module": "mqtt", "topic": topic})
	return err
}
