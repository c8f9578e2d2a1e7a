package cmd

import (
	"fmt"
	"time"

	"github.com/kilianp07/transport/config"
	coremqtt "github.com/kilianp07/transport/core/mqtt"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/core/transport/history"
	"github.com/kilianp07/transport/infra/logger"
	"github.com/kilianp07/transport/infra/mqtt"
)

// newLocalManager builds a Manager persisting to the configured history store.
func newLocalManager(cfg *config.Config) (*transport.Manager, error) {
	store, err := history.Open(cfg.History.Options())
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	mgr := transport.NewManager(logger.New("cli"), nil, nil)
	mgr.SetStore(store)
	return mgr, nil
}

// newRemoteClient connects a requester with a unique client id so it does
// not kick the service's own session off the broker.
func newRemoteClient(cfg *config.Config) (coremqtt.Client, error) {
	if !cfg.MQTTEnabled() {
		return nil, fmt.Errorf("--remote needs mqtt.broker in the configuration")
	}
	reqCfg := cfg.MQTT
	suffix := time.Now().UnixNano()
	if reqCfg.ClientID != "" {
		reqCfg.ClientID = fmt.Sprintf("%s-cli-%d", reqCfg.ClientID, suffix)
	} else {
		reqCfg.ClientID = fmt.Sprintf("transport-cli-%d", suffix)
	}
	reqCfg.LWTTopic = ""
	return mqtt.NewRequester(reqCfg)
}
