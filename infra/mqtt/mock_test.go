package mqtt

import (
	"errors"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type dummyToken struct{ err error }

func (t *dummyToken) Wait() bool                     { return true }
func (t *dummyToken) WaitTimeout(time.Duration) bool { return true }
func (t *dummyToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *dummyToken) Error() error { return t.err }

type mockMessage struct {
	topic   string
	payload []byte
}

func (m *mockMessage) Duplicate() bool   { return false }
func (m *mockMessage) Qos() byte         { return 0 }
func (m *mockMessage) Retained() bool    { return false }
func (m *mockMessage) Topic() string     { return m.topic }
func (m *mockMessage) MessageID() uint16 { return 0 }
func (m *mockMessage) Payload() []byte   { return m.payload }
func (m *mockMessage) Ack()              {}

// broker routes publications between mock clients in-process.
type broker struct {
	mu   sync.Mutex
	subs map[string][]paho.MessageHandler
}

func newBroker() *broker { return &broker{subs: make(map[string][]paho.MessageHandler)} }

func (b *broker) subscribe(filter string, h paho.MessageHandler) {
	b.mu.Lock()
	b.subs[filter] = append(b.subs[filter], h)
	b.mu.Unlock()
}

func (b *broker) deliver(topic string, payload []byte) {
	b.mu.Lock()
	var hs []paho.MessageHandler
	for filter, list := range b.subs {
		if topicMatches(filter, topic) {
			hs = append(hs, list...)
		}
	}
	b.mu.Unlock()
	for _, h := range hs {
		h(nil, &mockMessage{topic: topic, payload: payload})
	}
}

func topicMatches(filter, topic string) bool {
	f := strings.Split(filter, "/")
	t := strings.Split(topic, "/")
	if len(f) != len(t) {
		return false
	}
	for i := range f {
		if f[i] != "+" && f[i] != t[i] {
			return false
		}
	}
	return true
}

type mockClient struct {
	opts        *paho.ClientOptions
	broker      *broker
	connectErr  error
	publishErrs []error
	connected   bool

	mu        sync.Mutex
	published []string
}

func (m *mockClient) IsConnected() bool { return m.connected }

func (m *mockClient) Connect() paho.Token {
	if m.connectErr != nil {
		return &dummyToken{err: m.connectErr}
	}
	m.connected = true
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(m)
	}
	return &dummyToken{}
}

func (m *mockClient) Disconnect(uint) { m.connected = false }

func (m *mockClient) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	m.mu.Lock()
	m.published = append(m.published, topic)
	var err error
	if len(m.publishErrs) > 0 {
		err = m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
	}
	m.mu.Unlock()
	if err != nil {
		return &dummyToken{err: err}
	}
	if m.broker != nil {
		m.broker.deliver(topic, payload.([]byte))
	}
	return &dummyToken{}
}

func (m *mockClient) Subscribe(topic string, _ byte, cb paho.MessageHandler) paho.Token {
	if m.broker != nil {
		m.broker.subscribe(topic, cb)
	}
	return &dummyToken{}
}

func (m *mockClient) publishedTopics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}

// The remaining paho.Client methods let mockClient be handed to OnConnect.
func (m *mockClient) IsConnectionOpen() bool { return m.connected }
func (m *mockClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return &dummyToken{}
}
func (m *mockClient) Unsubscribe(...string) paho.Token        { return &dummyToken{} }
func (m *mockClient) AddRoute(string, paho.MessageHandler)    {}
func (m *mockClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }

var errPublish = errors.New("publish failed")

// useBroker makes every client created by the test attach to b. It returns
// the created clients in creation order.
func useBroker(b *broker, tweak func(*mockClient)) (restore func(), clients func() []*mockClient) {
	var mu sync.Mutex
	var created []*mockClient
	orig := newMQTTClient
	newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
		c := &mockClient{opts: opts, broker: b}
		if tweak != nil {
			tweak(c)
		}
		mu.Lock()
		created = append(created, c)
		mu.Unlock()
		return c
	}
	return func() { newMQTTClient = orig }, func() []*mockClient {
		mu.Lock()
		defer mu.Unlock()
		return append([]*mockClient(nil), created...)
	}
}
