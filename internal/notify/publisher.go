package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Channel and event names used by the research flow. The channel is shared,
// not per-user.
const (
	ResearchChannel  = "private-research"
	NewResearchEvent = "new-research"
)

// Event is the envelope published to the relay.
type Event struct {
	Event   string      `json:"event"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

// SignedAuth authorizes a client to subscribe to a private channel. The
// signature covers the subscriber identity so the relay can verify who joined.
type SignedAuth struct {
	Auth        string `json:"auth"`
	ChannelData string `json:"channel_data"`
}

// Publisher fans out events through the Redis relay and signs channel
// subscription requests. Publishing is best-effort: failures are logged,
// never returned to the caller.
type Publisher struct {
	client *redis.Client
	key    string
	secret string
	log    *logrus.Logger
}

// NewPublisher creates a relay publisher.
func NewPublisher(addr, password string, db int, key, secret string, log *logrus.Logger) *Publisher {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Publisher{
		client: redis.NewClient(opts),
		key:    key,
		secret: secret,
		log:    log,
	}
}

// Publish sends an event to the named channel. Errors are swallowed so a relay
// outage never affects the request that triggered the event.
func (p *Publisher) Publish(ctx context.Context, channel, event string, payload interface{}) {
	if p == nil || p.client == nil {
		return
	}

	body, err := json.Marshal(Event{Event: event, Channel: channel, Data: payload})
	if err != nil {
		p.log.WithError(err).Error("marshal relay event")
		return
	}

	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"channel": channel,
			"event":   event,
		}).Warn("relay publish failed")
	}
}

// AuthenticateSubscription signs a channel subscription for the given socket,
// binding the subscriber identity into the signed payload.
func (p *Publisher) AuthenticateSubscription(channel, socketID, identity string) (SignedAuth, error) {
	channelData, err := json.Marshal(map[string]string{"user_id": identity})
	if err != nil {
		return SignedAuth{}, fmt.Errorf("marshal channel data: %w", err)
	}

	toSign := fmt.Sprintf("%s:%s:%s", socketID, channel, channelData)
	mac := hmac.New(sha256.New, []byte(p.secret))
	mac.Write([]byte(toSign))
	signature := hex.EncodeToString(mac.Sum(nil))

	return SignedAuth{
		Auth:        fmt.Sprintf("%s:%s", p.key, signature),
		ChannelData: string(channelData),
	}, nil
}

// Ping checks relay connectivity, used by the health endpoint.
func (p *Publisher) Ping(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Ping(ctx).Err()
}
