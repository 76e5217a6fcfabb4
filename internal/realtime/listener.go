package realtime

import (
	"context"
	"time"

	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pingInterval = 90 * time.Second

// Source is the part of *pq.Listener the bridge needs.
type Source interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Listener bridges a Postgres LISTEN channel into a Hub.
type Listener struct {
	source  Source
	channel string
	hub     *Hub
	metrics *metrics.Registry

	// OnReconnect runs after the connection was re-established; notifications sent
	// while it was down are lost, so subscribers should refresh.
	OnReconnect func()
}

// NewListener opens a pq.Listener on connStr.
func NewListener(connStr, channel string, hub *Hub, reg *metrics.Registry) *Listener {
	pl := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.L().Warn("realtime listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	return NewListenerFromSource(pl, channel, hub, reg)
}

func NewListenerFromSource(src Source, channel string, hub *Hub, reg *metrics.Registry) *Listener {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Listener{source: src, channel: channel, hub: hub, metrics: reg}
}

// Run listens until ctx is cancelled, then closes the source.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.source.Listen(l.channel); err != nil {
		return err
	}
	defer l.source.Close()

	log := logger.L().With(zap.String("channel", l.channel))
	log.Info("realtime listener started")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	notifications := l.source.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			log.Info("realtime listener stopped")
			return nil

		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			// pq sends nil after a reconnect
			if n == nil {
				log.Info("realtime listener reconnected")
				if l.OnReconnect != nil {
					l.OnReconnect()
				}
				continue
			}
			l.handle(n.Extra)

		case <-ticker.C:
			if err := l.source.Ping(); err != nil {
				log.Warn("realtime listener ping failed", zap.Error(err))
			}
		}
	}
}

// Close releases the underlying connection and unblocks a Run that is still waiting
// for the first connection.
func (l *Listener) Close() error {
	return l.source.Close()
}

func (l *Listener) handle(payload string) {
	ev, err := DecodeEvent(payload)
	if err != nil {
		l.metrics.Inc(metrics.RealtimeDecodeFailure)
		logger.L().Warn("dropping change notification", zap.String("payload", payload), zap.Error(err))
		return
	}
	l.metrics.Inc(metrics.RealtimeEvents)
	l.hub.Publish(ev)
}
