/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/event/spi"
)

type eventSubscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *spi.Event, error)
	Unsubscribe(topic string, msgChan <-chan *spi.Event)
}

// logLedgerEvents logs every event emitted by ledger transactions until the subscription
// is closed or the context is done. The returned channel is closed when logging stops, after the
// subscription has been released.
func logLedgerEvents(ctx context.Context, subscriber eventSubscriber) (<-chan struct{}, error) {
	events, err := subscriber.Subscribe(ctx, spi.LedgerEventTopic)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		defer close(done)
		defer subscriber.Unsubscribe(spi.LedgerEventTopic, events)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}

				logger.Infoc(ctx, "Ledger event",
					log.WithTopic(spi.LedgerEventTopic),
					logfields.WithTransactionID(event.TransactionID),
					logfields.WithEvent(event))
			}
		}
	}()

	return done, nil
}
