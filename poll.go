package snowtask

import (
	"context"
	"time"

	"github.com/polarflow/snowtask/warehouse"
)

// pollState tracks the lifecycle of one asynchronously submitted query.
type pollState int

const (
	stateSubmitted pollState = iota
	statePolling
	stateDone
	stateFailed
)

// poller waits for an asynchronously submitted query to finish by checking
// the connection's status accessor at a fixed interval. There is no
// backoff, no jitter, and no cap on attempts; cancellation is observed at
// poll boundaries.
type poller struct {
	conn     warehouse.Conn
	queryID  string
	interval time.Duration
	clock    Clock

	// polls counts status checks, for instrumentation.
	polls int
	err   error
}

func (p *poller) wait(ctx context.Context) error {
	state := stateSubmitted
	for {
		switch state {
		case stateSubmitted, statePolling:
			done, err := p.conn.QueryDone(ctx, p.queryID)
			p.polls++
			if err != nil {
				p.err = err
				state = stateFailed
				continue
			}
			if done {
				state = stateDone
				continue
			}
			state = statePolling
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-p.clock.After(p.interval):
			}
		case stateDone:
			return nil
		case stateFailed:
			return p.err
		}
	}
}
