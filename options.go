package snowtask

import (
	"log/slog"
	"time"

	"github.com/polarflow/snowtask/warehouse"
)

// DefaultPollInterval is the pause between status checks for
// asynchronously submitted queries.
const DefaultPollInterval = time.Second

// Option configures a query task invocation.
type Option func(*taskConfig)

// taskConfig holds the resolved configuration for one task invocation.
type taskConfig struct {
	binds                         []any
	pollInterval                  time.Duration
	asTransaction                 bool
	keepTransactionControlResults bool
	client                        warehouse.Client
	clock                         Clock
	logger                        *slog.Logger
}

func newTaskConfig(opts []Option) *taskConfig {
	cfg := &taskConfig{
		pollInterval: DefaultPollInterval,
		client:       warehouse.NewClient(),
		clock:        realClock{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBindings sets the bind values substituted for the statement's
// placeholders.
func WithBindings(binds ...any) Option {
	return func(c *taskConfig) {
		c.binds = binds
	}
}

// WithPollInterval sets the pause between status checks for asynchronous
// queries. The default is DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(c *taskConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// AsTransaction wraps a MultiQuery statement list in explicit
// transaction-begin and commit statements.
func AsTransaction() Option {
	return func(c *taskConfig) {
		c.asTransaction = true
	}
}

// WithTransactionControlResults keeps the results of the transaction
// bracket statements in the MultiQuery output. By default they are
// stripped.
func WithTransactionControlResults() Option {
	return func(c *taskConfig) {
		c.keepTransactionControlResults = true
	}
}

// WithClient substitutes the warehouse client. Used by tests and by
// callers that pool connections themselves.
func WithClient(client warehouse.Client) Option {
	return func(c *taskConfig) {
		if client != nil {
			c.client = client
		}
	}
}

// WithClock substitutes the clock driving the polling loop.
func WithClock(clock Clock) Option {
	return func(c *taskConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger for task progress records. The default is
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *taskConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
