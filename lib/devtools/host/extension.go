package host

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultPollInterval is used if NewExtension is called without a poll interval
const DefaultPollInterval = 100 * time.Millisecond

// Extension connects stores to a host. It implements devtools.Extension.
type Extension struct {
	host     IHost
	interval time.Duration
	conns    *xsync.MapOf[uint64, *Conn]
}

// NewExtension creates an extension that opens sessions on h.
// Inbound messages are fetched every pollInterval once a connection is subscribed.
func NewExtension(h IHost, pollInterval time.Duration) *Extension {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Extension{
		host:     h,
		interval: pollInterval,
		conns:    xsync.NewMapOf[uint64, *Conn](),
	}
}

// Connect opens a session called name on the host
func (e *Extension) Connect(name string, opts devtools.ConnectOptions) (devtools.Connection, error) {
	info, err := e.host.Connect(name, opts)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		ext:  e,
		info: info,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	e.conns.Store(info.ID, c)
	return c, nil
}

// Close closes all connections opened by the extension
func (e *Extension) Close() error {
	var errs []error
	e.conns.Range(func(_ uint64, c *Conn) bool {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errors.Join(errs...)
}

// Conn is a session opened by an Extension. It implements devtools.Connection.
type Conn struct {
	ext  *Extension
	info SessionInfo

	mu      sync.Mutex
	handler func(devtools.Message)
	started bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Info returns the session info returned by the host on connect
func (c *Conn) Info() SessionInfo {
	return c.info
}

func (c *Conn) Init(state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.ext.host.Init(c.info.ID, data)
}

func (c *Conn) Send(action devtools.Action, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.ext.host.Send(c.info.ID, action, data)
}

// Subscribe sets the handler for inbound messages and starts polling the host
func (c *Conn) Subscribe(handler func(devtools.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler = handler
	if c.started {
		return
	}
	select {
	case <-c.stop:
		return
	default:
	}
	c.started = true
	go c.poll()
}

// Close stops polling and closes the session on the host
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)

		c.mu.Lock()
		started := c.started
		c.mu.Unlock()
		if started {
			<-c.done
		}

		c.ext.conns.Delete(c.info.ID)
		c.closeErr = c.ext.host.Disconnect(c.info.ID)
	})
	return c.closeErr
}

func (c *Conn) poll() {
	defer close(c.done)

	ticker := time.NewTicker(c.ext.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		msgs, err := c.ext.host.Poll(c.info.ID)
		if err != nil {
			var hostErr *Error
			if errors.As(err, &hostErr) && hostErr.Code == RetCSessionNotFound {
				Logger.Warningf("session %d (%s) is gone, stop polling", c.info.ID, c.info.Name)
				return
			}
			Logger.Errorf("failed to poll session %d (%s): %v", c.info.ID, c.info.Name, err)
			continue
		}

		c.mu.Lock()
		handler := c.handler
		c.mu.Unlock()
		if handler == nil {
			continue
		}
		for _, msg := range msgs {
			handler(msg)
		}
	}
}
