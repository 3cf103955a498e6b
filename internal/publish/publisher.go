package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/object"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Options configure a Publisher.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// sender is an open connection that can emit one event.
type sender interface {
	send(event string, payload any) error
	close()
}

type dialFunc func(ctx context.Context, opts Options) (sender, error)

// Publisher emits models to a socket.io server. Every Publish call opens
// and closes its own connection.
type Publisher struct {
	opts Options
	dial dialFunc
}

// New returns a Publisher for opts.
func New(opts Options) *Publisher {
	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	if opts.Event == "" {
		opts.Event = "model"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Publisher{opts: opts, dial: dialSocketIO}
}

// Publish emits the payload of objs under the configured event.
func (p *Publisher) Publish(ctx context.Context, version string, objs []*object.Object) error {
	logger := ctxlog.FromContext(ctx).With("url", p.opts.URL, "event", p.opts.Event)

	data, err := Encode(Payload(version, objs))
	if err != nil {
		return err
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	conn, err := p.dial(ctx, p.opts)
	if err != nil {
		return err
	}
	defer conn.close()

	if err := conn.send(p.opts.Event, payload); err != nil {
		return fmt.Errorf("failed to emit %q: %w", p.opts.Event, err)
	}
	logger.Info("Published model.", "objects", len(objs), "bytes", len(data))
	return nil
}

type socketSender struct {
	io *socket.Socket
}

func (s *socketSender) send(event string, payload any) error {
	s.io.Emit(event, payload)
	return nil
}

func (s *socketSender) close() {
	s.io.Disconnect()
}

// dialSocketIO connects over the websocket transport and waits for the
// namespace to be joined.
func dialSocketIO(ctx context.Context, opts Options) (sender, error) {
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "namespace", opts.Namespace)
	logger.Debug("Connecting to socket.io server...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("failed to parse URL: %q is not absolute", opts.URL)
	}

	sockOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sockOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", errs[0])
			}
		}
		connectChan <- err
	})
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &socketSender{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(opts.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", opts.Timeout)
	}
}
