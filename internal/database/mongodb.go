package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"

	"github.com/nexoventlabs/business-tracker/pkg/apperr"
	"github.com/nexoventlabs/business-tracker/pkg/logger"
)

// ErrNoURL is returned when the store is needed but no connection URL was configured.
var ErrNoURL = errors.New("MONGODB_URL is not set")

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrNoURL
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	// records are schemaless; nested documents must decode as maps, not bson.D
	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Manager owns the process-wide Mongo client and hands out the records collection.
// The connection is established on first use; failures are not cached so the next
// call retries. Concurrent callers share a single in-flight attempt.
type Manager struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration

	mu     sync.Mutex
	client *mongo.Client
	col    *mongo.Collection
	dial   singleflight.Group

	// OnConnect, when set, runs once after a successful connection (index setup).
	OnConnect func(ctx context.Context, col *mongo.Collection) error
}

func NewManager(uri, database, collection string, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Manager{uri: uri, database: database, collection: collection, timeout: timeout}
}

// Collection returns the cached collection handle, connecting first if needed.
// A caller whose ctx ends stops waiting; the shared attempt still runs to its own
// timeout. Errors are of kind apperr.KindConnectivity.
func (m *Manager) Collection(ctx context.Context) (*mongo.Collection, error) {
	if col := m.cached(); col != nil {
		return col, nil
	}

	ch := m.dial.DoChan("connect", func() (interface{}, error) {
		return m.connect()
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Collection), nil
	case <-ctx.Done():
		return nil, apperr.Wrap(ctx.Err(), apperr.KindConnectivity, "database connection unavailable")
	}
}

func (m *Manager) cached() *mongo.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.col
}

// connect runs detached from any single request so that one caller giving up
// does not fail the others sharing the attempt.
func (m *Manager) connect() (*mongo.Collection, error) {
	if col := m.cached(); col != nil {
		return col, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	client, err := ConnectMongo(ctx, m.uri, m.timeout)
	if err != nil {
		logger.Warnf("mongo connection failed: %v", err)
		return nil, apperr.Wrap(err, apperr.KindConnectivity, "database connection unavailable")
	}
	col := client.Database(m.database).Collection(m.collection)
	if m.OnConnect != nil {
		if err := m.OnConnect(ctx, col); err != nil {
			_ = client.Disconnect(context.Background())
			logger.Warnf("mongo post-connect setup failed: %v", err)
			return nil, apperr.Wrap(err, apperr.KindConnectivity, "database setup failed")
		}
	}

	m.mu.Lock()
	m.client, m.col = client, col
	m.mu.Unlock()
	logger.Infof("connected to MongoDB database=%s collection=%s", m.database, m.collection)
	return col, nil
}

// Ping forces handle acquisition and issues a liveness ping against the server.
func (m *Manager) Ping(ctx context.Context) error {
	col, err := m.Collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := col.Database().Client().Ping(ctx, nil); err != nil {
		return apperr.Wrap(err, apperr.KindConnectivity, "mongo ping")
	}
	return nil
}

// Close disconnects the cached client, if any.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client, m.col = nil, nil
	logger.Debugf("mongo client disconnected (err=%v)", err)
	return err
}
