package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ErrSyntax wraps Cypher syntax failures reported by the database. Callers
// detect it with errors.Is to fall back instead of surfacing the error.
var ErrSyntax = errors.New("cypher syntax error")

// Options configure the graph store.
type Options struct {
	// Database selects the Neo4j database; empty uses the server default.
	Database string
	// MaxRetries bounds retry attempts for transient query errors.
	MaxRetries uint64
	// MaxElapsedTime bounds the total time spent retrying one query.
	MaxElapsedTime time.Duration
	// Logger receives query warnings; defaults to NoOpLogger.
	Logger logging.Logger
}

// Store executes Cypher statements against a Neo4j database. It is safe for
// concurrent use; the underlying driver pools connections. Connectivity is
// verified once, deferred to first use, so construction never blocks on an
// unavailable database.
type Store struct {
	driver     neo4j.DriverWithContext
	opts       Options
	verifyOnce sync.Once
	verifyErr  error
}

// NewStore creates a store connected to the given bolt/neo4j URI using basic
// auth. The connection is not verified here; see Store.verify.
func NewStore(uri, username, password string, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{
		MaxRetries:     3,
		MaxElapsedTime: 30 * time.Second,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Store{driver: driver, opts: opts}, nil
}

// NewStoreFromDriver wraps an existing driver, mainly for tests and custom
// driver configuration.
func NewStoreFromDriver(driver neo4j.DriverWithContext, optFns ...func(o *Options)) *Store {
	opts := Options{
		MaxRetries:     3,
		MaxElapsedTime: 30 * time.Second,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{driver: driver, opts: opts}
}

// Run implements core.GraphRunner for read statements.
func (s *Store) Run(ctx context.Context, query string, params map[string]any) (core.RecordSet, error) {
	return s.execute(ctx, neo4j.AccessModeRead, query, params)
}

// Write implements core.GraphRunner for mutating statements.
func (s *Store) Write(ctx context.Context, query string, params map[string]any) (core.RecordSet, error) {
	return s.execute(ctx, neo4j.AccessModeWrite, query, params)
}

// Close releases the driver's connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// verify checks connectivity exactly once per process. Deferring the check to
// first use keeps startup independent of database availability.
func (s *Store) verify(ctx context.Context) error {
	s.verifyOnce.Do(func() {
		s.verifyErr = s.driver.VerifyConnectivity(ctx)
		if s.verifyErr != nil {
			s.opts.Logger.Warn("graph connectivity verification failed", "error", s.verifyErr)
		}
	})
	return s.verifyErr
}

func (s *Store) execute(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) (core.RecordSet, error) {
	if err := s.verify(ctx); err != nil {
		return nil, fmt.Errorf("graph unavailable: %w", err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(s.opts.MaxElapsedTime), s.opts.MaxRetries), ctx)

	return backoff.RetryWithData(func() (core.RecordSet, error) {
		records, err := s.runOnce(ctx, mode, query, params)
		if err == nil {
			return records, nil
		}
		if neo4j.IsRetryable(err) {
			s.opts.Logger.Warn("transient graph error, retrying", "error", err)
			return nil, err
		}
		return nil, backoff.Permanent(classify(err))
	}, policy)
}

func (s *Store) runOnce(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) (core.RecordSet, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.opts.Database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	var records core.RecordSet
	for result.Next(ctx) {
		records = append(records, core.Record(result.Record().AsMap()))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func newBackOff(maxElapsed time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = maxElapsed
	return b
}

// classify wraps syntax failures with ErrSyntax so errors.Is works upstream.
func classify(err error) error {
	if isSyntaxError(err) {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return err
}

func isSyntaxError(err error) bool {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return strings.HasSuffix(neoErr.Code, "SyntaxError")
	}
	return false
}
