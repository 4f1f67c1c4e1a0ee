package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lennartvogt/treedom/internal/server"
	"github.com/lennartvogt/treedom/pkg/cache"
	apperrors "github.com/lennartvogt/treedom/pkg/errors"
	"github.com/lennartvogt/treedom/pkg/pipeline"
)

const (
	// defaultAddr is the default listen address of the solve API.
	defaultAddr = ":8080"

	// defaultRedisAddr is used when neither the flag nor the environment
	// names a Redis server.
	defaultRedisAddr = "localhost:6379"

	// redisAddrEnv names the environment variable consulted for the Redis
	// address when --redis-addr is not given.
	redisAddrEnv = "TREEDOM_REDIS_ADDR"

	// redisPasswordEnv names the environment variable holding the Redis
	// password. There is no matching flag.
	redisPasswordEnv = "TREEDOM_REDIS_PASSWORD"
)

// serveOptions collects the serve command's flag values.
type serveOptions struct {
	addr      string
	backend   string
	redisAddr string
	maxWidth  int
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var o serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solve API",
		Long: `Run the HTTP solve API.

The server exposes POST /api/solve for solving decompositions, GET /healthz
for liveness checks, and GET /metrics for Prometheus metrics.

The answer cache backend is selected with --cache: "file" uses the local
cache directory, "redis" connects to a Redis server, and "none" disables
caching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), o)
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&o.backend, "cache", "file", "answer cache backend: file, redis, none")
	cmd.Flags().StringVar(&o.redisAddr, "redis-addr", "", "redis address (default $TREEDOM_REDIS_ADDR or "+defaultRedisAddr+")")
	cmd.Flags().IntVar(&o.maxWidth, "max-width", pipeline.DefaultMaxWidth, "reject decompositions wider than this (negative disables the guard)")

	return cmd
}

// runServe builds the cache backend and runs the server until the context
// is cancelled.
func (c *CLI) runServe(ctx context.Context, o serveOptions) error {
	answerCache, err := serveCache(o)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(answerCache, nil, c.Logger)
	defer runner.Close()

	server.NewMetrics(nil).Register()

	printInfo("Listening on %s", StyleLink.Render(o.addr))

	srv := server.New(runner, c.Logger, o.maxWidth)
	return srv.ListenAndServe(ctx, o.addr)
}

// serveCache selects the answer cache backend for the server.
func serveCache(o serveOptions) (cache.Cache, error) {
	switch o.backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		addr := o.redisAddr
		if addr == "" {
			addr = os.Getenv(redisAddrEnv)
		}
		if addr == "" {
			addr = defaultRedisAddr
		}
		return cache.NewRedisCache(addr, os.Getenv(redisPasswordEnv), 0), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	default:
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unknown cache backend %q (expected file, redis or none)", o.backend)
	}
}
