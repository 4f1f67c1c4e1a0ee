package cli

import (
	"testing"

	apperrors "github.com/lennartvogt/treedom/pkg/errors"
)

func TestServeCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name    string
		backend string
		wantErr bool
	}{
		{name: "file backend", backend: "file"},
		{name: "redis backend", backend: "redis"},
		{name: "no backend", backend: "none"},
		{name: "unknown backend", backend: "memcached", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := serveCache(serveOptions{backend: tt.backend})
			if tt.wantErr {
				if err == nil {
					t.Fatal("serveCache() should reject the backend")
				}
				if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
					t.Errorf("serveCache() error code = %v, want UNSUPPORTED", apperrors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("serveCache() error: %v", err)
			}
			if c == nil {
				t.Fatal("serveCache() returned nil cache")
			}
			if err := c.Close(); err != nil {
				t.Errorf("close cache: %v", err)
			}
		})
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := quietCLI().serveCommand()

	for _, flag := range []string{"addr", "cache", "redis-addr", "max-width"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("serve command should define --%s", flag)
		}
	}

	if cmd.Flags().Lookup("addr").DefValue != defaultAddr {
		t.Errorf("addr default = %q, want %q", cmd.Flags().Lookup("addr").DefValue, defaultAddr)
	}
}
