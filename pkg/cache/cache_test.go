package cache

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "render"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "png", []byte("\x89PNG"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "png")
	if err != nil || !hit || string(data) != "\x89PNG" {
		t.Errorf("Get(png) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "png"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "png"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d, want 3", n)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("ReadDir after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
}

func TestFileCacheStats(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "render:png:2:a", []byte("1234"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "render:pdf:2:a", []byte("%PDF"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	st, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Entries != 2 || st.Expired != 1 || st.Bytes <= 8 {
		t.Errorf("Stats() = %+v, want 2 entries, 1 expired, > 8 bytes", st)
	}

	if err := os.RemoveAll(c.Dir()); err != nil {
		t.Fatal(err)
	}
	if st, err := c.Stats(); err != nil || st.Entries != 0 {
		t.Errorf("Stats() on removed dir = %+v, %v", st, err)
	}
}

func TestNullCacheClear(t *testing.T) {
	if n, err := NewNullCache().Clear(context.Background()); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v", n, err)
	}
}

func TestRenderKey(t *testing.T) {
	svg := []byte(`<svg/>`)

	k := RenderKey("PNG", 2, svg)
	if !strings.HasPrefix(k, "render:png:2:") {
		t.Errorf("RenderKey = %q, want render:png:2: prefix", k)
	}
	if k != RenderKey("png", 2, svg) {
		t.Error("RenderKey should be case-insensitive in format")
	}

	others := []string{
		RenderKey("pdf", 2, svg),
		RenderKey("png", 1.5, svg),
		RenderKey("png", 2, []byte(`<svg></svg>`)),
	}
	for _, o := range others {
		if o == k {
			t.Errorf("RenderKey collision: %q", o)
		}
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRedisKey(t *testing.T) {
	if got := redisKey("render:png:1:ab"); got != "baseline:render:png:1:ab" {
		t.Errorf("redisKey = %q", got)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", ConnectAttempts: 1})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Errorf("error should name the address: %v", err)
	}
}

// reply mimics an error reply from the Redis server.
type reply string

func (r reply) Error() string { return string(r) }
func (reply) RedisError() {}

func TestRedisTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"dropped connection", io.EOF, true},
		{"loading dataset", reply("LOADING Redis is loading the dataset in memory"), true},
		{"busy script", reply("BUSY Redis is busy running a script"), true},
		{"wrong password", reply("WRONGPASS invalid username-password pair"), false},
		{"no auth", reply("NOAUTH Authentication required."), false},
		{"deadline", context.DeadlineExceeded, false},
		{"cancelled", context.Canceled, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redisTransient(tt.err); got != tt.want {
				t.Errorf("redisTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetry(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })

	loading := reply("LOADING")
	denied := reply("WRONGPASS")

	tests := []struct {
		name      string
		errs      []error // returned by successive calls, then nil
		wantErr   error
		wantCalls int
	}{
		{"first try", nil, nil, 1},
		{"recovers after loading", []error{loading, loading}, nil, 3},
		{"auth fails at once", []error{denied, denied}, denied, 1},
		{"exhausted", []error{loading, loading, loading, loading}, loading, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(context.Background(), 3, redisTransient, func() error {
				calls++
				if calls <= len(tt.errs) {
					return tt.errs[calls-1]
				}
				return nil
			})
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 3, redisTransient, func() error {
		calls++
		return io.EOF
	})
	if err != context.Canceled || calls != 1 {
		t.Errorf("retry() = %v after %d calls, want context.Canceled after 1", err, calls)
	}
}
