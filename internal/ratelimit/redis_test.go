package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты Redis-хранилища:
// — поднимают реальный Redis через testcontainers-go;
// — проверяют фиксированное окно, независимость ключей и fail-open.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/ratelimit -v -race -count=1

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	const image = "docker.io/library/redis:7-alpine"

	req := tc.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	t.Logf("starting redis container with image=%q", image)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedis_FixedWindow(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	rl, err := NewRedis(ctx, url, "test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rl.Close() })

	var got []bool
	for i := 0; i < 4; i++ {
		got = append(got, rl.Allow(ctx, "1.2.3.4", 3, time.Second))
	}
	require.Equal(t, []bool{true, true, true, false}, got)

	time.Sleep(1100 * time.Millisecond)
	require.True(t, rl.Allow(ctx, "1.2.3.4", 3, time.Second))
}

func TestRedis_KeysAreIndependent(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	rl, err := NewRedis(ctx, url, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rl.Close() })

	a := Key("api", uuid.NewString())
	b := Key("api", uuid.NewString())

	require.True(t, rl.Allow(ctx, a, 1, time.Minute))
	require.False(t, rl.Allow(ctx, a, 1, time.Minute))
	require.True(t, rl.Allow(ctx, b, 1, time.Minute))
}

// TestRedis_FailOpen — недоступный Redis не блокирует запросы.
func TestRedis_FailOpen(t *testing.T) {
	url := startRedis(t)

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	rl := NewRedisFromClient(rdb, "")
	require.NoError(t, rdb.Close())

	require.True(t, rl.Allow(context.Background(), "k", 1, time.Minute))
	require.True(t, rl.Allow(context.Background(), "k", 1, time.Minute))
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "://nope", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse url")
}
