package log

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому t.Parallel() не используется.

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recHandler запоминает атрибуты последней записи. Производные хендлеры
// (после Logger.With) пишут в attrs корневого.
type recHandler struct {
	root  *recHandler
	base  []slog.Attr
	attrs map[string]any
}

func (h *recHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	sink := h
	if h.root != nil {
		sink = h.root
	}
	sink.attrs = out
	return nil
}

func (h *recHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	root := h
	if h.root != nil {
		root = h.root
	}
	return &recHandler{root: root, base: append(append([]slog.Attr{}, h.base...), attrs...)}
}

func (h *recHandler) WithGroup(string) slog.Handler { return h }

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

// TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil — «мусор» под ключом и nil-логгер.
func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

func TestInto_ShadowParentLogger(t *testing.T) {
	parentL := newSilent()
	childL := newSilent()

	parent := Into(context.Background(), parentL)
	child := Into(parent, childL)

	require.Equal(t, childL, From(child))
	require.Equal(t, parentL, From(parent))
}

func TestWith_AddsAttrsToContextLogger(t *testing.T) {
	h := &recHandler{}
	ctx := Into(context.Background(), slog.New(h))

	ctx = With(ctx, "provider", "social")
	From(ctx).Info("probe", slog.String("k", "v"))

	require.Equal(t, "social", h.attrs["provider"])
	require.Equal(t, "v", h.attrs["k"])
}

func TestWith_NoArgs_ReturnsSameContext(t *testing.T) {
	ctx := Into(context.Background(), newSilent())
	require.Equal(t, ctx, With(ctx))
}

func TestWithKey_MasksKey(t *testing.T) {
	h := &recHandler{}
	ctx := Into(context.Background(), slog.New(h))

	ctx = WithKey(ctx, "key", "AIzaSyFakeKeyForTests000")
	From(ctx).Info("assist_request")

	require.Equal(t, "AIzaSyFa...", h.attrs["key"])
}

func TestWithKey_EmptyKey_ReturnsSameContext(t *testing.T) {
	ctx := Into(context.Background(), newSilent())
	require.Equal(t, ctx, WithKey(ctx, "key", "  "))
}

// TestInto_PreservesCancellationAndDeadline — Into не меняет Done/Err/Deadline.
func TestInto_PreservesCancellationAndDeadline(t *testing.T) {
	parentDL, cancelDL := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancelDL()

	child := Into(parentDL, newSilent())

	cdl, ok := child.Deadline()
	require.True(t, ok)
	pdl, _ := parentDL.Deadline()
	require.WithinDuration(t, pdl, cdl, time.Millisecond)

	parentCancel, cancel := context.WithCancel(context.Background())
	child2 := Into(parentCancel, newSilent())
	cancel()
	select {
	case <-child2.Done():
		require.ErrorIs(t, child2.Err(), context.Canceled)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("ожидали отмену у дочернего контекста")
	}
}
