package filetail

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/gelfship/pkg/gelfship"
	"github.com/bft-labs/gelfship/pkg/log"
)

type chanProducer struct {
	records chan gelfship.Record
}

func newChanProducer() *chanProducer {
	return &chanProducer{records: make(chan gelfship.Record, 64)}
}

func (c *chanProducer) Enqueue(r gelfship.Record) error {
	c.records <- r
	return nil
}

func (c *chanProducer) ForceFlush() error { return nil }

func (c *chanProducer) next(t *testing.T) gelfship.Record {
	t.Helper()
	select {
	case r := <-c.records:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("no record enqueued")
		return gelfship.Record{}
	}
}

func (c *chanProducer) none(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case r := <-c.records:
		t.Fatalf("unexpected record %q", r.ShortMessage)
	case <-time.After(d):
	}
}

func appendTo(t *testing.T, path, data string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func startPlugin(t *testing.T, cfg Config) (*Plugin, *chanProducer) {
	t.Helper()
	p, err := New(cfg)
	require.NoError(t, err)

	producer := newChanProducer()
	err = p.Initialize(context.Background(), gelfship.PluginConfig{
		Logger:      log.NewNoopLogger(),
		Producer:    producer,
		DefaultHost: "tail-host",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p, producer
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Path: "/tmp/x", Level: "shouty"})
	assert.Error(t, err)

	p, err := New(Config{Path: "/tmp/x"})
	require.NoError(t, err)
	assert.Equal(t, gelfship.LevelInformational, p.level)
	assert.Equal(t, time.Second, p.pollInterval)
	assert.Equal(t, "filetail", p.Name())
}

func TestPlugin_MissingFile(t *testing.T) {
	p, err := New(Config{Path: filepath.Join(t.TempDir(), "absent.log")})
	require.NoError(t, err)

	err = p.Initialize(context.Background(), gelfship.PluginConfig{Producer: newChanProducer()})
	assert.Error(t, err)
}

func TestPlugin_FollowsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))

	_, producer := startPlugin(t, Config{
		Path:         path,
		Level:        "warning",
		PollInterval: 20 * time.Millisecond,
		Fields:       map[string]any{"service": "api"},
	})

	appendTo(t, path, "first\r\nsecond\n")

	r := producer.next(t)
	assert.Equal(t, "first", r.ShortMessage)
	assert.Equal(t, gelfship.LevelWarning, r.Level)
	assert.Equal(t, "tail-host", r.Host)
	assert.Equal(t, "api", r.Fields["service"])
	assert.Equal(t, path, r.Fields["file"])

	assert.Equal(t, "second", producer.next(t).ShortMessage)
}

func TestPlugin_FromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nb\n"), 0644))

	_, producer := startPlugin(t, Config{Path: path, FromStart: true, PollInterval: 20 * time.Millisecond})

	assert.Equal(t, "a", producer.next(t).ShortMessage)
	assert.Equal(t, "b", producer.next(t).ShortMessage)
}

func TestPlugin_PartialLineWaitsForNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, producer := startPlugin(t, Config{Path: path, PollInterval: 20 * time.Millisecond})

	appendTo(t, path, "hel")
	producer.none(t, 100*time.Millisecond)

	appendTo(t, path, "lo\n")
	assert.Equal(t, "hello", producer.next(t).ShortMessage)
}

func TestPlugin_Truncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("before truncation, quite long\n"), 0644))

	_, producer := startPlugin(t, Config{Path: path, PollInterval: 20 * time.Millisecond})

	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0644))
	assert.Equal(t, "new", producer.next(t).ShortMessage)
}

func TestPlugin_ShutdownStopsFollowing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	p, producer := startPlugin(t, Config{Path: path, PollInterval: 20 * time.Millisecond})
	require.NoError(t, p.Shutdown(context.Background()))

	appendTo(t, path, "ignored\n")
	producer.none(t, 100*time.Millisecond)
}

func TestPlugin_WithShipper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	sender := &collectSender{}
	s, err := gelfship.New(gelfship.Config{Host: "collector", FlushInterval: -1},
		gelfship.WithSender(sender),
		WithFileTail(Config{Path: path, PollInterval: 10 * time.Millisecond}))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	appendTo(t, path, "shipped\n")
	require.Eventually(t, func() bool {
		_ = s.ForceFlush()
		return len(sender.messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())

	assert.Equal(t, []string{"shipped"}, sender.messages())
}

type collectSender struct {
	mu   sync.Mutex
	msgs []string
}

func (c *collectSender) Send(ctx context.Context, records []gelfship.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range records {
		c.msgs = append(c.msgs, r.ShortMessage)
	}
	return nil
}

func (c *collectSender) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.msgs...)
}
