// Package filetail provides a gelfship input that follows a file and ships
// every appended line as a record.
package filetail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/gelfship/pkg/gelfship"
	"github.com/bft-labs/gelfship/pkg/log"
)

// Config holds configuration options for the file tail plugin.
type Config struct {
	// Path is the file to follow. Required.
	Path string

	// Level is the level name given to every line.
	// Default: "info"
	Level string

	// FromStart ships the existing content before following.
	// By default only lines appended after Initialize are shipped.
	FromStart bool

	// PollInterval is how often the file is checked when no change
	// notification arrives.
	// Default: 1 second
	PollInterval time.Duration

	// Fields are attached to every record.
	Fields map[string]any
}

// DefaultConfig returns a Config with sensible defaults and no path.
func DefaultConfig() Config {
	return Config{
		Level:        "info",
		PollInterval: time.Second,
	}
}

// Plugin follows a file and enqueues its lines.
type Plugin struct {
	path         string
	level        gelfship.Level
	fromStart    bool
	pollInterval time.Duration
	fields       map[string]any

	mu       sync.Mutex
	file     *os.File
	reader   *bufio.Reader
	offset   int64
	partial  []byte
	producer gelfship.Producer
	host     string
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a new file tail plugin with the given configuration.
func New(cfg Config) (*Plugin, error) {
	if cfg.Path == "" {
		return nil, errors.New("filetail: path is required")
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := gelfship.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("filetail: %w", err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}

	return &Plugin{
		path:         filepath.Clean(cfg.Path),
		level:        level,
		fromStart:    cfg.FromStart,
		pollInterval: cfg.PollInterval,
		fields:       cfg.Fields,
	}, nil
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "filetail"
}

// Initialize opens the file and starts following it.
func (p *Plugin) Initialize(ctx context.Context, cfg gelfship.PluginConfig) error {
	p.mu.Lock()
	p.producer = cfg.Producer
	p.host = cfg.DefaultHost
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.mu.Unlock()

	if err := p.open(!p.fromStart); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.closeFile()
		return fmt.Errorf("filetail: create watcher: %w", err)
	}
	// watch the directory so rotation is seen
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		p.closeFile()
		return fmt.Errorf("filetail: watch %s: %w", filepath.Dir(p.path), err)
	}

	tailCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("following file", log.String("path", p.path))

	p.wg.Add(1)
	go p.tailLoop(tailCtx, watcher)

	return nil
}

// Shutdown stops following the file.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.closeFile()
	return nil
}

func (p *Plugin) tailLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	// ship what is already there when starting from the beginning
	p.readLines()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			switch {
			case event.Op&fsnotify.Write != 0:
				p.readLines()
			case event.Op&fsnotify.Create != 0:
				p.reopen()
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// drain what was written before the rotation
				p.readLines()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("file watcher error", log.String("path", p.path), log.Err(err))

		case <-ticker.C:
			p.readLines()
		}
	}
}

// open opens the file, optionally positioned at its end.
func (p *Plugin) open(atEnd bool) error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("filetail: open %s: %w", p.path, err)
	}

	var offset int64
	if atEnd {
		offset, err = f.Seek(0, io.SeekEnd)
		if err != nil {
			f.Close()
			return fmt.Errorf("filetail: seek %s: %w", p.path, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file != nil {
		p.file.Close()
	}
	p.file = f
	p.reader = bufio.NewReader(f)
	p.offset = offset
	p.partial = p.partial[:0]
	return nil
}

func (p *Plugin) reopen() {
	p.readLines()
	if err := p.open(false); err != nil {
		p.logger.Warn("reopen failed", log.String("path", p.path), log.Err(err))
		return
	}
	p.logger.Info("file recreated, following from start", log.String("path", p.path))
	p.readLines()
}

func (p *Plugin) closeFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file != nil {
		p.file.Close()
		p.file = nil
		p.reader = nil
	}
}

// readLines ships every complete line written since the last read.
// An incomplete trailing line is kept until its newline arrives.
func (p *Plugin) readLines() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return
	}

	if info, err := p.file.Stat(); err == nil && info.Size() < p.offset {
		// truncated in place
		if _, err := p.file.Seek(0, io.SeekStart); err == nil {
			p.reader.Reset(p.file)
			p.offset = 0
			p.partial = p.partial[:0]
		}
	}

	for {
		chunk, err := p.reader.ReadBytes('\n')
		p.offset += int64(len(chunk))
		if err != nil {
			p.partial = append(p.partial, chunk...)
			if !errors.Is(err, io.EOF) {
				p.logger.Warn("read failed", log.String("path", p.path), log.Err(err))
			}
			return
		}

		line := append(p.partial, chunk[:len(chunk)-1]...)
		p.partial = p.partial[:0]
		line = trimCR(line)
		if len(line) == 0 {
			continue
		}

		if err := p.enqueue(string(line)); err != nil {
			p.logger.Debug("record dropped", log.String("path", p.path), log.Err(err))
		}
	}
}

func (p *Plugin) enqueue(line string) error {
	fields := make(map[string]any, len(p.fields)+1)
	for k, v := range p.fields {
		fields[k] = v
	}
	fields["file"] = p.path

	r := gelfship.NewRecord(p.level, line, fields)
	r.Host = p.host
	return p.producer.Enqueue(r)
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}

// Ensure Plugin implements gelfship.Plugin.
var _ gelfship.Plugin = (*Plugin)(nil)
