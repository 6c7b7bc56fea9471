package gelfship

import "context"

// Producer is the producer-facing side of a Shipper handed to plugins.
type Producer interface {
	Enqueue(r Record) error
	ForceFlush() error
}

// PluginConfig is passed to plugins on Initialize.
type PluginConfig struct {
	Logger      Logger
	Producer    Producer
	DefaultHost string
}

// Plugin extends a Shipper with extra inputs or side tasks.
// Plugins are initialized in registration order on Start and shut down in
// reverse order on Stop, before the final flush.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// BasePlugin implements Plugin with no-ops.
type BasePlugin struct {
	PluginName string
}

// Name returns PluginName.
func (p BasePlugin) Name() string { return p.PluginName }

// Initialize does nothing.
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }

// Shutdown does nothing.
func (BasePlugin) Shutdown(context.Context) error { return nil }
