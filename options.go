package vwindow

import "log/slog"

// Option configures an Engine.
type Option func(*options)

// options holds engine configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for engine options.
//
// Example:
//
//	var OptMyHook = vwindow.NewOptKey[func()]("myHook", nil)
//	engine := vwindow.New(items, extent, ref, vwindow.WithOpt(OptMyHook, hook))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt reports whether an option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

// DefaultOverscan is the number of extra items kept live on each side.
const DefaultOverscan = 5

var (
	// OptOverscan is the number of items kept live beyond each edge of the
	// strictly visible range. Negative values are treated as 0.
	OptOverscan = NewOptKey("overscan", DefaultOverscan)

	// OptAxis selects the main axis.
	OptAxis = NewOptKey("axis", AxisVertical)

	// OptLogger overrides the package default logger.
	OptLogger = NewOptKey[*slog.Logger]("logger", nil)

	// OptAnchorBias keeps the one-item leading bias of variable-extent
	// offset lookup (see Metrics.IndexOf). Disable it to anchor on the item
	// that actually contains the scroll offset.
	OptAnchorBias = NewOptKey("anchorBias", true)
)

// WithOverscan sets the overscan item count.
func WithOverscan(n int) Option { return WithOpt(OptOverscan, n) }

// WithAxis sets the main axis.
func WithAxis(a Axis) Option { return WithOpt(OptAxis, a) }

// WithLogger sets the logger used for pass tracing.
func WithLogger(l *slog.Logger) Option { return WithOpt(OptLogger, l) }

// WithAnchorBias enables or disables the variable-extent leading bias.
func WithAnchorBias(enabled bool) Option { return WithOpt(OptAnchorBias, enabled) }
