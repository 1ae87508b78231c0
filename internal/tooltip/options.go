package tooltip

import "time"

// Position selects where the host places the tooltip. The controller only
// carries it; placement is the host's concern.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionMouse  Position = "mouse"
)

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case PositionTop, PositionBottom, PositionLeft, PositionRight, PositionMouse:
		return true
	}
	return false
}

const (
	DefaultDelay         = 300 * time.Millisecond
	DefaultEnterDuration = 150 * time.Millisecond
	DefaultExitDuration  = 150 * time.Millisecond
)

// Options configures one tooltip instance.
type Options struct {
	// Delay applies to both showing and hiding.
	Delay           time.Duration
	HideOnClick     bool
	HideOnMouseDown bool
	Position        Position
	// MousePosition is the side of the pointer used when Position is mouse.
	MousePosition Position
	Truncate      bool
	EnterDuration time.Duration
	ExitDuration  time.Duration

	// OnShow runs when the tooltip becomes visible; OnHide when it stops
	// being visible. Each runs at most once per cycle.
	OnShow func()
	OnHide func()
}

// DefaultOptions returns the defaults used when no options are given.
func DefaultOptions() Options {
	return Options{
		Delay:         DefaultDelay,
		Position:      PositionBottom,
		MousePosition: PositionBottom,
		EnterDuration: DefaultEnterDuration,
		ExitDuration:  DefaultExitDuration,
	}
}

// Option mutates Options.
type Option func(*Options)

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()
	return o
}

func (o *Options) normalize() {
	if o.Delay < 0 {
		o.Delay = 0
	}
	if o.EnterDuration < 0 {
		o.EnterDuration = 0
	}
	if o.ExitDuration < 0 {
		o.ExitDuration = 0
	}
	if !o.Position.Valid() {
		o.Position = PositionBottom
	}
	if !o.MousePosition.Valid() || o.MousePosition == PositionMouse {
		o.MousePosition = PositionBottom
	}
}

// WithOptions replaces all options, keeping callbacks already set when the
// replacement leaves them nil.
func WithOptions(next Options) Option {
	return func(o *Options) {
		onShow, onHide := o.OnShow, o.OnHide
		*o = next
		if o.OnShow == nil {
			o.OnShow = onShow
		}
		if o.OnHide == nil {
			o.OnHide = onHide
		}
	}
}

func WithDelay(d time.Duration) Option { return func(o *Options) { o.Delay = d } }

func WithHideOnClick(v bool) Option { return func(o *Options) { o.HideOnClick = v } }

func WithHideOnMouseDown(v bool) Option { return func(o *Options) { o.HideOnMouseDown = v } }

func WithPosition(p Position) Option { return func(o *Options) { o.Position = p } }

func WithMousePosition(p Position) Option { return func(o *Options) { o.MousePosition = p } }

func WithTruncate(v bool) Option { return func(o *Options) { o.Truncate = v } }

// WithAnimation sets the entrance and exit durations.
func WithAnimation(enter, exit time.Duration) Option {
	return func(o *Options) {
		o.EnterDuration = enter
		o.ExitDuration = exit
	}
}

func WithOnShow(fn func()) Option { return func(o *Options) { o.OnShow = fn } }

func WithOnHide(fn func()) Option { return func(o *Options) { o.OnHide = fn } }
