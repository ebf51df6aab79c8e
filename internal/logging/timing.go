package logging

import (
	"time"
)

// TimingContext holds timing information for manual Start/End tracking
type TimingContext struct {
	name      string
	startTime time.Time
	logger    *Logger
}

// Time executes fn and logs its duration at debug level.
//
//	logging.Time("rank catalog", func() {
//	    items = commands.Rank(catalog, query)
//	})
func Time(name string, fn func()) {
	Get().Time(name, fn)
}

// TimeWithResult is Time for functions that return a value.
func TimeWithResult[T any](name string, fn func() T) T {
	l := Get()
	if !l.IsEnabled() {
		return fn()
	}

	start := time.Now()
	result := fn()
	l.logDuration(name, time.Since(start))
	return result
}

// Start begins a timing measurement for manual control.
// Must be paired with End or EndWithCount to log the duration.
func Start(name string) TimingContext {
	return Get().Start(name)
}

// End completes a timing measurement started with Start and logs the duration.
func End(ctx TimingContext) {
	if ctx.logger == nil || !ctx.logger.IsEnabled() {
		return
	}
	ctx.logger.logDuration(ctx.name, time.Since(ctx.startTime))
}

// EndWithCount is End with an item count, for passes over many items.
//
//	timer := logging.Start("build catalog")
//	items := registry.Build(snap, env)
//	logging.EndWithCount(timer, len(items))
func EndWithCount(ctx TimingContext, count int) {
	if ctx.logger == nil || !ctx.logger.IsEnabled() {
		return
	}
	ctx.logger.logDuration(ctx.name, time.Since(ctx.startTime), "count", count)
}

// Time is the package-level Time bound to l.
func (l *Logger) Time(name string, fn func()) {
	if !l.IsEnabled() {
		fn()
		return
	}

	start := time.Now()
	fn()
	l.logDuration(name, time.Since(start))
}

// Start is the package-level Start bound to l.
func (l *Logger) Start(name string) TimingContext {
	return TimingContext{name: name, startTime: time.Now(), logger: l}
}

func (l *Logger) logDuration(name string, d time.Duration, extra ...any) {
	args := append([]any{"duration", d.String(), "ms", d.Milliseconds()}, extra...)
	l.Debug(name, args...)
}
