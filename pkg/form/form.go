// Package form implements the greeting form component: a name input whose
// submissions are sent to a greeting.Greeter and whose last applied result
// is the component's display state.
//
// Submissions never block. Each one starts its own call; the result is
// applied when the call resolves and subscribers are told about the new
// display state. Overlapping submissions resolve according to the form's
// Ordering.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"greetbox/pkg/greeting"
	"greetbox/pkg/logger"
)

// FieldName is the form field holding the name to greet.
const FieldName = "name"

// ErrClosed is returned when submitting to an unmounted form.
var ErrClosed = errors.New("form is closed")

// State is the display state machine position.
type State int

const (
	// StateIdle means no call has resolved yet; the greeting is empty.
	StateIdle State = iota
	// StateDisplayed means the greeting holds a resolved value.
	StateDisplayed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDisplayed:
		return "displayed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Ordering decides which of several overlapping results ends up displayed.
type Ordering int

const (
	// OrderResolved applies every result as it arrives; the last response to
	// resolve wins even if it belongs to an older submission.
	OrderResolved Ordering = iota
	// OrderSubmitted tags calls with their generation and drops results older
	// than the one displayed; the latest submission wins.
	OrderSubmitted
)

// String returns the config spelling of the ordering.
func (o Ordering) String() string {
	if o == OrderSubmitted {
		return "submitted"
	}
	return "resolved"
}

// ParseOrdering parses "resolved" or "submitted". Empty means OrderResolved.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resolved":
		return OrderResolved, nil
	case "submitted":
		return OrderSubmitted, nil
	default:
		return OrderResolved, fmt.Errorf("unknown form ordering %q", s)
	}
}

// DisplayState is what the component shows.
type DisplayState struct {
	GreetingText string
	State        State
	// Generation is the submission whose result is displayed; 0 while idle.
	Generation uint64
}

// Stats counts what happened to submissions of one form.
type Stats struct {
	Submitted uint64
	Resolved  uint64
	Failed    uint64
	Discarded uint64
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Submitted: s.Submitted + o.Submitted,
		Resolved:  s.Resolved + o.Resolved,
		Failed:    s.Failed + o.Failed,
		Discarded: s.Discarded + o.Discarded,
	}
}

// Listener receives the display state after every applied result.
type Listener func(DisplayState)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Form is one mounted greeting form.
type Form struct {
	greeter  greeting.Greeter
	log      *logger.Logger
	ordering Ordering
	view     View

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// emitMu keeps state changes and their notifications in the same order.
	emitMu sync.Mutex

	mu             sync.Mutex
	display        DisplayState
	lastGeneration uint64
	stats          Stats
	listeners      []listenerEntry
	nextListenerID uint64
	closed         bool
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for failures and discarded results.
func WithLogger(log *logger.Logger) Option {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

// WithOrdering sets how overlapping submissions resolve.
func WithOrdering(o Ordering) Option {
	return func(f *Form) {
		f.ordering = o
	}
}

// WithContext sets the parent context of every greet call.
func WithContext(ctx context.Context) Option {
	return func(f *Form) {
		if ctx != nil {
			f.ctx = ctx
		}
	}
}

// WithView overrides the static parts of the rendered page.
func WithView(v View) Option {
	return func(f *Form) {
		f.view = v.withDefaults()
	}
}

// New mounts a form that greets through g.
func New(g greeting.Greeter, opts ...Option) *Form {
	f := &Form{
		greeter: g,
		log:     logger.NewNop(),
		ctx:     context.Background(),
		view:    DefaultView(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.ctx, f.cancel = context.WithCancel(f.ctx)
	return f
}

// OnSubmit handles a form submission: the default action is always
// prevented, the name field is read without validation, and a greet call is
// started. It returns without waiting for the call.
func (f *Form) OnSubmit(ev Event) {
	ev.PreventDefault()
	name := ev.FormValue(FieldName)
	if _, err := f.Submit(name); err != nil {
		f.log.Debug("Submission ignored", zap.Error(err))
	}
}

// Submit starts a greet call for name and returns its generation.
func (f *Form) Submit(name string) (uint64, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return 0, ErrClosed
	}
	f.lastGeneration++
	gen := f.lastGeneration
	f.stats.Submitted++
	f.wg.Add(1)
	f.mu.Unlock()

	go f.call(gen, name)
	return gen, nil
}

func (f *Form) call(gen uint64, name string) {
	defer f.wg.Done()

	start := time.Now()
	text, err := f.invoke(name)
	if err != nil {
		f.fail(gen, err, time.Since(start))
		return
	}
	f.resolve(gen, text)
}

// invoke calls the greeter, turning a panic into an error so nothing escapes
// the submission.
func (f *Form) invoke(name string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("greeter panicked: %v", r)
		}
	}()
	if f.greeter == nil {
		return "", errors.New("no greeter configured")
	}
	return f.greeter.Greet(f.ctx, name)
}

func (f *Form) resolve(gen uint64, text string) {
	f.emitMu.Lock()
	defer f.emitMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.stats.Discarded++
		f.mu.Unlock()
		return
	}
	if f.ordering == OrderSubmitted && gen <= f.display.Generation {
		f.stats.Discarded++
		shown := f.display.Generation
		f.mu.Unlock()
		f.log.Debug("Stale greeting discarded",
			zap.Uint64("generation", gen),
			zap.Uint64("displayed_generation", shown),
		)
		return
	}

	f.display = DisplayState{
		GreetingText: text,
		State:        StateDisplayed,
		Generation:   gen,
	}
	f.stats.Resolved++
	snapshot := f.display
	listeners := make([]listenerEntry, len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	for _, l := range listeners {
		f.notify(l, snapshot)
	}
}

func (f *Form) notify(l listenerEntry, ds DisplayState) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("Display listener panicked",
				zap.Uint64("listener", l.id),
				zap.Any("panic", r),
			)
		}
	}()
	l.fn(ds)
}

func (f *Form) fail(gen uint64, err error, elapsed time.Duration) {
	f.mu.Lock()
	f.stats.Failed++
	closed := f.closed
	f.mu.Unlock()

	if closed && errors.Is(err, context.Canceled) {
		f.log.Debug("Greet call cancelled by unmount", zap.Uint64("generation", gen))
		return
	}
	f.log.Warn("Greet call failed, keeping previous greeting",
		zap.Uint64("generation", gen),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
}

// Subscribe registers fn for display changes. The returned func removes it.
func (f *Form) Subscribe(fn Listener) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || fn == nil {
		return func() {}
	}
	f.nextListenerID++
	id := f.nextListenerID
	f.listeners = append(f.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, l := range f.listeners {
			if l.id == id {
				f.listeners = append(f.listeners[:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

// State returns the current display state.
func (f *Form) State() DisplayState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.display
}

// Stats returns submission counters.
func (f *Form) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// Ordering returns the form's ordering policy.
func (f *Form) Ordering() Ordering {
	return f.ordering
}

// Wait blocks until every started call has settled.
func (f *Form) Wait() {
	f.wg.Wait()
}

// Close unmounts the form: listeners are dropped, in-flight calls see a
// cancelled context, and results arriving later are discarded. Close is
// idempotent.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.listeners = nil
	f.mu.Unlock()

	f.cancel()
}
