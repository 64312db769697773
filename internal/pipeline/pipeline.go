package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/naming"
	"github.com/AnyUserName/storeresize-cli/internal/resize"
	"github.com/AnyUserName/storeresize-cli/internal/source"
)

var (
	// ErrBusy is returned by Start while another batch is in flight.
	ErrBusy = errors.New("a batch is already running")
	// ErrNoInputs is returned by Start when nothing has been dropped.
	ErrNoInputs = errors.New("no input images")
)

// Config holds session-wide settings.
type Config struct {
	Verbose bool
	// Log receives progress and warning lines. Defaults to os.Stderr.
	Log io.Writer
}

// BatchResult is the ordered output of one run. Images that failed are
// absent from Images, so positions shift; they are listed in Failures.
type BatchResult struct {
	ID        string
	CreatedAt time.Time
	Target    Target
	Images    []Processed
	Failures  []Failure
}

// Names returns the folder-export filename of every image, by position.
func (r *BatchResult) Names() []string {
	items := make([]naming.Item, len(r.Images))
	for i, p := range r.Images {
		items[i] = naming.Item{Base: p.Name, Ext: p.Format.Extension()}
	}
	return naming.Batch(items, r.Target.Suffix)
}

// Progress is published after every image of a run.
type Progress struct {
	Done   int // images processed successfully so far
	Failed int
	Total  int
	Name   string // image just finished
	Err    error  // non-nil if that image was dropped
}

func (p Progress) String() string {
	return fmt.Sprintf("%d of %d", p.Done, p.Total)
}

// Session is the foreground state of the resizer: the dropped inputs and the
// latest batch result. At most one batch runs at a time; the run owns a
// snapshot of the inputs and hands its result back in one replacement.
type Session struct {
	cfg      Config
	registry *encoder.Registry

	mu      sync.Mutex
	inputs  []source.Image
	gen     uint64 // bumped on every Drop/Clear
	result  *BatchResult
	running bool

	beforeImage func(index int) // test hook, runs on the worker goroutine
}

// NewSession creates an empty session.
func NewSession(cfg Config) *Session {
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Session{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Drop replaces the inputs with images and clears any previous result.
func (s *Session) Drop(images ...source.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append([]source.Image(nil), images...)
	s.result = nil
	s.gen++
}

// Clear forgets inputs and results.
func (s *Session) Clear() {
	s.Drop()
}

// Inputs returns a copy of the pending inputs.
func (s *Session) Inputs() []source.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]source.Image(nil), s.inputs...)
}

// Result returns the latest finished batch, or nil.
func (s *Session) Result() *BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Busy reports whether a batch is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start validates t and processes the current inputs on a background
// goroutine. An invalid target leaves the session untouched.
func (s *Session) Start(t Target) (*Run, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	filter, _ := resize.Filter(t.Filter) // checked by Validate
	t.Quality = encoder.ClampQuality(t.Quality)

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if len(s.inputs) == 0 {
		s.mu.Unlock()
		return nil, ErrNoInputs
	}
	inputs := append([]source.Image(nil), s.inputs...)
	gen := s.gen
	s.running = true
	s.mu.Unlock()

	r := &Run{
		total:    len(inputs),
		progress: make(chan Progress, len(inputs)),
		done:     make(chan struct{}),
	}
	s.logf("processing %d images → %s", len(inputs), t)
	go s.run(r, gen, inputs, t, filter)
	return r, nil
}

// Process runs a batch and waits for it.
func (s *Session) Process(t Target) (*BatchResult, error) {
	r, err := s.Start(t)
	if err != nil {
		return nil, err
	}
	return r.Wait(), nil
}

func (s *Session) run(r *Run, gen uint64, inputs []source.Image, t Target, filter imaging.ResampleFilter) {
	res := &BatchResult{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Target:    t,
	}

	for i, in := range inputs {
		if s.beforeImage != nil {
			s.beforeImage(i)
		}
		p, err := processImage(in, t, filter, s.registry)
		if err != nil {
			s.warnf("skip %s: %v", in.Name, err)
			res.Failures = append(res.Failures, Failure{Index: i, Name: in.Name, Err: err})
		} else {
			s.logf("done: %s → %s (%d bytes)", in.Name, p.FileName, len(p.Data))
			res.Images = append(res.Images, p)
		}
		r.progress <- Progress{
			Done:   len(res.Images),
			Failed: len(res.Failures),
			Total:  len(inputs),
			Name:   in.Name,
			Err:    err,
		}
	}

	s.mu.Lock()
	// A drop during the run already cleared the outputs; the stale result
	// is only available through Run.Wait.
	if s.gen == gen {
		s.result = res
		s.inputs = nil
	}
	s.running = false
	s.mu.Unlock()

	r.result = res
	close(r.progress)
	close(r.done)
}

func (s *Session) logf(format string, args ...any) {
	if s.cfg.Verbose {
		fmt.Fprintf(s.cfg.Log, "[storeresize] "+format+"\n", args...)
	}
}

func (s *Session) warnf(format string, args ...any) {
	fmt.Fprintf(s.cfg.Log, "[storeresize] warning: "+format+"\n", args...)
}

// Run is a batch in flight.
type Run struct {
	total    int
	progress chan Progress
	done     chan struct{}
	result   *BatchResult
}

// Total is the number of images in the run.
func (r *Run) Total() int { return r.total }

// Progress yields one update per image and is closed when the run finishes.
// The channel is buffered for the whole run, so it need not be drained.
func (r *Run) Progress() <-chan Progress { return r.progress }

// Done is closed once the run has finished and its result is available.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run finishes and returns its result.
func (r *Run) Wait() *BatchResult {
	<-r.done
	return r.result
}
