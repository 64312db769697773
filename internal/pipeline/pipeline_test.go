package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/AnyUserName/storeresize-cli/internal/encoder"
	"github.com/AnyUserName/storeresize-cli/internal/source"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255,
			})
		}
	}
	return img
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var log bytes.Buffer
	return NewSession(Config{Log: &log}), &log
}

func TestProcess_EndToEnd(t *testing.T) {
	s, _ := newTestSession(t)
	s.Drop(
		source.FromImage("a.png", gradient(100, 100)),
		source.FromImage("b.png", gradient(200, 50)),
	)

	res, err := s.Process(NewTarget(50, 50))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(res.Images) != 2 {
		t.Fatalf("images: got %d, want 2", len(res.Images))
	}
	for i, want := range []string{"a_resized.png", "b_resized.png"} {
		p := res.Images[i]
		if p.FileName != want {
			t.Errorf("images[%d].FileName = %q, want %q", i, p.FileName, want)
		}
		if p.Width() != 50 || p.Height() != 50 {
			t.Errorf("images[%d]: %dx%d", i, p.Width(), p.Height())
		}
		dec, err := png.Decode(bytes.NewReader(p.Data))
		if err != nil {
			t.Fatalf("images[%d] decode: %v", i, err)
		}
		if dec.Bounds().Dx() != 50 || dec.Bounds().Dy() != 50 {
			t.Errorf("images[%d] encoded bounds: %v", i, dec.Bounds())
		}
		if p.Hash == "" {
			t.Errorf("images[%d]: missing hash", i)
		}
	}

	if got := s.Inputs(); len(got) != 0 {
		t.Errorf("inputs not cleared: %d left", len(got))
	}
	if s.Result() != res {
		t.Error("session result is not the run result")
	}
	if res.ID == "" {
		t.Error("batch id empty")
	}
}

func TestProcess_DuplicateNames(t *testing.T) {
	s, _ := newTestSession(t)
	const n = 4
	var imgs []source.Image
	for i := 0; i < n; i++ {
		imgs = append(imgs, source.FromImage("photo.jpg", gradient(10+i, 10)))
	}
	s.Drop(imgs...)

	res, err := s.Process(NewTarget(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	names := res.Names()
	want := []string{"photo_resized_0.png", "photo_resized_1.png", "photo_resized_2.png", "photo_resized_3.png"}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestStart_InvalidTargetIsNoOp(t *testing.T) {
	s, _ := newTestSession(t)
	s.Drop(source.FromImage("a.png", gradient(20, 20)))
	prior, err := s.Process(NewTarget(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	s.Drop(source.FromImage("b.png", gradient(20, 20)))
	// Drop clears the previous result; put one back to check it survives.
	s.mu.Lock()
	s.result = prior
	s.mu.Unlock()

	for _, size := range [][2]string{{"0", "10"}, {"-5", "10"}, {"abc", "10"}} {
		w, h, perr := ParseSize(size[0], size[1])
		if perr == nil {
			t.Fatalf("ParseSize(%v) accepted", size)
		}
		_, err := s.Start(Target{Width: w, Height: h, Format: encoder.PNG})
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("%v: got %v, want ErrInvalidTarget", size, err)
		}
	}

	if s.Result() != prior {
		t.Error("invalid target changed the result")
	}
	if len(s.Inputs()) != 1 {
		t.Error("invalid target changed the inputs")
	}
	if s.Busy() {
		t.Error("session busy after rejected start")
	}
}

func TestStart_NoInputs(t *testing.T) {
	s, _ := newTestSession(t)
	if _, err := s.Start(NewTarget(10, 10)); !errors.Is(err, ErrNoInputs) {
		t.Errorf("got %v, want ErrNoInputs", err)
	}
}

func TestProcess_RerunReplacesResults(t *testing.T) {
	s, _ := newTestSession(t)
	s.Drop(
		source.FromImage("a", gradient(10, 10)),
		source.FromImage("b", gradient(10, 10)),
		source.FromImage("c", gradient(10, 10)),
	)
	first, err := s.Process(NewTarget(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Images) != 3 {
		t.Fatalf("first run: %d images", len(first.Images))
	}

	s.Drop(source.FromImage("z", gradient(10, 10)))
	if s.Result() != nil {
		t.Error("drop did not clear previous result")
	}
	second, err := s.Process(NewTarget(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Images) != 1 || second.Images[0].Name != "z" {
		t.Errorf("second run accumulated: %+v", second.Images)
	}
	if len(first.Images) != 3 {
		t.Error("first result mutated by second run")
	}
}

func TestProcess_FailuresDroppedInOrder(t *testing.T) {
	s, log := newTestSession(t)
	s.Drop(
		source.FromImage("ok1", gradient(10, 10)),
		source.FromImage("empty", image.NewNRGBA(image.Rect(0, 0, 0, 0))),
		source.FromImage("ok2", gradient(10, 10)),
	)

	r, err := s.Start(NewTarget(4, 4))
	if err != nil {
		t.Fatal(err)
	}

	var updates []Progress
	for p := range r.Progress() {
		updates = append(updates, p)
	}
	res := r.Wait()

	if len(res.Images) != 2 || res.Images[0].Name != "ok1" || res.Images[1].Name != "ok2" {
		t.Fatalf("images: %+v", res.Images)
	}
	if len(res.Failures) != 1 || res.Failures[0].Index != 1 || res.Failures[0].Name != "empty" {
		t.Errorf("failures: %+v", res.Failures)
	}
	if names := res.Names(); names[1] != "ok2_resized_1.png" {
		t.Errorf("positions should shift past the dropped image: %v", names)
	}

	if len(updates) != 3 {
		t.Fatalf("progress updates: got %d, want 3", len(updates))
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Done < updates[i-1].Done {
			t.Errorf("progress went backwards: %v -> %v", updates[i-1], updates[i])
		}
	}
	last := updates[len(updates)-1]
	if last.Done != 2 || last.Total != 3 || last.Failed != 1 {
		t.Errorf("last progress: %+v", last)
	}
	if last.String() != "2 of 3" {
		t.Errorf("progress string: %q", last.String())
	}
	if updates[1].Err == nil {
		t.Error("failed image progress has no error")
	}
	if !strings.Contains(log.String(), "skip empty") {
		t.Errorf("failure not logged: %q", log.String())
	}
}

func TestProcess_ProgressReachesTotal(t *testing.T) {
	s, _ := newTestSession(t)
	s.Drop(source.FromImage("a", gradient(8, 8)), source.FromImage("b", gradient(8, 8)))
	r, err := s.Start(NewTarget(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	r.Wait()

	var last Progress
	for p := range r.Progress() {
		last = p
	}
	if last.Done != last.Total || last.Total != 2 {
		t.Errorf("last progress: %+v", last)
	}
}

func TestStart_AtMostOneRun(t *testing.T) {
	s, _ := newTestSession(t)
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	s.beforeImage = func(i int) {
		if i == 0 {
			entered <- struct{}{}
			<-release
		}
	}
	s.Drop(source.FromImage("a", gradient(8, 8)))

	r, err := s.Start(NewTarget(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	<-entered

	if !s.Busy() {
		t.Error("session not busy during run")
	}
	if _, err := s.Start(NewTarget(4, 4)); !errors.Is(err, ErrBusy) {
		t.Errorf("second start: got %v, want ErrBusy", err)
	}

	// The foreground stays responsive while the worker is parked.
	if s.Result() != nil {
		t.Error("result published before the run finished")
	}

	close(release)
	select {
	case <-r.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("run did not finish")
	}
	if s.Busy() {
		t.Error("session still busy after run")
	}

	s.beforeImage = nil
	s.Drop(source.FromImage("b", gradient(8, 8)))
	if _, err := s.Process(NewTarget(4, 4)); err != nil {
		t.Errorf("start after finish: %v", err)
	}
}

func TestRun_DropDuringRunKeepsNewInputs(t *testing.T) {
	s, _ := newTestSession(t)
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	s.beforeImage = func(i int) {
		if i == 0 {
			entered <- struct{}{}
			<-release
		}
	}
	s.Drop(source.FromImage("old", gradient(8, 8)))
	r, err := s.Start(NewTarget(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	<-entered
	s.Drop(source.FromImage("new", gradient(8, 8)))
	close(release)
	res := r.Wait()

	if len(res.Images) != 1 || res.Images[0].Name != "old" {
		t.Errorf("run processed the wrong snapshot: %+v", res.Images)
	}
	in := s.Inputs()
	if len(in) != 1 || in[0].Name != "new" {
		t.Errorf("newer drop was cleared: %+v", in)
	}
	if got := s.Result(); got != nil {
		t.Errorf("stale result published after a newer drop: %+v", got.Images)
	}
}

func TestProcess_JPEGQualityClamped(t *testing.T) {
	s, _ := newTestSession(t)
	s.Drop(source.FromImage("a", gradient(32, 32)))
	tg := NewTarget(16, 16)
	tg.Format = encoder.JPEG
	tg.Quality = 7
	res, err := s.Process(tg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Target.Quality != encoder.MaxQuality {
		t.Errorf("quality not clamped: %v", res.Target.Quality)
	}
	if res.Images[0].FileName != "a_resized.jpg" {
		t.Errorf("file name: %q", res.Images[0].FileName)
	}
}

func TestProcess_AlphaSurvivesPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: 0})
		}
	}
	s, _ := newTestSession(t)
	s.Drop(source.FromImage("clear", src))
	res, err := s.Process(NewTarget(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(bytes.NewReader(res.Images[0].Data))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := dec.At(2, 2).RGBA(); a != 0 {
		t.Errorf("alpha lost: %d", a)
	}
}
