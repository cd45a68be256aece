package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/session"
	"quizdesk/internal/testutil"
)

func TestLogHandlerDropsWithoutProgram(t *testing.T) {
	handler := NewLogHandler(slog.LevelWarn)
	record := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be below the handler level")
	}
}

func TestLogHandlerSummarizesAttrs(t *testing.T) {
	handler := NewLogHandler(slog.LevelWarn).WithAttrs([]slog.Attr{slog.String("component", "client")}).WithGroup("req")
	record := slog.NewRecord(time.Now(), slog.LevelWarn, "request failed", 0)
	record.AddAttrs(slog.Int("status", 500))

	got := handler.(*LogHandler).summarize(record)
	want := "request failed (component=client, req.status=500)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// recorderModel captures log records delivered to a running program.
type recorderModel struct {
	mu      *sync.Mutex
	records *[]logRecordMsg
}

func (m recorderModel) Init() tea.Cmd { return nil }

func (m recorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if record, ok := msg.(logRecordMsg); ok {
		m.mu.Lock()
		*m.records = append(*m.records, record)
		m.mu.Unlock()
	}
	return m, nil
}

func (m recorderModel) View() string { return "" }

func TestLogHandlerDeliversToProgram(t *testing.T) {
	var mu sync.Mutex
	var records []logRecordMsg
	program := tea.NewProgram(
		recorderModel{mu: &mu, records: &records},
		tea.WithContext(testutil.Context(t, 0)),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = program.Run()
	}()

	handler := NewLogHandler(slog.LevelWarn)
	handler.SetProgram(program)
	logger := slog.New(handler)
	logger.Info("ignored")
	logger.Warn("backend slow", "latency", "3s")

	testutil.Eventually(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(records) == 1
	}, "log record never reached the program")

	mu.Lock()
	got := records[0]
	mu.Unlock()
	if got.Summary != "backend slow (latency=3s)" || got.Level != slog.LevelWarn {
		t.Fatalf("unexpected record %+v", got)
	}

	program.Quit()
	<-done
}

// syncBuffer is a goroutine-safe program output sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFailedSaveKeepsProgramResponsiveWithStatusLogger(t *testing.T) {
	handler := NewLogHandler(slog.LevelWarn)
	putter := &recordingPutter{err: errors.New("backend down")}
	m := NewModel(testutil.Context(t, 0), loadedStore(t), putter, Options{
		NoColor: true,
		Logger:  slog.New(handler),
	})

	out := &syncBuffer{}
	program := tea.NewProgram(
		m,
		tea.WithContext(testutil.Context(t, 0)),
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	handler.SetProgram(program)

	type result struct {
		model tea.Model
		err   error
	}
	done := make(chan result, 1)
	go func() {
		final, err := program.Run()
		done <- result{model: final, err: err}
	}()

	program.Send(keyMsg("enter"))
	program.Send(keyMsg("ctrl+s"))

	testutil.Eventually(t, 2*time.Second, func() bool {
		return strings.Contains(out.String(), "Save failed for question 1")
	}, "save failure never reached the status line")

	go program.Quit()
	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("run: %v", res.err)
		}
		final, ok := res.model.(Model)
		if !ok {
			t.Fatalf("unexpected model type %T", res.model)
		}
		if final.Editor().State() != session.StateSaveFailed {
			t.Fatalf("expected save failed state, got %v", final.Editor().State())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("program did not stop after a failed save")
	}
}
