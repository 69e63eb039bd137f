package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven/mocks"
)

type stubIngest struct {
	mu      sync.Mutex
	calls   int
	lastID  string
	payload []byte
	err     error
}

func (s *stubIngest) Ingest(ctx context.Context, articleID string, payload []byte) (*domain.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastID = articleID
	s.payload = payload
	if s.err != nil {
		return nil, s.err
	}
	return &domain.IngestResult{ArticleID: articleID, ChunkCount: 2, PageCount: 1}, nil
}

func (s *stubIngest) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type workerFixture struct {
	worker   *Worker
	queue    *mocks.MockTaskQueue
	payloads *mocks.MockPayloadStore
	ingest   *stubIngest
}

func newWorkerFixture() *workerFixture {
	f := &workerFixture{
		queue:    mocks.NewMockTaskQueue(),
		payloads: mocks.NewMockPayloadStore(),
		ingest:   &stubIngest{},
	}
	f.worker = New(Config{
		TaskQueue:     f.queue,
		IngestService: f.ingest,
		PayloadStore:  f.payloads,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func readyIngestTask(articleID string) *domain.Task {
	task := domain.NewIngestArticleTask(articleID)
	task.ScheduledFor = time.Now().Add(-time.Second)
	return task
}

func TestProcessTask_IngestSuccess(t *testing.T) {
	f := newWorkerFixture()
	ctx := context.Background()

	f.payloads.SavePayload(ctx, "art-1", "text/plain", []byte("contenido del articulo"))

	task := readyIngestTask("art-1")
	f.queue.Enqueue(ctx, task)
	dequeued, _ := f.queue.DequeueWithTimeout(ctx, 1)

	f.worker.processTask(ctx, dequeued, f.worker.logger)

	if f.ingest.calls != 1 {
		t.Fatalf("expected 1 ingest call, got %d", f.ingest.calls)
	}
	if f.ingest.lastID != "art-1" {
		t.Errorf("expected article art-1, got %s", f.ingest.lastID)
	}
	if string(f.ingest.payload) != "contenido del articulo" {
		t.Errorf("expected stored payload passed through, got %q", f.ingest.payload)
	}

	stored, _ := f.queue.GetTask(ctx, task.ID)
	if stored.Status != domain.TaskStatusCompleted {
		t.Errorf("expected task completed, got %s", stored.Status)
	}
}

func TestProcessTask_IngestFailureNacks(t *testing.T) {
	f := newWorkerFixture()
	ctx := context.Background()

	f.payloads.SavePayload(ctx, "art-1", "text/plain", []byte("contenido"))
	f.ingest.err = errors.New("embedding exploded")

	task := readyIngestTask("art-1")
	f.queue.Enqueue(ctx, task)
	dequeued, _ := f.queue.DequeueWithTimeout(ctx, 1)

	f.worker.processTask(ctx, dequeued, f.worker.logger)

	stored, _ := f.queue.GetTask(ctx, task.ID)
	if stored.Status != domain.TaskStatusPending {
		t.Errorf("expected task rescheduled for retry, got %s", stored.Status)
	}
	if stored.Error == "" {
		t.Error("expected error recorded on task")
	}
}

func TestProcessTask_MissingPayloadNacks(t *testing.T) {
	f := newWorkerFixture()
	ctx := context.Background()

	task := readyIngestTask("art-unknown")
	f.queue.Enqueue(ctx, task)
	dequeued, _ := f.queue.DequeueWithTimeout(ctx, 1)

	f.worker.processTask(ctx, dequeued, f.worker.logger)

	if f.ingest.calls != 0 {
		t.Errorf("ingest should not run without a payload, got %d calls", f.ingest.calls)
	}

	stored, _ := f.queue.GetTask(ctx, task.ID)
	if stored.Status == domain.TaskStatusCompleted {
		t.Error("task must not complete without a payload")
	}
}

func TestProcessTask_UnknownTypeNacks(t *testing.T) {
	f := newWorkerFixture()
	ctx := context.Background()

	task := domain.NewTask(domain.TaskType("mystery"), nil)
	task.ScheduledFor = time.Now().Add(-time.Second)
	f.queue.Enqueue(ctx, task)
	dequeued, _ := f.queue.DequeueWithTimeout(ctx, 1)

	f.worker.processTask(ctx, dequeued, f.worker.logger)

	stored, _ := f.queue.GetTask(ctx, task.ID)
	if stored.Status == domain.TaskStatusCompleted {
		t.Error("unknown task type must not complete")
	}
}

func TestWorker_StartStop(t *testing.T) {
	f := newWorkerFixture()
	ctx := context.Background()

	f.payloads.SavePayload(ctx, "art-1", "text/plain", []byte("contenido"))
	f.queue.Enqueue(ctx, readyIngestTask("art-1"))

	if err := f.worker.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Give the loop a moment to pick up the task
	deadline := time.Now().Add(2 * time.Second)
	for f.ingest.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	f.worker.Stop()

	if f.ingest.callCount() == 0 {
		t.Error("expected the worker loop to process the enqueued task")
	}
}
