package seeder

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// newCapturingLogger returns a JSON logger at debug level and a function that
// decodes every record written so far.
func newCapturingLogger(t *testing.T) (*slog.Logger, func() []map[string]any) {
	t.Helper()
	buf := &syncBuffer{}
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	records := func() []map[string]any {
		buf.mu.Lock()
		data := append([]byte(nil), buf.buf.Bytes()...)
		buf.mu.Unlock()

		var out []map[string]any
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			var rec map[string]any
			if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
				t.Fatalf("decode log line %q: %v", sc.Text(), err)
			}
			out = append(out, rec)
		}
		return out
	}
	return log, records
}

func countMsg(records []map[string]any, msg string) int {
	n := 0
	for _, r := range records {
		if r["msg"] == msg {
			n++
		}
	}
	return n
}

// memStore is an in-memory DepartmentRepo used to verify idempotence.
type memStore struct {
	mu    sync.Mutex
	depts []domain.Department
}

func (s *memStore) List(_ context.Context) ([]domain.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Department{}, s.depts...), nil
}

func (s *memStore) Insert(_ context.Context, d domain.Department) (domain.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = strconv.Itoa(len(s.depts) + 1)
	s.depts = append(s.depts, d)
	return d, nil
}
