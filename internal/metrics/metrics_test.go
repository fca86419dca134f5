package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func counterValue(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestRecorder_Counts(t *testing.T) {
	r := New()
	r.RecordDocument(DocumentProcessed, 10*time.Millisecond)
	r.RecordDocument(DocumentProcessed, 20*time.Millisecond)
	r.RecordDocument(DocumentFailed, time.Millisecond)
	r.RecordFile(FileWritten)
	r.RecordCommand("delete", "skipped")
	r.RecordWarnings(3)
	r.RecordWarnings(0)

	tests := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"aio_documents_total", map[string]string{"status": "processed"}, 2},
		{"aio_documents_total", map[string]string{"status": "failed"}, 1},
		{"aio_files_total", map[string]string{"status": "written"}, 1},
		{"aio_commands_total", map[string]string{"verb": "delete", "status": "skipped"}, 1},
		{"aio_warnings_total", nil, 3},
	}
	for _, tt := range tests {
		if got := counterValue(t, r, tt.name, tt.labels); got != tt.want {
			t.Errorf("%s%v = %v, want %v", tt.name, tt.labels, got, tt.want)
		}
	}
}

func TestRecorder_NilIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordDocument(DocumentProcessed, time.Second)
	r.RecordFile(FileFailed)
	r.RecordCommand("create", "applied")
	r.RecordWarnings(1)
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.RecordFile(FileWritten)

	path := filepath.Join(t.TempDir(), "aio.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading textfile: %v", err)
	}
	if !strings.Contains(string(data), `aio_files_total{status="written"} 1`) {
		t.Errorf("textfile missing counter:\n%s", data)
	}
}
