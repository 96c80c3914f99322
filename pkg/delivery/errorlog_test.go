package delivery_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juicetools/juicebox-heartbeat/pkg/delivery"
)

func TestErrorLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")
	errorLog := delivery.NewFileErrorLog(path)

	errorLog.Append("Error delivering to hook1: err: status: 429")
	errorLog.Append("Error resolving QmMeta: err: timeout")

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Should have created the error log: err: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Should have appended 2 lines but have %v", len(lines))
	}
	if !strings.Contains(lines[0], "Error delivering to hook1") {
		t.Errorf("First line should contain the first entry but it is %v", lines[0])
	}
	if !strings.Contains(lines[1], "Error resolving QmMeta") {
		t.Errorf("Second line should contain the second entry but it is %v", lines[1])
	}
	for _, line := range lines {
		if !strings.Contains(line, "T") || !strings.HasSuffix(strings.Fields(line)[0], "Z") {
			t.Errorf("Line should start with an RFC3339 timestamp but it is %v", line)
		}
	}
}
