// Package delivery contains the webhook delivery channel and the error log
package delivery // import "github.com/juicetools/juicebox-heartbeat/pkg/delivery"

import (
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/golang/glog"
)

// NewFileErrorLog creates an error log appending to the file at path
func NewFileErrorLog(path string) *FileErrorLog {
	return &FileErrorLog{path: path}
}

// FileErrorLog is an append-only human-readable record of delivery and
// resolution failures. It exists for operational visibility and is never
// consumed programmatically; append failures are logged, not raised.
type FileErrorLog struct {
	path string
	mu   sync.Mutex
}

// Append appends one timestamped entry to the error log
func (l *FileErrorLog) Append(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Errorf("Error opening error log %v: err: %v", l.path, err)
		return
	}
	defer f.Close() // nolint: errcheck

	line := fmt.Sprintf("%v %v\n", time.Now().UTC().Format(time.RFC3339), entry)
	_, err = f.WriteString(line)
	if err != nil {
		log.Errorf("Error appending to error log %v: err: %v", l.path, err)
	}
}
