package main

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ReportSink appends one human-readable timing line per interpolated
// frame. Workers share a single sink, so writes are serialized.
type ReportSink struct {
	lock sync.Mutex
	file *os.File
}

func OpenReport(path string) (*ReportSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &ReportSink{file: file}, nil
}

func (r *ReportSink) Write(duration time.Duration) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	_, err := fmt.Fprintf(r.file, "Interpolated frame in: %d milliseconds\n", duration.Milliseconds())
	return err
}

func (r *ReportSink) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.file.Close()
}
