// Package syncout provides a line-atomic writer for a sink shared by
// concurrent writers. Each call is buffered privately and flushed as a
// single block, so lines from concurrent writers are never interleaved
// character-by-character. Ordering of whole lines across writers is
// unspecified.
package syncout

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer serializes emissions onto dst. One Println, Printf or Write
// call reaches dst as one uninterrupted block.
type Writer struct {
	mu  sync.Mutex
	dst io.Writer
}

func New(dst io.Writer) *Writer { return &Writer{dst: dst} }

var stdout = New(os.Stdout)

// Stdout returns the process-wide writer over os.Stdout. All concurrent
// writers that print through it keep their lines intact.
func Stdout() *Writer { return stdout }

// Write emits p as a single block.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dst.Write(p)
}

// Println formats its operands like fmt.Println and emits the result as
// one block.
func (w *Writer) Println(args ...any) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, args...)
	_, err := w.Write(buf.Bytes())
	return err
}

// Printf formats like fmt.Printf and emits the result as one block. The
// caller supplies the trailing newline; a block without one may still be
// split from its continuation by other writers' lines.
func (w *Writer) Printf(format string, args ...any) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, format, args...)
	_, err := w.Write(buf.Bytes())
	return err
}
