package syncout

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentWritersKeepLinesIntact(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := New(&buf)

	const writers = 8
	const lines = 200
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < lines; j++ {
				assert.NoError(t, w.Println("writer", n, "alpha", "beta", "gamma"))
			}
		}(i)
	}
	wg.Wait()

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, got, writers*lines)
	for _, line := range got {
		fields := strings.Fields(line)
		require.Lenf(t, fields, 5, "interleaved line: %q", line)
		assert.Equal(t, "writer", fields[0])
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, fields[2:])
	}
}

func TestPrintfFormatsVerbatim(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := New(&buf)
	require.NoError(t, w.Printf("id=%d state=%s\n", 7, "ok"))
	assert.Equal(t, "id=7 state=ok\n", buf.String())
}

func TestWriteSingleBlock(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := New(&buf)
	n, err := w.Write([]byte("a b c\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "a b c\n", buf.String())
}

func TestStdoutIsProcessWide(t *testing.T) {
	t.Parallel()
	assert.Same(t, Stdout(), Stdout())
}
