package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/trail/internal/adapters/logger"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing uncolored output into a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := new(bytes.Buffer)
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	os.Stderr = originalStderr
	if err := w.Close(); err != nil {
		return "", err
	}
	output := <-done
	return output, r.Close()
}

func unknownWaypoint() error {
	return zerr.With(zerr.Wrap(zerr.With(domain.ErrUnknownNode, "label", "zzz"), "query failed"), "query", "part2")
}

func TestNew_WritesToStderr(t *testing.T) {
	output, err := captureStderr(func() {
		// The logger must be created after stderr is redirected.
		logger.New().Info("graph loaded")
	})
	require.NoError(t, err)
	assert.Equal(t, "graph loaded\n", output)
}

func TestLogger_Messages(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("graph loaded") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn(`query "nope" is not defined`) },
			goldenName: "warn_basic",
		},
		{
			name:       "zerr chain with metadata",
			log:        func(l *logger.Logger) { l.Error(unknownWaypoint()) },
			goldenName: "error_chain_metadata",
		},
		{
			name: "stdlib chain",
			log: func(l *logger.Logger) {
				l.Error(fmt.Errorf("failed to read graph: %w", errors.New("disk full")))
			},
			goldenName: "error_chain_stdlib",
		},
		{
			name: "zerr over stdlib cause",
			log: func(l *logger.Logger) {
				l.Error(zerr.Wrap(fmt.Errorf("open devices.txt: %w", errors.New("disk full")), "failed to load graph"))
			},
			goldenName: "error_chain_mixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(unknownWaypoint())

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, "query failed")
	assert.Contains(t, out, "unknown node")
	assert.Contains(t, out, `"label":"zzz"`)
	assert.Contains(t, out, `"query":"part2"`)
	assert.NotContains(t, out, "Caused by")

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to text")
	assert.Equal(t, "back to text\n", buf.String())
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := new(bytes.Buffer)
	lg.SetOutput(buf)
	lg.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLogger_SetLevel(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetLevel(domain.LogLevelWarn)
	lg.Info("hidden")
	lg.Warn("shown")
	assert.Equal(t, "! shown\n", buf.String())

	buf.Reset()
	lg.SetJSON(true)
	lg.Info("still hidden")
	assert.Empty(t, buf.String(), "the level survives a mode switch")
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, buf := newTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			lg.Info("query computed")
		}()
		go func() {
			defer wg.Done()
			lg.SetOutput(buf)
		}()
	}
	wg.Wait()
}
