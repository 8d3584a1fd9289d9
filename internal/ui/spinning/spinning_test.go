package spinning

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
	"time"
)

func TestSpinning(t *testing.T) {
	Theme = ThemeAscii
	Period = time.Millisecond
	var buf bytes.Buffer
	s := NewWithWriter(context.Background(), &buf)
	time.Sleep(20 * time.Millisecond)
	s.Done()
	s.Done()
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\033[?25l"))
	assert.True(t, strings.HasSuffix(out, "\033[?25h"))
	assert.Contains(t, out, "\b|")
	assert.Contains(t, out, "\b/")
}

func TestSpinningCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := NewWithWriter(ctx, &buf)
	cancel()
	s.Done()
	assert.True(t, strings.HasSuffix(buf.String(), "\033[?25h"))
}
