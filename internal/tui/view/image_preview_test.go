package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportsKittyGraphics(t *testing.T) {
	cases := []struct {
		name, kittyWindow, program, term string
		want                             bool
	}{
		{name: "ghostty", program: "ghostty", term: "dumb", want: true},
		{name: "kitty window", kittyWindow: "3", term: "xterm-256color", want: true},
		{name: "plain xterm", term: "xterm-256color", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("KITTY_WINDOW_ID", tc.kittyWindow)
			t.Setenv("TERM_PROGRAM", tc.program)
			t.Setenv("TERM", tc.term)
			assert.Equal(t, tc.want, SupportsKittyGraphics())
		})
	}
}

func TestContainsKittyGraphicsEscape(t *testing.T) {
	assert.True(t, ContainsKittyGraphicsEscape("\x1b_Ga=T,f=32\x1b\\"))
	assert.False(t, ContainsKittyGraphicsEscape("Rick Sanchez"))
}

func TestClearKittyGraphicsSequence(t *testing.T) {
	t.Setenv("TMUX", "")
	assert.Equal(t, "none", KittyPassthroughMode())
	assert.Contains(t, ClearKittyGraphicsSequence(), "\x1b_Ga=d,d=A")

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1234,0")
	assert.Equal(t, "screen", KittyPassthroughMode())
	wrapped := ClearKittyGraphicsSequence()
	assert.True(t, strings.HasPrefix(wrapped, "\x1bPtmux;\x1b"), "missing tmux prefix: %q", wrapped)
	assert.Contains(t, wrapped, "\x1b\x1b_Ga=d,d=A")
	assert.True(t, strings.HasSuffix(wrapped, "\x1b\\"), "missing tmux suffix: %q", wrapped)
}

func TestChafaArgs(t *testing.T) {
	t.Setenv("TMUX", "")
	symbols := chafaArgs(40, false)
	assert.Equal(t, []string{"--size", "40x14", "--view-size", "40x14", "--align", "top,center", "--format", "symbols", "-"}, symbols)

	kitty := chafaArgs(50, true)
	assert.Contains(t, kitty, "kitty")
	assert.Contains(t, kitty, "none")
	assert.Equal(t, "-", kitty[len(kitty)-1])
}

func TestDownloadPortrait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/avatar/1.jpeg" {
			_, _ = w.Write([]byte("jpeg-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	data, err := DownloadPortrait(context.Background(), srv.Client(), srv.URL+"/avatar/1.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	_, err = DownloadPortrait(context.Background(), srv.Client(), srv.URL+"/avatar/missing.jpeg")
	assert.ErrorContains(t, err, "status 404")
}
