package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
)

const (
	portraitRows     = 14
	maxPortraitBytes = 2 * 1024 * 1024
)

// DownloadPortrait fetches a character image, capped at maxPortraitBytes.
func DownloadPortrait(ctx context.Context, client *http.Client, imageURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPortraitBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// RenderPortrait draws a character image with chafa, as kitty graphics
// when the terminal supports them and as symbols otherwise.
func RenderPortrait(ctx context.Context, client *http.Client, imageURL string, width int) (string, error) {
	if width < 30 {
		width = 40
	}

	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	imageData, err := DownloadPortrait(ctx, client, imageURL)
	if err != nil {
		return "", err
	}

	kitty := SupportsKittyGraphics()
	cmd := exec.CommandContext(ctx, chafaPath, chafaArgs(width, kitty)...)
	cmd.Stdin = bytes.NewReader(imageData)
	output, err := cmd.CombinedOutput()
	raw := string(output)
	trimmed := strings.TrimSpace(raw)

	if err != nil {
		return "", fmt.Errorf("render image via chafa: %w: %s", err, trimmed)
	}
	if kitty && ContainsKittyGraphicsEscape(raw) {
		return strings.TrimRight(raw, "\r\n"), nil
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty output")
	}
	return trimmed, nil
}

func chafaArgs(width int, kitty bool) []string {
	size := fmt.Sprintf("%dx%d", width, portraitRows)
	args := []string{"--size", size, "--view-size", size, "--align", "top,center"}
	if kitty {
		args = append(args, "--format", "kitty", "--passthrough", KittyPassthroughMode(), "--relative", "on")
	} else {
		args = append(args, "--format", "symbols")
	}
	return append(args, "-")
}

func SupportsKittyGraphics() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	termProgram := strings.ToLower(strings.TrimSpace(os.Getenv("TERM_PROGRAM")))
	if strings.Contains(termProgram, "ghostty") || strings.Contains(termProgram, "kitty") {
		return true
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	return strings.Contains(term, "xterm-kitty") || strings.Contains(term, "ghostty")
}

func ContainsKittyGraphicsEscape(s string) bool {
	return strings.Contains(s, "\x1b_G")
}

// ClearKittyGraphicsSequence deletes every kitty image, wrapped for tmux
// passthrough when needed.
func ClearKittyGraphicsSequence() string {
	base := "\x1b_Ga=d,d=A\x1b\\"
	if os.Getenv("TMUX") == "" {
		return base
	}
	escaped := strings.ReplaceAll(base, "\x1b", "\x1b\x1b")
	return "\x1bPtmux;\x1b" + escaped + "\x1b\\"
}

func KittyPassthroughMode() string {
	if os.Getenv("TMUX") != "" {
		return "screen"
	}
	return "none"
}
