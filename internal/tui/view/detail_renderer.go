package view

import (
	"strings"
)

type InlineImagePreviewState struct {
	Enabled bool
	Loading bool
	Raw     string
	Err     string
}

// DetailLines lays out the whole detail screen: the portrait preview
// (when enabled) above the character fields, indented by margin.
func DetailLines(p DetailParams, contentWidth, horizontalMargin int, wrap WrapFunc, preview InlineImagePreviewState) []string {
	lines := prependInlineImagePreview(DetailMetaLines(p, contentWidth, wrap), preview, contentWidth)
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func prependInlineImagePreview(lines []string, preview InlineImagePreviewState, contentWidth int) []string {
	if !preview.Enabled {
		return lines
	}
	var previewLines []string
	switch {
	case preview.Loading:
		previewLines = []string{"Loading portrait..."}
	case strings.TrimSpace(preview.Raw) != "":
		if ContainsKittyGraphicsEscape(preview.Raw) {
			previewLines = []string{strings.TrimRight(preview.Raw, "\r\n")}
		} else {
			previewLines = centerLines(strings.Split(strings.TrimRight(preview.Raw, "\r\n"), "\n"), contentWidth)
		}
	case strings.TrimSpace(preview.Err) != "":
		previewLines = []string{"Portrait preview unavailable: " + strings.TrimSpace(preview.Err)}
	}
	if len(previewLines) == 0 {
		return lines
	}
	out := make([]string, 0, len(previewLines)+1+len(lines))
	out = append(out, previewLines...)
	out = append(out, "")
	return append(out, lines...)
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if ContainsKittyGraphicsEscape(line) {
			out[i] = line
			continue
		}
		out[i] = prefix + line
	}
	return out
}

func centerLines(lines []string, width int) []string {
	if width <= 0 || len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		visible := visibleLen(line)
		if visible >= width {
			out[i] = line
			continue
		}
		pad := (width - visible) / 2
		if pad < 0 {
			pad = 0
		}
		out[i] = strings.Repeat(" ", pad) + line
	}
	return out
}
