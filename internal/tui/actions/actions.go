package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/rickmorty-cli/internal/browse"
	"github.com/glabrego/rickmorty-cli/internal/catalog"
	"github.com/glabrego/rickmorty-cli/internal/detail"
)

const DefaultTimeout = 12 * time.Second

type Service interface {
	FetchPage(ctx context.Context, page int) (catalog.Page, error)
	FetchEpisode(ctx context.Context, id string) (catalog.EpisodeSummary, error)
}

type PageLoadedMsg struct {
	Response browse.Response
	Duration time.Duration
}

type EpisodeLoadedMsg struct {
	Response detail.Response
}

// DarkModeChangedMsg and LikeChangedMsg relay preference store
// notifications into the update loop.
type DarkModeChangedMsg struct {
	Dark bool
}

type LikeChangedMsg struct {
	CharacterID string
	Liked       bool
}

type PortraitLoadedMsg struct {
	CharacterID int
	Raw         string
	Err         error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

func FetchPageCmd(service Service, req browse.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutOrDefault(timeout))
		defer cancel()
		start := time.Now()

		resp := browse.Execute(ctx, service, req)
		return PageLoadedMsg{Response: resp, Duration: time.Since(start)}
	}
}

func FetchEpisodeCmd(service Service, req detail.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeoutOrDefault(timeout))
		defer cancel()

		return EpisodeLoadedMsg{Response: detail.Execute(ctx, service, req)}
	}
}

// WaitForPreferenceChange blocks until the next store notification.
// Re-issue it after every message it delivers.
func WaitForPreferenceChange(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func PortraitCmd(characterID int, imageURL string, width int, renderFn func(context.Context, string, int) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		raw, err := renderFn(ctx, imageURL, width)
		return PortraitLoadedMsg{CharacterID: characterID, Raw: raw, Err: err}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened link in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open link or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Image URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
