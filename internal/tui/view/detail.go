package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
	"github.com/glabrego/rickmorty-cli/internal/detail"
)

type WrapFunc func(string, int) []string

// EpisodeState is the enrichment outcome the detail screen renders.
type EpisodeState struct {
	Status  detail.Status
	Summary *catalog.EpisodeSummary
	Err     error
}

type DetailParams struct {
	Character catalog.Character
	Liked     bool
	Episode   EpisodeState
	BaseURL   string
}

// Link is a labelled API URL offered on the detail screen.
type Link struct {
	Label string
	URL   string
}

// PlaceLink rebuilds the API link for an origin or location from the id
// in its URL. ok is false for "unknown" places with no URL.
func PlaceLink(baseURL string, p catalog.Place) (string, bool) {
	kind, id, ok := catalog.ResourceIDFromURL(p.URL)
	if !ok {
		return "", false
	}
	return catalog.ResourceURL(baseURL, kind, id), true
}

// EpisodeLine renders the first-episode row for the current enrichment state.
func EpisodeLine(st EpisodeState) string {
	switch st.Status {
	case detail.StatusLoading:
		return "Loading..."
	case detail.StatusLoaded:
		if st.Summary == nil {
			return "unknown"
		}
		return fmt.Sprintf("%q / Episode-%s", st.Summary.Name, st.Summary.EpisodeNumber)
	case detail.StatusFailed:
		if errors.Is(st.Err, detail.ErrNoEpisode) {
			return "No episode data"
		}
		return "Could not load episode"
	default:
		return ""
	}
}

// DetailLinks lists the links the detail screen can open, first episode first.
func DetailLinks(p DetailParams) []Link {
	links := make([]Link, 0, 4)
	if p.Episode.Status == detail.StatusLoaded && p.Episode.Summary != nil && p.Episode.Summary.URL != "" {
		links = append(links, Link{Label: "First episode", URL: p.Episode.Summary.URL})
	} else if ref, ok := p.Character.FirstEpisodeRef(); ok {
		if id, ok := catalog.EpisodeIDFromURL(ref); ok {
			links = append(links, Link{Label: "First episode", URL: catalog.ResourceURL(p.BaseURL, "episode", id)})
		}
	}
	if u, ok := PlaceLink(p.BaseURL, p.Character.Origin); ok {
		links = append(links, Link{Label: "Origin", URL: u})
	}
	if u, ok := PlaceLink(p.BaseURL, p.Character.Location); ok {
		links = append(links, Link{Label: "Location", URL: u})
	}
	if p.Character.URL != "" {
		links = append(links, Link{Label: "Character", URL: p.Character.URL})
	}
	return links
}

func DetailMetaLines(p DetailParams, width int, wrap WrapFunc) []string {
	c := p.Character
	lines := make([]string, 0, 20)
	title := c.Name
	if p.Liked {
		title += "  ♥"
	}
	lines = append(lines, wrap(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(title))))))
	lines = append(lines, "")

	lines = append(lines, "Status: "+orUnknown(c.Status))
	lines = append(lines, "Species: "+orUnknown(c.Species))
	lines = append(lines, "Gender: "+orUnknown(c.Gender))
	if strings.TrimSpace(c.Type) != "" {
		lines = append(lines, wrap("Type: "+c.Type, width)...)
	}
	if p.Liked {
		lines = append(lines, "Liked: yes")
	} else {
		lines = append(lines, "Liked: no")
	}

	lines = append(lines, "")
	lines = append(lines, wrap("Origin: "+orUnknown(c.Origin.Name), width)...)
	if u, ok := PlaceLink(p.BaseURL, c.Origin); ok {
		lines = append(lines, wrap("  "+u, width)...)
	}
	lines = append(lines, wrap("Location: "+orUnknown(c.Location.Name), width)...)
	if u, ok := PlaceLink(p.BaseURL, c.Location); ok {
		lines = append(lines, wrap("  "+u, width)...)
	}

	lines = append(lines, "")
	lines = append(lines, wrap("First episode: "+EpisodeLine(p.Episode), width)...)
	if s := p.Episode.Summary; p.Episode.Status == detail.StatusLoaded && s != nil {
		if s.Code != "" || s.AirDate != "" {
			lines = append(lines, wrap("  "+strings.TrimSpace(s.Code+"  "+s.AirDate), width)...)
		}
		if s.URL != "" {
			lines = append(lines, wrap("  "+s.URL, width)...)
		}
	}
	lines = append(lines, fmt.Sprintf("Episodes: %d", len(c.Episode)))

	if c.Image != "" {
		lines = append(lines, "")
		lines = append(lines, wrap("Image: "+c.Image, width)...)
	}
	return lines
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
