package catalog

// PageSize is the fixed number of characters the API returns per page.
const PageSize = 20

// Place is an origin or location reference attached to a character.
type Place struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character is the subset of catalog fields required by the app.
type Character struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Species  string   `json:"species"`
	Type     string   `json:"type"`
	Gender   string   `json:"gender"`
	Image    string   `json:"image"`
	Origin   Place    `json:"origin"`
	Location Place    `json:"location"`
	Episode  []string `json:"episode"`
	URL      string   `json:"url"`
}

// FirstEpisodeRef returns the first episode reference, if any.
func (c Character) FirstEpisodeRef() (string, bool) {
	if len(c.Episode) == 0 {
		return "", false
	}
	return c.Episode[0], true
}

type PageInfo struct {
	Count int     `json:"count"`
	Pages int     `json:"pages"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

// Page is one catalog page as returned by the character endpoint.
type Page struct {
	Number  int         `json:"-"`
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// TotalPages derives the page count from the total record count.
func (p Page) TotalPages() int {
	return TotalPages(p.Info.Count)
}

func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

type Episode struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	AirDate string `json:"air_date"`
	Code    string `json:"episode"`
	URL     string `json:"url"`
}

// EpisodeSummary is what the detail view shows for a character's first episode.
type EpisodeSummary struct {
	Name          string
	EpisodeNumber string
	AirDate       string
	Code          string
	URL           string
}
