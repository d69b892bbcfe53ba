package domain

import (
	"fmt"
	"strings"
	"time"
)

type Collection string

const (
	CollectionCharacters Collection = "characters"
	CollectionSeries     Collection = "series"
)

func ParseCollection(raw string) (Collection, error) {
	switch c := Collection(raw); c {
	case CollectionCharacters, CollectionSeries:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCollection, raw)
	}
}

func (c Collection) Label() string {
	switch c {
	case CollectionCharacters:
		return "Characters"
	case CollectionSeries:
		return "Series"
	default:
		return string(c)
	}
}

// Page is one window of catalog results as reported by the remote API.
type Page[T any] struct {
	Offset  int `json:"offset"`
	Limit   int `json:"limit"`
	Total   int `json:"total"`
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// Timestamp accepts the catalog's "2006-01-02T15:04:05-0700" layout as well as
// RFC 3339. Unparseable values decode to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{"2006-01-02T15:04:05-0700", time.RFC3339}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

type URL struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Image struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

func (i Image) String() string {
	if i.Path == "" {
		return ""
	}
	return i.Path + "." + i.Extension
}

type ResourceItem struct {
	ResourceURI string `json:"resourceURI"`
	Name        string `json:"name"`
}

type ResourceList struct {
	Available     int            `json:"available"`
	Returned      int            `json:"returned"`
	CollectionURI string         `json:"collectionURI"`
	Items         []ResourceItem `json:"items"`
}

type Character struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Modified    Timestamp    `json:"modified"`
	ResourceURI string       `json:"resourceURI"`
	URLs        []URL        `json:"urls"`
	Thumbnail   Image        `json:"thumbnail"`
	Comics      ResourceList `json:"comics"`
	Stories     ResourceList `json:"stories"`
	Events      ResourceList `json:"events"`
	Series      ResourceList `json:"series"`
}

type Series struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ResourceURI string        `json:"resourceURI"`
	URLs        []URL         `json:"urls"`
	StartYear   int           `json:"startYear"`
	EndYear     int           `json:"endYear"`
	Rating      string        `json:"rating"`
	Type        string        `json:"type"`
	Modified    Timestamp     `json:"modified"`
	Thumbnail   Image         `json:"thumbnail"`
	Comics      ResourceList  `json:"comics"`
	Stories     ResourceList  `json:"stories"`
	Events      ResourceList  `json:"events"`
	Characters  ResourceList  `json:"characters"`
	Creators    ResourceList  `json:"creators"`
	Next        *ResourceItem `json:"next"`
	Previous    *ResourceItem `json:"previous"`
}
