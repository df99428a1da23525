package entities

import (
	"html"
	"strings"
)

// Metadata is the display-ready track information of a successful recognition
type Metadata struct {
	Title   string
	Artists []string
	Album   string
	Label   string
	Genres  []string
	// ReleaseDate is already formatted for display
	ReleaseDate string

	ISRC           string
	UPC            string
	SpotifyTrackID string
}

// Info renders the metadata as HTML text for Telegram
func (m *Metadata) Info() string {
	var lines []string

	if m.Title != "" {
		head := html.EscapeString(m.Title)
		if artists := m.artistLine(); artists != "" {
			head += " - " + artists
		}
		lines = append(lines, "<b>"+head+"</b>")
	}

	optional := []struct {
		prefix string
		value  string
	}{
		{"Album: ", m.Album},
		{"Release: ", m.ReleaseDate},
		{"Label: ", m.Label},
		{"Genres: ", strings.Join(m.Genres, ", ")},
	}
	for _, line := range optional {
		if line.value != "" {
			lines = append(lines, line.prefix+html.EscapeString(line.value))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (m *Metadata) String() string {
	return m.Info()
}

// artistLine joins artists and turns only the first separator into " ft."
func (m *Metadata) artistLine() string {
	escaped := make([]string, 0, len(m.Artists))
	for _, a := range m.Artists {
		escaped = append(escaped, html.EscapeString(a))
	}
	return strings.Replace(strings.Join(escaped, ", "), ",", " ft.", 1)
}
