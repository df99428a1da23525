// Package dto contains wire documents exchanged with Telegram and ACRCloud
package dto

import "encoding/json"

// GetFileResponse is the Telegram getFile response envelope
type GetFileResponse struct {
	OK          bool        `json:"ok"`
	Result      *FileResult `json:"result,omitempty"`
	ErrorCode   int         `json:"error_code,omitempty"`
	Description string      `json:"description,omitempty"`
}

// FileResult is the file object returned by getFile
type FileResult struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileSize     int64  `json:"file_size"`
	FilePath     string `json:"file_path"`
}

// RecognitionResult is the decoded ACRCloud identify response
type RecognitionResult struct {
	Status     Status          `json:"status"`
	Metadata   *ResultMetadata `json:"metadata,omitempty"`
	CostTime   float64         `json:"cost_time,omitempty"`
	ResultType int             `json:"result_type,omitempty"`
}

// Status carries the ACRCloud status code; zero means success
type Status struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Version string `json:"version,omitempty"`
}

// ResultMetadata holds the match candidates
type ResultMetadata struct {
	Music        []MusicMatch `json:"music"`
	TimestampUTC string       `json:"timestamp_utc,omitempty"`
}

// MusicMatch is a single match candidate.
// Artists and Genres stay raw so the parser can tell malformed from absent.
type MusicMatch struct {
	Title            string           `json:"title"`
	Label            string           `json:"label"`
	ReleaseDate      string           `json:"release_date"`
	Album            *Album           `json:"album,omitempty"`
	Artists          json.RawMessage  `json:"artists,omitempty"`
	Genres           json.RawMessage  `json:"genres,omitempty"`
	ExternalIDs      ExternalIDs      `json:"external_ids"`
	ExternalMetadata ExternalMetadata `json:"external_metadata"`
	ACRID            string           `json:"acrid,omitempty"`
	DurationMs       int              `json:"duration_ms,omitempty"`
	PlayOffsetMs     int              `json:"play_offset_ms,omitempty"`
	Score            int              `json:"score,omitempty"`
}

// Album is a named album reference
type Album struct {
	Name string `json:"name"`
}

// NamedEntry is a {name} tagged entry used by artists and genres
type NamedEntry struct {
	Name *string `json:"name"`
}

// ExternalIDs holds recording and release identifiers
type ExternalIDs struct {
	ISRC string `json:"isrc,omitempty"`
	UPC  string `json:"upc,omitempty"`
}

// ExternalMetadata holds streaming service references
type ExternalMetadata struct {
	Spotify *SpotifyMetadata `json:"spotify,omitempty"`
}

// SpotifyMetadata references the track on Spotify
type SpotifyMetadata struct {
	Track   SpotifyRef   `json:"track"`
	Album   SpotifyRef   `json:"album"`
	Artists []SpotifyRef `json:"artists,omitempty"`
}

// SpotifyRef is an id/name pair
type SpotifyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
