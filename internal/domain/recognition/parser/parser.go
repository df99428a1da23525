// Package parser turns ACRCloud results into display-ready metadata
package parser

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/internal/domain/recognition/dto"
	"github.com/Conte777/songid-bot/internal/domain/recognition/entities"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "Monday, January 2, 2006"
)

// Parser builds Metadata from recognition results
type Parser struct {
	logger zerolog.Logger
}

// New creates a new Parser
func New(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse checks the result status and builds Metadata from the first match.
func (p *Parser) Parse(result *dto.RecognitionResult) (*entities.Metadata, error) {
	if result.Status.Code != 0 {
		return nil, recerrors.NewRecognitionProviderError(result.Status.Code, result.Status.Msg)
	}

	if result.Metadata == nil || len(result.Metadata.Music) == 0 {
		return nil, recerrors.NewRecognitionProviderError(1001, recerrors.NoResultMessage)
	}

	match := result.Metadata.Music[0]

	artists, err := parseArtists(match.Artists)
	if err != nil {
		return nil, err
	}

	releaseDate, err := formatDate(match.ReleaseDate)
	if err != nil {
		return nil, err
	}

	meta := &entities.Metadata{
		Title:       match.Title,
		Artists:     artists,
		Label:       match.Label,
		Genres:      p.parseGenres(match.Genres),
		ReleaseDate: releaseDate,
		ISRC:        match.ExternalIDs.ISRC,
		UPC:         match.ExternalIDs.UPC,
	}
	if match.Album != nil {
		meta.Album = match.Album.Name
	}
	if match.ExternalMetadata.Spotify != nil {
		meta.SpotifyTrackID = match.ExternalMetadata.Spotify.Track.ID
	}

	return meta, nil
}

// parseGenres tolerates absent or malformed genre data
func (p *Parser) parseGenres(raw json.RawMessage) []string {
	var entries []dto.NamedEntry
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		p.logger.Debug().Msg("No genres were provided")
		return nil
	}

	genres := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != nil && *e.Name != "" {
			genres = append(genres, *e.Name)
		}
	}
	return genres
}

func parseArtists(raw json.RawMessage) ([]string, error) {
	var entries []dto.NamedEntry
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, recerrors.ErrMalformedArtists
	}

	artists := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == nil {
			return nil, recerrors.ErrMalformedArtists
		}
		artists = append(artists, *e.Name)
	}
	return artists, nil
}

// formatDate converts an ISO date into the long display form; empty stays empty
func formatDate(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	d, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return "", &recerrors.DateFormatError{Value: value, Err: err}
	}
	return d.Format(displayDateLayout), nil
}
