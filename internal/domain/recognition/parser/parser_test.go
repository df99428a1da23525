package parser

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/songid-bot/internal/domain/recognition/dto"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
)

const successBody = `{
	"status": {"msg": "Success", "code": 0, "version": "1.0"},
	"metadata": {
		"music": [{
			"external_ids": {"isrc": "USQX91300108", "upc": "886443927087"},
			"external_metadata": {"spotify": {"track": {"id": "5CMjjywI0eZMixPeqNd75R", "name": "Lose Yourself to Dance"}}},
			"genres": [{"name": "Electro"}, {"name": "Dance"}],
			"label": "Columbia",
			"release_date": "2021-03-15",
			"artists": [{"name": "Daft Punk"}, {"name": "Pharrell Williams"}],
			"title": "Lose Yourself to Dance",
			"album": {"name": "Random Access Memories"}
		}]
	},
	"cost_time": 0.7
}`

func decode(t *testing.T, body string) *dto.RecognitionResult {
	t.Helper()
	var result dto.RecognitionResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	return &result
}

func TestParse_Success(t *testing.T) {
	p := New(zerolog.Nop())

	meta, err := p.Parse(decode(t, successBody))
	require.NoError(t, err)

	assert.Equal(t, "Lose Yourself to Dance", meta.Title)
	assert.Equal(t, []string{"Daft Punk", "Pharrell Williams"}, meta.Artists)
	assert.Equal(t, "Random Access Memories", meta.Album)
	assert.Equal(t, "Columbia", meta.Label)
	assert.Equal(t, []string{"Electro", "Dance"}, meta.Genres)
	assert.Equal(t, "Monday, March 15, 2021", meta.ReleaseDate)
	assert.Equal(t, "USQX91300108", meta.ISRC)
	assert.Equal(t, "886443927087", meta.UPC)
	assert.Equal(t, "5CMjjywI0eZMixPeqNd75R", meta.SpotifyTrackID)

	firstLine := strings.Split(meta.Info(), "\n")[0]
	assert.Equal(t, "<b>Lose Yourself to Dance - Daft Punk ft. Pharrell Williams</b>", firstLine)
}

func TestParse_MalformedGenresAreIgnored(t *testing.T) {
	body := strings.Replace(successBody, `[{"name": "Electro"}, {"name": "Dance"}]`, `"Electro"`, 1)
	p := New(zerolog.Nop())

	meta, err := p.Parse(decode(t, body))
	require.NoError(t, err)

	assert.Nil(t, meta.Genres)
	info := meta.Info()
	assert.NotContains(t, info, "Genres: ")
	assert.Contains(t, info, "<b>Lose Yourself to Dance - Daft Punk ft. Pharrell Williams</b>")
	assert.Contains(t, info, "Album: Random Access Memories")
	assert.Contains(t, info, "Release: Monday, March 15, 2021")
	assert.Contains(t, info, "Label: Columbia")
}

func TestParse_MissingGenres(t *testing.T) {
	body := strings.Replace(successBody, `"genres": [{"name": "Electro"}, {"name": "Dance"}],`, ``, 1)
	p := New(zerolog.Nop())

	meta, err := p.Parse(decode(t, body))
	require.NoError(t, err)
	assert.Empty(t, meta.Genres)
}

func TestParse_MalformedArtistsIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		artists string
	}{
		{name: "not a list", artists: `"Daft Punk"`},
		{name: "null", artists: `null`},
		{name: "entry without name", artists: `[{"id": 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(successBody, `[{"name": "Daft Punk"}, {"name": "Pharrell Williams"}]`, tt.artists, 1)
			_, err := New(zerolog.Nop()).Parse(decode(t, body))
			require.ErrorIs(t, err, recerrors.ErrMalformedArtists)
		})
	}
}

func TestParse_InvalidReleaseDate(t *testing.T) {
	body := strings.Replace(successBody, `"2021-03-15"`, `"not-a-date"`, 1)

	_, err := New(zerolog.Nop()).Parse(decode(t, body))

	var dateErr *recerrors.DateFormatError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "not-a-date", dateErr.Value)
}

func TestParse_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind recerrors.RecognitionKind
		msg  string
	}{
		{
			name: "no result",
			body: `{"status": {"msg": "No result", "code": 1001}}`,
			kind: recerrors.RecognitionFailed,
			msg:  "No result",
		},
		{
			name: "fingerprint failure",
			body: `{"status": {"msg": "Can't generate fingerprint", "code": 2004}}`,
			kind: recerrors.RecognitionFailed,
			msg:  "Can't generate fingerprint",
		},
		{
			name: "decode failure",
			body: `{"status": {"msg": "Can't decode audio", "code": 2002}}`,
			kind: recerrors.RecognitionFailed,
			msg:  "Can't decode audio",
		},
		{
			name: "service error",
			body: `{"status": {"msg": "Http Error", "code": 3000}}`,
			kind: recerrors.RecognitionService,
			msg:  "Http Error",
		},
		{
			name: "unmapped code",
			body: `{"status": {"msg": "Something new", "code": 9999}}`,
			kind: recerrors.RecognitionUnknown,
			msg:  "Something new",
		},
		{
			name: "success without matches",
			body: `{"status": {"msg": "Success", "code": 0}, "metadata": {"music": []}}`,
			kind: recerrors.RecognitionFailed,
			msg:  "No result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(zerolog.Nop()).Parse(decode(t, tt.body))

			var recErr *recerrors.RecognitionProviderError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, tt.kind, recErr.Kind)
			assert.Equal(t, tt.msg, recErr.Error())
		})
	}
}

func TestParse_OptionalFieldsAbsent(t *testing.T) {
	body := `{"status": {"code": 0, "msg": "Success"}, "metadata": {"music": [{"title": "Lost", "artists": [{"name": "Vosai"}]}]}}`

	meta, err := New(zerolog.Nop()).Parse(decode(t, body))
	require.NoError(t, err)

	assert.Empty(t, meta.Album)
	assert.Empty(t, meta.ReleaseDate)
	assert.Empty(t, meta.SpotifyTrackID)
	assert.Equal(t, "<b>Lost - Vosai</b>", meta.Info())
}
