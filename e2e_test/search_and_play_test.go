//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/chord"
	"github.com/jsphweid/voicedex/config"
	"github.com/jsphweid/voicedex/constants"
	"github.com/jsphweid/voicedex/midi"
	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handler http.Handler

func TestMain(m *testing.M) {
	c, err := catalog.Load("../testdata/small.voc", catalog.DefaultOptions())
	if err != nil {
		panic(err.Error())
	}
	handler = server.New(catalog.NewStore(c), server.Options{
		DefaultOctave: constants.DefaultChordOctave,
		Midi:          midi.DefaultOptions(),
		CORS:          config.CORSConfig{AllowedOrigins: "*"},
	}).Handler()

	os.Exit(m.Run())
}

func createSearchReqBody(notes model.Notes) io.Reader {
	sr := model.SearchRequestBody{Chords: []model.Notes{notes}}
	data, err := json.Marshal(sr)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func do(req *http.Request) *http.Response {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Result()
}

func TestBasicCChordE2E(t *testing.T) {
	resp := do(httptest.NewRequest(http.MethodPost, "/search", createSearchReqBody([]uint8{48, 55, 64})))

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var searchResponse []model.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&searchResponse))
	assert.Equal([]model.SearchResponse{{
		Key: "0-4-7",
		Results: []model.SearchResult{
			{Chord: "CM", Voicing: "left-hand-A", Label: "left-hand-A - closed"},
			{Chord: "CM", Voicing: "left-hand-B", Label: "left-hand-B - open"},
		},
	}}, searchResponse)
}

// A voicing found by search, fetched as MIDI and read back, is found again.
func TestSearchPlayIdentifyE2E(t *testing.T) {
	resp := do(httptest.NewRequest(http.MethodPost, "/search", createSearchReqBody([]uint8{52, 57, 58, 62})))
	require.Equal(t, 200, resp.StatusCode)

	var found []model.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	require.Len(t, found[0].Results, 1)
	hit := found[0].Results[0]
	assert.Equal(t, "C7", hit.Chord)

	resp = do(httptest.NewRequest(http.MethodGet, "/chords/"+hit.Chord+"/voicings/"+hit.Voicing+"/midi?transpose=5", nil))
	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	s, err := midi.ReadMidi(bytes.NewReader(body))
	require.NoError(t, err)
	soundings, err := chord.GetChords(s)
	require.NoError(t, err)
	require.Len(t, soundings, 1)
	assert.Equal(t, model.Notes{57, 62, 63, 67}, soundings[0].Notes)

	resp = do(httptest.NewRequest(http.MethodPost, "/search", createSearchReqBody(soundings[0].Notes)))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	assert.Empty(t, found[0].Results)
}

func TestAliasesResolveE2E(t *testing.T) {
	for _, name := range []string{"CM", "C", "Cmaj"} {
		resp := do(httptest.NewRequest(http.MethodGet, "/chords/"+name, nil))
		require.Equal(t, 200, resp.StatusCode, name)

		var ch model.Chord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ch))
		assert.Equal(t, "CM", ch.Name)
		assert.Equal(t, []string{"C", "Cmaj"}, ch.Same)
	}
}
