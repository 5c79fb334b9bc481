package rask

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/rask-sdk-go/internal/auth"
	"github.com/MimeLyc/rask-sdk-go/pkg/log"
)

// fakeRask serves the token endpoint and the resource API from one server.
type fakeRask struct {
	*httptest.Server
	mux       *http.ServeMux
	exchanges atomic.Int32
	rejectAll atomic.Bool
	expiresIn atomic.Int32
}

func newFakeRask(t *testing.T) *fakeRask {
	f := &fakeRask{mux: http.NewServeMux()}
	f.expiresIn.Store(3600)
	f.mux.HandleFunc("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.exchanges.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if f.rejectAll.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("token-%d", n),
			"token_type":   "Bearer",
			"expires_in":   f.expiresIn.Load(),
		})
	})
	f.Server = httptest.NewServer(f.mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeRask) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

func (f *fakeRask) client(t *testing.T) *Client {
	c, err := NewClient(&Config{
		ClientID:     "id",
		ClientSecret: "secret",
		BaseURL:      f.URL,
		TokenURL:     f.URL + "/oauth2/token",
	}, WithLogger(log.NewLoggerTo(io.Discard, log.LevelDebug)))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const creditsJSON = `{"minutes":{"total":100,"used":40},"video":{"total":5,"used":1},"lipsync_free_minutes":{"total":3,"used":0}}`

func TestNewClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil", nil},
		{"missing id", &Config{ClientSecret: "s"}},
		{"missing secret", &Config{ClientID: "i"}},
		{"bad base url", &Config{ClientID: "i", ClientSecret: "s", BaseURL: "ftp://x"}},
		{"bad token url", &Config{ClientID: "i", ClientSecret: "s", TokenURL: "not a url"}},
		{"negative timeout", &Config{ClientID: "i", ClientSecret: "s", Timeout: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	cfg := &Config{ClientID: "i", ClientSecret: "s"}
	c, err := NewClient(cfg)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTokenURL, c.config.TokenURL)
	assert.Equal(t, DefaultTimeout, c.config.Timeout)
	assert.Equal(t, DefaultUploadTimeout, c.config.UploadTimeout)
	assert.Equal(t, DefaultScopes(), c.config.Scopes)
	assert.Empty(t, cfg.BaseURL, "caller's config is not modified")
	assert.False(t, c.Authenticated())
}

func TestClient_AuthenticatesOnFirstCall(t *testing.T) {
	f := newFakeRask(t)
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(creditsJSON))
	})
	c := f.client(t)

	credits, err := c.GetCredits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60, credits.Minutes.Remaining())
	assert.Equal(t, 3, credits.LipsyncFreeMinutes.Total)
	assert.Equal(t, int32(1), f.exchanges.Load())
	assert.True(t, c.Authenticated())

	_, err = c.GetCredits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.exchanges.Load(), "token is reused")
}

func TestClient_ReauthenticatesOnceAfterExpiredToken(t *testing.T) {
	f := newFakeRask(t)
	var calls atomic.Int32
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
			return
		}
		assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(creditsJSON))
	})
	c := f.client(t)
	require.NoError(t, c.Authenticate(context.Background()))
	require.Equal(t, int32(1), f.exchanges.Load())

	credits, err := c.GetCredits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, credits.Minutes.Total)
	assert.Equal(t, int32(2), f.exchanges.Load(), "exactly one re-authentication")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ShortLivedTokenIsUsed(t *testing.T) {
	f := newFakeRask(t)
	f.expiresIn.Store(5)
	var calls atomic.Int32
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(creditsJSON))
	})
	c := f.client(t)

	credits, err := c.GetCredits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, credits.Minutes.Total)
	assert.Equal(t, int32(1), f.exchanges.Load())
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, c.Authenticated())
}

func TestClient_SecondRejectionPropagates(t *testing.T) {
	f := newFakeRask(t)
	var calls atomic.Int32
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
	})
	c := f.client(t)
	require.NoError(t, c.Authenticate(context.Background()))

	_, err := c.GetCredits(context.Background())
	require.Error(t, err)
	assert.False(t, auth.IsTokenError(err))
	assert.Equal(t, "401: Token expired", err.Error())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Token expired", apiErr.Detail)

	assert.Equal(t, int32(2), f.exchanges.Load())
	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, c.Authenticated())
}

func TestClient_AuthenticationFailure(t *testing.T) {
	f := newFakeRask(t)
	var calls atomic.Int32
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	f.rejectAll.Store(true)
	c := f.client(t)

	_, err := c.GetCredits(context.Background())
	require.Error(t, err)

	authErr, ok := AsAuthenticationError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "Authentication error occurred.", authErr.Detail)
	assert.Equal(t, int32(1), f.exchanges.Load(), "failed exchange is not retried")
	assert.Zero(t, calls.Load())
}

func TestClient_OtherErrorsAreNotRetried(t *testing.T) {
	f := newFakeRask(t)
	var calls atomic.Int32
	projectID := uuid.New()
	f.handle("GET /v2/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Project not found"})
	})
	c := f.client(t)

	_, err := c.GetProject(context.Background(), projectID)
	require.Error(t, err)
	assert.False(t, auth.IsTokenError(err))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "404: Project not found", apiErr.Error())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(1), f.exchanges.Load())
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	f := newFakeRask(t)
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	c := f.client(t)

	_, err := c.GetCredits(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, UnknownErrorDetail, apiErr.Detail)
}

func TestClient_ValidationRunsBeforeNetwork(t *testing.T) {
	f := newFakeRask(t)
	var calls atomic.Int32
	f.handle("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	c := f.client(t)

	_, err := c.CreateTranscription(context.Background(), TranscriptionCreate{Segments: []SegmentCreate{
		SourceSegment("hi", "en", "00:00:02,000000", "00:00:01,000000"),
	}})
	_, ok := AsValidationError(err)
	require.True(t, ok)

	_, err = c.CreateGlossary(context.Background(), GlossaryCreate{Name: " ", SrcLang: "en", DstLang: "de", Entries: map[string]string{}})
	_, ok = AsValidationError(err)
	require.True(t, ok)

	assert.Zero(t, calls.Load())
	assert.Zero(t, f.exchanges.Load())
}

func TestClient_ConcurrentCallsShareToken(t *testing.T) {
	f := newFakeRask(t)
	f.handle("GET /v2/credits", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(creditsJSON))
	})
	c := f.client(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetCredits(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, f.exchanges.Load(), int32(10))
	assert.True(t, c.Authenticated())
}

func TestClient_ListProjectsQuery(t *testing.T) {
	f := newFakeRask(t)
	f.handle("GET /v2/projects", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "20", q.Get("offset"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "demo", q.Get("name"))
		_, _ = w.Write([]byte(`{"total":21,"offset":20,"projects":[{"id":"3b241101-e2bb-4255-8caf-4136c566a962","name":"demo","source_type":"local","status":"merging_done","created_at":"2024-05-01T10:00:00.123456"}]}`))
	})
	c := f.client(t)

	list, err := c.ListProjects(context.Background(), ProjectListQuery{Offset: 20, Name: "demo"})
	require.NoError(t, err)
	assert.Equal(t, 21, list.Total)
	require.Len(t, list.Projects, 1)
	p := list.Projects[0]
	assert.Equal(t, ProjectSourceLocal, p.SourceType)
	assert.True(t, p.Status.Terminal())
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, 2024, p.CreatedAt.Time().Year())
}

func TestClient_PatchProjectPath(t *testing.T) {
	f := newFakeRask(t)
	projectID := uuid.New()
	voiceID := uuid.New()
	f.handle("PATCH /v2/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, projectID.String(), r.PathValue("id"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"SPEAKER_00": voiceID.String()}, body["voice"])
		writeJSON(w, http.StatusOK, map[string]any{"id": projectID, "name": "p", "source_type": "any"})
	})
	c := f.client(t)

	p, err := c.PatchProject(context.Background(), projectID, ProjectPatch{Voice: map[string]uuid.UUID{"SPEAKER_00": voiceID}})
	require.NoError(t, err)
	assert.Equal(t, projectID, p.ID)

	_, err = c.PatchProject(context.Background(), projectID, ProjectPatch{Voice: map[string]uuid.UUID{"narrator": voiceID}})
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestClient_CreateTranscriptionSendsNormalizedSegments(t *testing.T) {
	f := newFakeRask(t)
	transcriptionID := uuid.New()
	f.handle("POST /v2/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		var body TranscriptionCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Segments, 1)
		assert.Equal(t, "00:00:01,000000", body.Segments[0].Start)
		assert.Equal(t, "SPEAKER_1", *body.Segments[0].Speaker)
		writeJSON(w, http.StatusOK, map[string]any{"id": transcriptionID, "segments": []any{}})
	})
	c := f.client(t)

	seg := SourceSegment("hello", "en", " 00:00:01,000000", "00:00:02,5 ").WithSpeaker("SPEAKER_1 ")
	got, err := c.CreateTranscription(context.Background(), TranscriptionCreate{Segments: []SegmentCreate{seg}})
	require.NoError(t, err)
	assert.Equal(t, transcriptionID, got.ID)
}

func TestClient_UploadIsReplayedAfterReauthentication(t *testing.T) {
	f := newFakeRask(t)
	var calls atomic.Int32
	mediaID := uuid.New()
	f.handle("POST /api/library/v1/media", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "video", r.URL.Query().Get("kind"))
		file, header, err := r.FormFile("data")
		require.NoError(t, err)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "video-bytes", string(content))
		assert.Equal(t, "clip.mp4", header.Filename)

		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": mediaID, "user_id": uuid.New(), "path": "p", "name": "clip.mp4",
			"kind": "video", "status": "processing", "mime_type": "video/mp4",
			"created_at": "2024-05-01T10:00:00Z", "updated_at": "2024-05-01T10:00:00Z",
			"meta": map[string]any{"size_bytes": 11, "duration_seconds": 1, "audio_rate": 44100,
				"audio_layout": "stereo", "audio_channels": 2, "audio_codec_name": "aac",
				"video_codec_name": "h264", "video_frame_rate": 25, "video_frame_width": 1920, "video_frame_height": 1080},
		})
	})
	c := f.client(t)
	require.NoError(t, c.Authenticate(context.Background()))

	media, err := c.CreateMediaFile(context.Background(), MediaUpload{
		File: bytes.NewReader([]byte("video-bytes")),
		Name: "clip.mp4",
		Kind: MediaKindVideo,
	})
	require.NoError(t, err)
	assert.Equal(t, mediaID, media.ID)
	assert.Equal(t, int32(2), calls.Load())

	meta, ok := media.Meta.(*VideoMeta)
	require.True(t, ok)
	assert.Equal(t, "h264", meta.VideoCodecName)
	assert.Equal(t, "aac", meta.AudioCodecName)
}

func TestClient_CreateTranscriptionSRT(t *testing.T) {
	f := newFakeRask(t)
	f.handle("POST /v2/transcriptions/srt", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("src_lang"))
		assert.False(t, r.URL.Query().Has("dst_lang"))
		file, _, err := r.FormFile("src")
		require.NoError(t, err)
		content, _ := io.ReadAll(file)
		assert.True(t, strings.HasPrefix(string(content), "1\n"))
		_, _, err = r.FormFile("dst")
		assert.Error(t, err)
		writeJSON(w, http.StatusOK, map[string]any{"id": uuid.New(), "segments": []any{}})
	})
	c := f.client(t)

	_, err := c.CreateTranscriptionSRT(context.Background(), SRTUpload{
		Src:     strings.NewReader("1\n00:00:01,000 --> 00:00:02,000\nhi\n"),
		SrcLang: "en",
	})
	require.NoError(t, err)

	_, err = c.CreateTranscriptionSRT(context.Background(), SRTUpload{})
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestClient_SegmentsAndGlossaries(t *testing.T) {
	f := newFakeRask(t)
	projectID, segmentID, glossaryID := uuid.New(), uuid.New(), uuid.New()

	f.handle("DELETE /v2/projects/{id}/transcription/segments/{segment}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, segmentID.String(), r.PathValue("segment"))
		writeJSON(w, http.StatusOK, map[string]any{"id": segmentID})
	})
	f.handle("PATCH /v2/projects/{id}/transcription/segments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"segments": []map[string]any{{
			"id": segmentID, "start": "00:00:01,000000", "end": "00:00:03,000000", "status": "updated",
			"dst": map[string]any{"text": "hallo", "lang": "de"},
		}}})
	})
	f.handle("PUT /v2/glossaries/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Terms", body["name"])
		assert.NotContains(t, body, "entries")
		writeJSON(w, http.StatusOK, map[string]any{"id": glossaryID, "name": "Terms", "version": 2,
			"src_lang": "en", "dst_lang": "de", "entries": map[string]string{"hello": "hallo"}})
	})
	c := f.client(t)
	ctx := context.Background()

	deleted, err := c.DeleteProjectTranscriptionSegment(ctx, projectID, segmentID)
	require.NoError(t, err)
	assert.Equal(t, segmentID, deleted.ID)

	start, end := "00:00:01,000000", "00:00:03,000000"
	tr, err := c.PatchProjectTranscriptionSegments(ctx, projectID, TranscriptionSegmentsPatch{
		Segments: []SegmentPatch{{ID: segmentID, Start: &start, End: &end}},
	})
	require.NoError(t, err)
	require.Len(t, tr.Segments, 1)
	assert.Equal(t, SegmentStatusUpdated, tr.Segments[0].Status)

	g, err := c.UpdateGlossary(ctx, glossaryID, GlossaryUpdate{Name: "  Terms "})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Version)
}
