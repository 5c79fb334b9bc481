package rask

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptionCreate_SpeakersAllOrNone(t *testing.T) {
	a := SourceSegment("a", "en", "00:00:00,0", "00:00:01,0")
	b := SourceSegment("b", "en", "00:00:01,0", "00:00:02,0")

	tests := []struct {
		name     string
		segments []SegmentCreate
		wantErr  bool
	}{
		{"none", []SegmentCreate{a, b}, false},
		{"all", []SegmentCreate{a.WithSpeaker("SPEAKER_00"), b.WithSpeaker("SPEAKER_01")}, false},
		{"mixed", []SegmentCreate{a.WithSpeaker("SPEAKER_00"), b}, true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TranscriptionCreate{Segments: tt.segments}.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			verr, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, "segments", verr.Field)
			assert.Equal(t, "Either all or none speakers should be specified.", verr.Message)
		})
	}
}

func TestTranscriptionSegmentsCreate_AllowsMixedSpeakers(t *testing.T) {
	a := SourceSegment("a", "en", "00:00:00,0", "00:00:01,0").WithSpeaker("SPEAKER_00")
	b := TranslatedSegment("b", "de", "00:00:01,0", "00:00:02,0")

	got, err := TranscriptionSegmentsCreate{Segments: []SegmentCreate{a, b}}.Validate()
	require.NoError(t, err)
	assert.Len(t, got.Segments, 2)
}

func TestSegmentCreate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		segment   SegmentCreate
		wantField string
		wantMsg   string
	}{
		{
			name:      "bad speaker",
			segment:   SourceSegment("a", "en", "00:00:00,0", "00:00:01,0").WithSpeaker("narrator"),
			wantField: "segments[0].speaker",
			wantMsg:   "Speaker narrator must start with SPEAKER_.",
		},
		{
			name:      "bad start",
			segment:   SourceSegment("a", "en", "0:0:0", "00:00:01,0"),
			wantField: "segments[0].start",
			wantMsg:   "Invalid timestamp format for segment start: 0:0:0.",
		},
		{
			name:      "reversed",
			segment:   SourceSegment("a", "en", "00:00:05,0", "00:00:01,0"),
			wantField: "segments[0]",
			wantMsg:   "Segment start must be less than segment end.",
		},
		{
			name:      "no text",
			segment:   SegmentCreate{Start: "00:00:00,0", End: "00:00:01,0"},
			wantField: "segments[0]",
			wantMsg:   "At least one of src or dst must be specified.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TranscriptionSegmentsCreate{Segments: []SegmentCreate{tt.segment}}.Validate()
			verr, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestSegmentPatch_Validate(t *testing.T) {
	id := uuid.New()
	start, end := " 00:00:01,0", "00:00:02,0 "

	got, err := SegmentPatch{ID: id, Start: &start, End: &end}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "00:00:01,0", *got.Start)
	assert.Equal(t, "00:00:02,0", *got.End)

	got, err = SegmentPatch{ID: id, Dst: &SegmentText{Text: "x", Lang: "de"}}.Validate()
	require.NoError(t, err)
	assert.Nil(t, got.Start)

	_, err = SegmentPatch{ID: id, Start: &start}.Validate()
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Both start and end should be specified explicitly to patch segment timestamps.", verr.Message)

	_, err = SegmentPatch{ID: id, Start: &end, End: &start}.Validate()
	_, ok = AsValidationError(err)
	assert.True(t, ok)

	_, err = SegmentPatch{}.Validate()
	verr, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "id", verr.Field)
}

func TestGlossaryCreate_Validate(t *testing.T) {
	valid := GlossaryCreate{Name: " Terms ", SrcLang: "en", DstLang: "de", Entries: map[string]string{"hello": "hallo"}}
	got, err := valid.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Terms", got.Name)

	bad := valid
	bad.Entries = map[string]string{"hello": "hal\tlo"}
	_, err = bad.Validate()
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "entries", verr.Field)

	bad = valid
	bad.DstLang = ""
	_, err = bad.Validate()
	_, ok = AsValidationError(err)
	assert.True(t, ok)
}

func TestGlossaryUpdate_OmitsNilEntries(t *testing.T) {
	b, err := json.Marshal(GlossaryUpdate{Name: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(b))

	b, err = json.Marshal(GlossaryUpdate{Name: "x", Entries: map[string]string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","entries":{}}`, string(b))
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"string detail", `{"detail":"Not enough credits"}`, "Not enough credits"},
		{"list detail", `{"detail": [ {"loc": ["body"], "msg": "field required"} ]}`, `[{"loc":["body"],"msg":"field required"}]`},
		{"no detail", `{"message":"oops"}`, UnknownErrorDetail},
		{"null detail", `{"detail":null}`, UnknownErrorDetail},
		{"not json", `Internal Server Error`, UnknownErrorDetail},
		{"empty", ``, UnknownErrorDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(422, []byte(tt.body))
			assert.Equal(t, 422, err.StatusCode)
			assert.Equal(t, tt.detail, err.Detail)
		})
	}
}

func TestMedia_MetaVariants(t *testing.T) {
	tests := []struct {
		name  string
		meta  string
		check func(t *testing.T, m MediaMeta)
	}{
		{
			name: "audio",
			meta: `{"size_bytes":10,"duration_seconds":3,"audio_rate":48000,"audio_layout":"mono","audio_channels":1,"audio_codec_name":"opus"}`,
			check: func(t *testing.T, m MediaMeta) {
				a, ok := m.(*AudioMeta)
				require.True(t, ok)
				assert.Equal(t, "opus", a.AudioCodecName)
			},
		},
		{
			name: "image",
			meta: `{"size_bytes":10,"image_width":640,"image_height":480,"image_format":"png"}`,
			check: func(t *testing.T, m MediaMeta) {
				img, ok := m.(*ImageMeta)
				require.True(t, ok)
				assert.Equal(t, 640, img.ImageWidth)
			},
		},
		{
			name: "unknown",
			meta: `{"pages":12}`,
			check: func(t *testing.T, m MediaMeta) {
				raw, ok := m.(RawMeta)
				require.True(t, ok)
				assert.Equal(t, float64(12), raw["pages"])
			},
		},
		{
			name: "null",
			meta: `null`,
			check: func(t *testing.T, m MediaMeta) {
				assert.Nil(t, m)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"id":"3b241101-e2bb-4255-8caf-4136c566a962","name":"f","kind":"audio","status":"ready",` +
				`"created_at":"2024-05-01T10:00:00","updated_at":"2024-05-01T10:00:00+02:00","meta":` + tt.meta + `}`
			var m Media
			require.NoError(t, json.Unmarshal([]byte(body), &m))
			assert.Equal(t, "f", m.Name)
			assert.Equal(t, 8, m.UpdatedAt.Time().UTC().Hour())
			tt.check(t, m.Meta)
		})
	}
}

func TestProjectStatus_Terminal(t *testing.T) {
	assert.True(t, ProjectStatusMergingDone.Terminal())
	assert.True(t, ProjectStatusFailed.Terminal())
	assert.False(t, ProjectStatusTranslationStarted.Terminal())
}
