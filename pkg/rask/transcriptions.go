package rask

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/MimeLyc/rask-sdk-go/internal/validate"
)

// SegmentText is the text of a segment in one language.
type SegmentText struct {
	Text string `json:"text"`
	Lang string `json:"lang,omitempty"`
}

// SegmentCreate is a new transcription segment. At least one of Src and Dst
// must be set; the constructors below cover the valid shapes.
type SegmentCreate struct {
	Src     *SegmentText `json:"src,omitempty"`
	Dst     *SegmentText `json:"dst,omitempty"`
	Speaker *string      `json:"speaker,omitempty"`
	Start   string       `json:"start"`
	End     string       `json:"end"`
}

// SourceSegment builds a segment holding only source-language text.
func SourceSegment(text, lang, start, end string) SegmentCreate {
	return SegmentCreate{Src: &SegmentText{Text: text, Lang: lang}, Start: start, End: end}
}

// TranslatedSegment builds a segment holding only destination-language text.
func TranslatedSegment(text, lang, start, end string) SegmentCreate {
	return SegmentCreate{Dst: &SegmentText{Text: text, Lang: lang}, Start: start, End: end}
}

// BilingualSegment builds a segment holding both texts.
func BilingualSegment(src, dst SegmentText, start, end string) SegmentCreate {
	return SegmentCreate{Src: &src, Dst: &dst, Start: start, End: end}
}

// WithSpeaker returns a copy of s assigned to speaker.
func (s SegmentCreate) WithSpeaker(speaker string) SegmentCreate {
	s.Speaker = &speaker
	return s
}

// Validate checks the segment and returns it with trimmed timestamps and
// speaker.
func (s SegmentCreate) Validate() (SegmentCreate, error) {
	speaker, err := validate.Speaker(s.Speaker)
	if err != nil {
		return SegmentCreate{}, err
	}

	start, end, err := validate.TimeRange(s.Start, s.End)
	if err != nil {
		return SegmentCreate{}, err
	}

	if s.Src == nil && s.Dst == nil {
		return SegmentCreate{}, validate.Errorf("", "At least one of src or dst must be specified.")
	}

	s.Speaker, s.Start, s.End = speaker, start, end
	return s, nil
}

// SegmentPatch updates an existing segment. Start and End must be given
// together.
type SegmentPatch struct {
	ID      uuid.UUID    `json:"id"`
	Src     *SegmentText `json:"src,omitempty"`
	Dst     *SegmentText `json:"dst,omitempty"`
	Speaker *string      `json:"speaker,omitempty"`
	Start   *string      `json:"start,omitempty"`
	End     *string      `json:"end,omitempty"`
}

// Validate checks the patch and returns it with trimmed timestamps and
// speaker.
func (s SegmentPatch) Validate() (SegmentPatch, error) {
	if s.ID == uuid.Nil {
		return SegmentPatch{}, validate.Errorf("id", "A segment id is required to patch a segment.")
	}

	speaker, err := validate.Speaker(s.Speaker)
	if err != nil {
		return SegmentPatch{}, err
	}
	s.Speaker = speaker

	if s.Start == nil && s.End == nil {
		return s, nil
	}
	if s.Start == nil || s.End == nil {
		return SegmentPatch{}, validate.Errorf("",
			"Both start and end should be specified explicitly to patch segment timestamps.")
	}

	start, end, err := validate.TimeRange(*s.Start, *s.End)
	if err != nil {
		return SegmentPatch{}, err
	}
	s.Start, s.End = &start, &end
	return s, nil
}

// TranscriptionCreate is a full transcription. Either every segment names a
// speaker or none does.
type TranscriptionCreate struct {
	Segments []SegmentCreate `json:"segments"`
}

func (t TranscriptionCreate) Validate() (TranscriptionCreate, error) {
	segments, err := validateSegments(t.Segments)
	if err != nil {
		return TranscriptionCreate{}, err
	}

	withSpeaker := 0
	for _, s := range segments {
		if s.Speaker != nil {
			withSpeaker++
		}
	}
	if withSpeaker != 0 && withSpeaker != len(segments) {
		return TranscriptionCreate{}, validate.Errorf("segments", "Either all or none speakers should be specified.")
	}

	return TranscriptionCreate{Segments: segments}, nil
}

// TranscriptionSegmentsCreate adds segments to a project's transcription.
type TranscriptionSegmentsCreate struct {
	Segments []SegmentCreate `json:"segments"`
}

func (t TranscriptionSegmentsCreate) Validate() (TranscriptionSegmentsCreate, error) {
	segments, err := validateSegments(t.Segments)
	if err != nil {
		return TranscriptionSegmentsCreate{}, err
	}
	return TranscriptionSegmentsCreate{Segments: segments}, nil
}

// TranscriptionSegmentsPatch updates segments of a project's transcription.
type TranscriptionSegmentsPatch struct {
	Segments []SegmentPatch `json:"segments"`
}

func (t TranscriptionSegmentsPatch) Validate() (TranscriptionSegmentsPatch, error) {
	segments := make([]SegmentPatch, len(t.Segments))
	for i, s := range t.Segments {
		v, err := s.Validate()
		if err != nil {
			return TranscriptionSegmentsPatch{}, segmentError(i, err)
		}
		segments[i] = v
	}
	return TranscriptionSegmentsPatch{Segments: segments}, nil
}

func validateSegments(in []SegmentCreate) ([]SegmentCreate, error) {
	segments := make([]SegmentCreate, len(in))
	for i, s := range in {
		v, err := s.Validate()
		if err != nil {
			return nil, segmentError(i, err)
		}
		segments[i] = v
	}
	return segments, nil
}

// segmentError qualifies a segment's validation error with its position.
func segmentError(i int, err error) error {
	verr, ok := validate.AsError(err)
	if !ok {
		return err
	}
	field := fmt.Sprintf("segments[%d]", i)
	if verr.Field != "" {
		field += "." + verr.Field
	}
	return &validate.Error{Field: field, Message: verr.Message}
}

// Segment is a transcription segment returned by the API.
type Segment struct {
	ID      uuid.UUID     `json:"id"`
	Src     *SegmentText  `json:"src,omitempty"`
	Dst     *SegmentText  `json:"dst,omitempty"`
	Speaker *string       `json:"speaker,omitempty"`
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Status  SegmentStatus `json:"status"`
}

// Transcription is the transcription of a project.
type Transcription struct {
	Segments []Segment `json:"segments"`
}

// TranscriptionID is a created transcription.
type TranscriptionID struct {
	ID       uuid.UUID `json:"id"`
	Segments []Segment `json:"segments"`
}

// SegmentID identifies a deleted segment.
type SegmentID struct {
	ID uuid.UUID `json:"id"`
}

// SRTUpload creates a transcription from SRT files. At least one of Src and
// Dst is required; both are rewound before each attempt.
type SRTUpload struct {
	Src     io.ReadSeeker
	SrcName string
	SrcLang string

	Dst     io.ReadSeeker
	DstName string
	DstLang string
}

func (u SRTUpload) Validate() error {
	if u.Src == nil && u.Dst == nil {
		return validate.Errorf("", "At least one of src or dst SRT files must be provided.")
	}
	return nil
}

func (u SRTUpload) files() []formFile {
	var files []formFile
	if u.Src != nil {
		files = append(files, formFile{field: "src", name: defaultName(u.SrcName, "src.srt"), content: u.Src})
	}
	if u.Dst != nil {
		files = append(files, formFile{field: "dst", name: defaultName(u.DstName, "dst.srt"), content: u.Dst})
	}
	return files
}

func defaultName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func transcriptionSegmentsPath(projectID uuid.UUID) string {
	return projectPath(projectID) + "/transcription/segments"
}

// CreateTranscription creates a standalone transcription that a project can
// reference.
func (c *Client) CreateTranscription(ctx context.Context, data TranscriptionCreate) (*TranscriptionID, error) {
	data, err := data.Validate()
	if err != nil {
		return nil, err
	}
	return call[TranscriptionID](ctx, c, request{method: http.MethodPost, path: "/v2/transcriptions", body: data})
}

// CreateTranscriptionSRT creates a transcription from SRT files. The upload
// runs under Config.UploadTimeout.
func (c *Client) CreateTranscriptionSRT(ctx context.Context, upload SRTUpload) (*TranscriptionID, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if upload.SrcLang != "" {
		query.Set("src_lang", upload.SrcLang)
	}
	if upload.DstLang != "" {
		query.Set("dst_lang", upload.DstLang)
	}

	return call[TranscriptionID](ctx, c, request{
		method:  http.MethodPost,
		path:    "/v2/transcriptions/srt",
		query:   query,
		files:   upload.files(),
		timeout: c.config.UploadTimeout,
	})
}

// GetProjectTranscription returns the transcription of a project.
func (c *Client) GetProjectTranscription(ctx context.Context, projectID uuid.UUID) (*Transcription, error) {
	return call[Transcription](ctx, c, request{method: http.MethodGet, path: projectPath(projectID) + "/transcription"})
}

// AddProjectTranscriptionSegments adds segments to a project's transcription.
func (c *Client) AddProjectTranscriptionSegments(ctx context.Context, projectID uuid.UUID, data TranscriptionSegmentsCreate) (*Transcription, error) {
	data, err := data.Validate()
	if err != nil {
		return nil, err
	}
	return call[Transcription](ctx, c, request{
		method: http.MethodPost,
		path:   transcriptionSegmentsPath(projectID),
		body:   data,
	})
}

// PatchProjectTranscriptionSegments updates segments of a project's
// transcription.
func (c *Client) PatchProjectTranscriptionSegments(ctx context.Context, projectID uuid.UUID, data TranscriptionSegmentsPatch) (*Transcription, error) {
	data, err := data.Validate()
	if err != nil {
		return nil, err
	}
	return call[Transcription](ctx, c, request{
		method: http.MethodPatch,
		path:   transcriptionSegmentsPath(projectID),
		body:   data,
	})
}

// DeleteProjectTranscriptionSegment deletes a segment of a project's
// transcription.
func (c *Client) DeleteProjectTranscriptionSegment(ctx context.Context, projectID, segmentID uuid.UUID) (*SegmentID, error) {
	return call[SegmentID](ctx, c, request{
		method: http.MethodDelete,
		path:   transcriptionSegmentsPath(projectID) + "/" + segmentID.String(),
	})
}
