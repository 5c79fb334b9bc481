package rask

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/MimeLyc/rask-sdk-go/internal/validate"
)

// MediaMeta is the technical metadata of a media file. It is one of
// *VideoMeta, *AudioMeta, *ImageMeta, or RawMeta when the shape is unknown.
type MediaMeta interface {
	mediaMeta()
}

// AudioMeta describes an audio track.
type AudioMeta struct {
	SizeBytes       int64  `json:"size_bytes"`
	DurationSeconds int    `json:"duration_seconds"`
	AudioRate       int    `json:"audio_rate"`
	AudioLayout     string `json:"audio_layout"`
	AudioChannels   int    `json:"audio_channels"`
	AudioCodecName  string `json:"audio_codec_name"`
}

// VideoMeta describes a video with its audio track.
type VideoMeta struct {
	AudioMeta
	VideoCodecName   string `json:"video_codec_name"`
	VideoFrameRate   int    `json:"video_frame_rate"`
	VideoFrameWidth  int    `json:"video_frame_width"`
	VideoFrameHeight int    `json:"video_frame_height"`
}

// ImageMeta describes an image.
type ImageMeta struct {
	SizeBytes   int64  `json:"size_bytes"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
	ImageFormat string `json:"image_format"`
}

// RawMeta holds metadata that matches none of the known shapes.
type RawMeta map[string]any

func (*AudioMeta) mediaMeta() {}
func (*VideoMeta) mediaMeta() {}
func (*ImageMeta) mediaMeta() {}
func (RawMeta) mediaMeta()    {}

// decodeMeta picks the metadata variant by its distinguishing fields and
// falls back to RawMeta when the typed decode fails.
func decodeMeta(raw json.RawMessage) (MediaMeta, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	var typed MediaMeta
	switch {
	case fields["video_codec_name"] != nil:
		typed = &VideoMeta{}
	case fields["image_width"] != nil:
		typed = &ImageMeta{}
	case fields["audio_codec_name"] != nil:
		typed = &AudioMeta{}
	}
	if typed != nil {
		if err := json.Unmarshal(raw, typed); err == nil {
			return typed, nil
		}
	}

	var rawMeta RawMeta
	if err := json.Unmarshal(raw, &rawMeta); err != nil {
		return nil, err
	}
	return rawMeta, nil
}

// Media is an uploaded media file.
type Media struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	PreviewID *uuid.UUID  `json:"preview_id,omitempty"`
	Path      string      `json:"path"`
	Name      string      `json:"name"`
	URL       string      `json:"url,omitempty"`
	Kind      MediaKind   `json:"kind"`
	Status    MediaStatus `json:"status"`
	Meta      MediaMeta   `json:"meta"`
	MimeType  string      `json:"mime_type"`
	CreatedAt Time        `json:"created_at"`
	UpdatedAt Time        `json:"updated_at"`
	DeletedAt *Time       `json:"deleted_at,omitempty"`
	Preview   *Media      `json:"preview,omitempty"`
}

// UnmarshalJSON decodes the meta field into its MediaMeta variant.
func (m *Media) UnmarshalJSON(b []byte) error {
	type alias Media
	aux := struct {
		*alias
		Meta json.RawMessage `json:"meta"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	meta, err := decodeMeta(aux.Meta)
	if err != nil {
		return err
	}
	m.Meta = meta
	return nil
}

// MediaUpload is a local file to upload as media.
type MediaUpload struct {
	// File is rewound before each attempt.
	File io.ReadSeeker

	// Name is the uploaded file name; defaults to the base name of an
	// *os.File, or "upload".
	Name string

	// Kind is optional; the server infers it when empty.
	Kind MediaKind
}

func (u MediaUpload) Validate() error {
	if u.File == nil {
		return validate.Errorf("data", "A file is required to create media.")
	}
	return nil
}

func (u MediaUpload) fileName() string {
	if u.Name != "" {
		return u.Name
	}
	if f, ok := u.File.(*os.File); ok {
		return filepath.Base(f.Name())
	}
	return "upload"
}

// MediaCreateLink creates media from a public link.
type MediaCreateLink struct {
	Link string    `json:"link"`
	Kind MediaKind `json:"kind,omitempty"`
	Name string    `json:"name,omitempty"`
}

func (l MediaCreateLink) Validate() error {
	u, err := url.Parse(l.Link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validate.Errorf("link", "Invalid media link: %s.", l.Link)
	}
	return nil
}

// CreateMediaFile uploads a file as new media. The upload runs under
// Config.UploadTimeout.
func (c *Client) CreateMediaFile(ctx context.Context, upload MediaUpload) (*Media, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if upload.Kind != "" {
		query.Set("kind", string(upload.Kind))
	}

	return call[Media](ctx, c, request{
		method:  http.MethodPost,
		path:    "/api/library/v1/media",
		query:   query,
		files:   []formFile{{field: "data", name: upload.fileName(), content: upload.File}},
		timeout: c.config.UploadTimeout,
	})
}

// CreateMediaLink creates media from a link.
func (c *Client) CreateMediaLink(ctx context.Context, data MediaCreateLink) (*Media, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return call[Media](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/library/v1/media/link",
		body:   data,
	})
}

// GetMedia returns media by id.
func (c *Client) GetMedia(ctx context.Context, mediaID uuid.UUID) (*Media, error) {
	return call[Media](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/library/v1/media/" + mediaID.String(),
	})
}
