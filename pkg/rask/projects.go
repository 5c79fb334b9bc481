package rask

import (
	"context"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/MimeLyc/rask-sdk-go/internal/validate"
)

// ProjectSlim is the project summary returned by ListProjects.
type ProjectSlim struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	SourceType      ProjectSourceType `json:"source_type"`
	Status          ProjectStatus     `json:"status,omitempty"`
	StatusUpdatedAt *Time             `json:"status_updated_at,omitempty"`
	CreatedAt       *Time             `json:"created_at,omitempty"`
}

// Project is a dubbing project.
type Project struct {
	ProjectSlim

	Cover              string             `json:"cover,omitempty"`
	SrcLang            string             `json:"src_lang,omitempty"`
	DstLang            string             `json:"dst_lang,omitempty"`
	NumSpeakers        *int               `json:"num_speakers,omitempty"`
	SourceURL          string             `json:"source_url,omitempty"`
	Duration           *int               `json:"duration,omitempty"`
	OriginalDuration   *int               `json:"original_duration,omitempty"`
	GlossaryID         *uuid.UUID         `json:"glossary_id,omitempty"`
	GlossaryVersion    *int               `json:"glossary_version,omitempty"`
	OriginalVideo      string             `json:"original_video,omitempty"`
	TranscriptID       *uuid.UUID         `json:"transcript_id,omitempty"`
	Voiceover          string             `json:"voiceover,omitempty"`
	TranslatedVideo    string             `json:"translated_video,omitempty"`
	TranslatedAudio    string             `json:"translated_audio,omitempty"`
	Voice              map[string]*string `json:"voice,omitempty"`
	TranslationSRTPath string             `json:"translation_srt_path,omitempty"`
	TranslationVTTPath string             `json:"translation_vtt_path,omitempty"`
}

// ProjectList is one page of projects.
type ProjectList struct {
	Total    int           `json:"total"`
	Offset   int           `json:"offset"`
	Projects []ProjectSlim `json:"projects"`
}

// ProjectListQuery selects a page of projects. Limit defaults to 10.
type ProjectListQuery struct {
	Offset int
	Limit  int
	Name   string
}

func (q ProjectListQuery) values() url.Values {
	limit := q.Limit
	if limit == 0 {
		limit = 10
	}
	v := url.Values{}
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("limit", strconv.Itoa(limit))
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	return v
}

// ProjectCreate creates a project for an uploaded video.
type ProjectCreate struct {
	VideoID      uuid.UUID  `json:"video_id"`
	Name         string     `json:"name,omitempty"`
	SrcLang      string     `json:"src_lang,omitempty"`
	DstLang      string     `json:"dst_lang"`
	NumSpeakers  *int       `json:"num_speakers,omitempty"`
	TranscriptID *uuid.UUID `json:"transcript_id,omitempty"`
	GlossaryID   *uuid.UUID `json:"glossary_id,omitempty"`
}

func (p ProjectCreate) Validate() error {
	if p.VideoID == uuid.Nil {
		return validate.Errorf("video_id", "A video id is required to create a project.")
	}
	if p.DstLang == "" {
		return validate.Errorf("dst_lang", "A destination language is required to create a project.")
	}
	return nil
}

// ProjectPatch updates a project. Voice maps speaker labels to voice ids.
type ProjectPatch struct {
	Name        string               `json:"name,omitempty"`
	NumSpeakers *int                 `json:"num_speakers,omitempty"`
	Voice       map[string]uuid.UUID `json:"voice,omitempty"`
}

func (p ProjectPatch) Validate() error {
	for _, speaker := range slices.Sorted(maps.Keys(p.Voice)) {
		if _, err := validate.Speaker(&speaker); err != nil {
			return err
		}
	}
	return nil
}

// Voice is a voice that can be assigned to a speaker.
type Voice struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	SampleSrc string    `json:"sample_src,omitempty"`
	Gender    string    `json:"gender"`
}

func projectPath(projectID uuid.UUID) string {
	return "/v2/projects/" + projectID.String()
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, data ProjectCreate) (*Project, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return call[Project](ctx, c, request{method: http.MethodPost, path: "/v2/projects", body: data})
}

// GetProject returns a project by id.
func (c *Client) GetProject(ctx context.Context, projectID uuid.UUID) (*Project, error) {
	return call[Project](ctx, c, request{method: http.MethodGet, path: projectPath(projectID)})
}

// ListProjects returns a page of projects, optionally filtered by name.
func (c *Client) ListProjects(ctx context.Context, query ProjectListQuery) (*ProjectList, error) {
	return call[ProjectList](ctx, c, request{
		method: http.MethodGet,
		path:   "/v2/projects",
		query:  query.values(),
	})
}

// GenerateProject starts the dubbing pipeline of a project.
func (c *Client) GenerateProject(ctx context.Context, projectID uuid.UUID) (*Project, error) {
	return call[Project](ctx, c, request{method: http.MethodPost, path: projectPath(projectID) + "/generate"})
}

// PatchProject updates a project.
func (c *Client) PatchProject(ctx context.Context, projectID uuid.UUID, data ProjectPatch) (*Project, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return call[Project](ctx, c, request{method: http.MethodPatch, path: projectPath(projectID), body: data})
}

// GetProjectVoices lists the voices available to a project.
func (c *Client) GetProjectVoices(ctx context.Context, projectID uuid.UUID) ([]Voice, error) {
	voices, err := call[[]Voice](ctx, c, request{method: http.MethodGet, path: projectPath(projectID) + "/voices"})
	if err != nil {
		return nil, err
	}
	return *voices, nil
}
