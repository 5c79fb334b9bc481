package rask

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MimeLyc/rask-sdk-go/internal/validate"
)

// GlossaryCreate creates a glossary mapping source words to target words.
type GlossaryCreate struct {
	Name    string            `json:"name"`
	SrcLang string            `json:"src_lang"`
	DstLang string            `json:"dst_lang"`
	Entries map[string]string `json:"entries"`
}

// Validate checks the entries and returns the glossary with a trimmed name.
func (g GlossaryCreate) Validate() (GlossaryCreate, error) {
	name, err := glossaryName(g.Name)
	if err != nil {
		return GlossaryCreate{}, err
	}
	if g.SrcLang == "" || g.DstLang == "" {
		return GlossaryCreate{}, validate.Errorf("", "Both src_lang and dst_lang are required to create a glossary.")
	}
	if g.Entries == nil {
		return GlossaryCreate{}, validate.Errorf("entries", "Entries are required to create a glossary.")
	}
	if _, err := validate.Entries(g.Entries); err != nil {
		return GlossaryCreate{}, err
	}

	g.Name = name
	return g, nil
}

// GlossaryUpdate renames a glossary and replaces its entries. Nil Entries
// leaves the entries unchanged.
type GlossaryUpdate struct {
	Name    string            `json:"name"`
	Entries map[string]string `json:"entries,omitzero"`
}

// Validate checks the entries and returns the update with a trimmed name.
func (g GlossaryUpdate) Validate() (GlossaryUpdate, error) {
	name, err := glossaryName(g.Name)
	if err != nil {
		return GlossaryUpdate{}, err
	}
	if _, err := validate.Entries(g.Entries); err != nil {
		return GlossaryUpdate{}, err
	}

	g.Name = name
	return g, nil
}

func glossaryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validate.Errorf("name", "Glossary name cannot be empty.")
	}
	return name, nil
}

// Glossary is a stored glossary.
type Glossary struct {
	ID      uuid.UUID         `json:"id"`
	Name    string            `json:"name"`
	Version int               `json:"version"`
	SrcLang string            `json:"src_lang"`
	DstLang string            `json:"dst_lang"`
	Entries map[string]string `json:"entries"`
}

// GlossaryID identifies a deleted glossary.
type GlossaryID struct {
	ID uuid.UUID `json:"id"`
}

func glossaryPath(glossaryID uuid.UUID) string {
	return "/v2/glossaries/" + glossaryID.String()
}

// CreateGlossary creates a glossary.
func (c *Client) CreateGlossary(ctx context.Context, data GlossaryCreate) (*Glossary, error) {
	data, err := data.Validate()
	if err != nil {
		return nil, err
	}
	return call[Glossary](ctx, c, request{method: http.MethodPost, path: "/v2/glossaries", body: data})
}

// GetGlossary returns a glossary by id.
func (c *Client) GetGlossary(ctx context.Context, glossaryID uuid.UUID) (*Glossary, error) {
	return call[Glossary](ctx, c, request{method: http.MethodGet, path: glossaryPath(glossaryID)})
}

// UpdateGlossary replaces a glossary's name and entries. Two concurrent
// updates race on the server; the client does not order them.
func (c *Client) UpdateGlossary(ctx context.Context, glossaryID uuid.UUID, data GlossaryUpdate) (*Glossary, error) {
	data, err := data.Validate()
	if err != nil {
		return nil, err
	}
	return call[Glossary](ctx, c, request{method: http.MethodPut, path: glossaryPath(glossaryID), body: data})
}

// DeleteGlossary deletes a glossary by id.
func (c *Client) DeleteGlossary(ctx context.Context, glossaryID uuid.UUID) (*GlossaryID, error) {
	return call[GlossaryID](ctx, c, request{method: http.MethodDelete, path: glossaryPath(glossaryID)})
}
