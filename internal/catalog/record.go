package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultBaseURL is the host serving the app catalog and its images.
const DefaultBaseURL = "https://rokumobileinterview.s3.us-west-2.amazonaws.com/"

// Record is one app entry from the remote catalog.
type Record struct {
	ID       string `json:"id"`
	ImageRef string `json:"imageUrl"`
	Name     string `json:"name"`
}

// recordPayload detects missing keys; a nil field was absent on the wire.
type recordPayload struct {
	ID       *string `json:"id"`
	ImageURL *string `json:"imageUrl"`
	Name     *string `json:"name"`
}

func (p *recordPayload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.NotNil),
		validation.Field(&p.ImageURL, validation.NotNil),
		validation.Field(&p.Name, validation.NotNil),
	)
}

// UnmarshalJSON decodes a catalog element, rejecting elements that lack any of
// id, name or imageUrl. Unknown keys are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	var payload recordPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid app record: %w", err)
	}
	*r = Record{
		ID:       *payload.ID,
		ImageRef: *payload.ImageURL,
		Name:     *payload.Name,
	}
	return nil
}

// ImageURL resolves the record's image reference against base. Absolute
// references are returned unchanged.
func (r Record) ImageURL(base string) string {
	ref := strings.TrimSpace(r.ImageRef)
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "://") {
		return ref
	}
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}

// appsResponse mirrors apps.json.
type appsResponse struct {
	Apps []Record `json:"apps"`
}
