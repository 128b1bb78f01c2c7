package reference

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Creator is an item author, editor or contributor.
// Organizations carry Name; people carry FirstName and/or LastName.
type Creator struct {
	CreatorType string  `json:"creatorType,omitempty"`
	Name        *string `json:"name,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
}

// UnmarshalJSON decodes a creator object. Values that are not JSON objects
// decode to an empty Creator instead of failing the whole item.
func (c *Creator) UnmarshalJSON(data []byte) error {
	*c = Creator{}
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil
	}
	type plain Creator
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*c = Creator(p)
	return nil
}

// IsOrganization reports whether the creator has a non-empty single name field.
func (c Creator) IsOrganization() bool {
	return c.Name != nil && *c.Name != ""
}

// Tag is a Zotero tag record.
type Tag struct {
	Tag  *string `json:"tag,omitempty"`
	Type int     `json:"type,omitempty"`
}

// UnmarshalJSON decodes a tag object, leaving Tag nil for anything else.
func (t *Tag) UnmarshalJSON(data []byte) error {
	*t = Tag{}
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil
	}
	type plain Tag
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*t = Tag(p)
	return nil
}
