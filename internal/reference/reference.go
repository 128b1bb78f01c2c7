// Package reference defines the Zotero item and collection types synced to Notion.
package reference

// Item is a single Zotero library item as returned by the Web API with format=json.
type Item struct {
	Key     string    `json:"key"`
	Version int       `json:"version"`
	Data    *ItemData `json:"data"`
}

// ItemData holds the bibliographic fields of an item.
// Every field is optional; callers must tolerate zero values.
type ItemData struct {
	Key          Text      `json:"key"`
	ItemType     Text      `json:"itemType"`
	Title        *string   `json:"title"`
	Creators     []Creator `json:"creators"`
	AbstractNote Text      `json:"abstractNote"`
	Publisher    Text      `json:"publisher"`
	Extra        Text      `json:"extra"`
	URL          Text      `json:"url"`
	DOI          Text      `json:"DOI"`
	Date         Text      `json:"date"`
	AccessDate   Text      `json:"accessDate"`
	DateAdded    Text      `json:"dateAdded"`
	DateModified Text      `json:"dateModified"`
	Tags         []Tag     `json:"tags"`
	Collections  IDList    `json:"collections"`
}

// Title returns the item title and whether one is present.
func (it Item) Title() (string, bool) {
	if it.Data == nil || it.Data.Title == nil {
		return "", false
	}
	return *it.Data.Title, true
}

// Collection is a Zotero collection as returned by the collections endpoint.
type Collection struct {
	Key  string          `json:"key"`
	Data *CollectionData `json:"data"`
}

// CollectionData holds the collection fields we use.
type CollectionData struct {
	Name             *string `json:"name"`
	ParentCollection Text    `json:"parentCollection"`
}
