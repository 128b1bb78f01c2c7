package notion

// Properties is the property payload of a page create or update request.
type Properties map[string]Property

// Property is a single page property value.
type Property interface {
	// Type returns the Notion property type, e.g. "rich_text".
	Type() string
}

// Text is the content of a rich text object.
type Text struct {
	Content string `json:"content"`
}

// RichText is a Notion rich text object. Only plain text is produced.
type RichText struct {
	Text Text `json:"text"`
}

// SelectOption names a select, multi_select or status option.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is the value of a date property.
type DateValue struct {
	Start string `json:"start"`
}

// TitleProperty is a title property value.
type TitleProperty struct {
	Title []RichText `json:"title"`
}

// RichTextProperty is a rich_text property value.
type RichTextProperty struct {
	RichText []RichText `json:"rich_text"`
}

// MultiSelectProperty is a multi_select property value.
type MultiSelectProperty struct {
	MultiSelect []SelectOption `json:"multi_select"`
}

// SelectProperty is a select property value.
type SelectProperty struct {
	Select SelectOption `json:"select"`
}

// StatusProperty is a status property value.
type StatusProperty struct {
	Status SelectOption `json:"status"`
}

// URLProperty is a url property value.
type URLProperty struct {
	URL string `json:"url"`
}

// DateProperty is a date property value.
type DateProperty struct {
	Date DateValue `json:"date"`
}

func (TitleProperty) Type() string       { return "title" }
func (RichTextProperty) Type() string    { return "rich_text" }
func (MultiSelectProperty) Type() string { return "multi_select" }
func (SelectProperty) Type() string      { return "select" }
func (StatusProperty) Type() string      { return "status" }
func (URLProperty) Type() string         { return "url" }
func (DateProperty) Type() string        { return "date" }

// NewTitle returns a title property holding s.
func NewTitle(s string) TitleProperty {
	return TitleProperty{Title: []RichText{{Text: Text{Content: s}}}}
}

// NewRichText returns a rich_text property holding s.
func NewRichText(s string) RichTextProperty {
	return RichTextProperty{RichText: []RichText{{Text: Text{Content: s}}}}
}

// NewMultiSelect returns a multi_select property with one option per
// non-empty name. It always encodes as a JSON array, never null.
func NewMultiSelect(names []string) MultiSelectProperty {
	opts := make([]SelectOption, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		opts = append(opts, SelectOption{Name: n})
	}
	return MultiSelectProperty{MultiSelect: opts}
}

// NewSelect returns a select property set to name.
func NewSelect(name string) SelectProperty {
	return SelectProperty{Select: SelectOption{Name: name}}
}

// NewStatus returns a status property set to name.
func NewStatus(name string) StatusProperty {
	return StatusProperty{Status: SelectOption{Name: name}}
}

// NewURL returns a url property.
func NewURL(u string) URLProperty {
	return URLProperty{URL: u}
}

// NewDate returns a date property starting at start.
func NewDate(start string) DateProperty {
	return DateProperty{Date: DateValue{Start: start}}
}

// Names returns the option names of a multi_select property.
func (p MultiSelectProperty) Names() []string {
	out := make([]string, len(p.MultiSelect))
	for i, o := range p.MultiSelect {
		out[i] = o.Name
	}
	return out
}

// PlainText returns the concatenated content of a rich text slice.
func PlainText(rt []RichText) string {
	var s string
	for _, r := range rt {
		s += r.Text.Content
	}
	return s
}
