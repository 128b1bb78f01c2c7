package notion

// Property names of the target reference database.
const (
	PropTitle           = "Title"
	PropCollections     = "Collections"
	PropAuthors         = "Authors"
	PropSourceURL       = "Source URL"
	PropTags            = "Tags"
	PropItemType        = "Item Type"
	PropPublisher       = "Publisher"
	PropExtra           = "Extra"
	PropDOI             = "DOI"
	PropAbstract        = "Abstract"
	PropStatus          = "Status"
	PropCategory        = "Category"
	PropDateAccessed    = "Date Accessed"
	PropPublicationDate = "Publication Date"
	PropModifiedDate    = "Modified Date"
)
