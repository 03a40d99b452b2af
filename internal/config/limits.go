package config

const (
	// MaxCorpusNameLength is the maximum length for corpus names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxCorpusNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxDocumentNameLength is the maximum length for document names.
	// Same as folder names for consistency.
	MaxDocumentNameLength = 255

	// MaxFolderDescriptionLength bounds the free-text description field.
	MaxFolderDescriptionLength = 1024

	// MaxFolderTags caps the tag set on a single folder.
	MaxFolderTags = 32

	// MaxTagLength is the maximum length of a single tag.
	MaxTagLength = 64

	// DefaultSearchResults is the page size used when a search request
	// omits a limit or asks for too much.
	DefaultSearchResults = 20

	// MaxSearchResults caps a single search page.
	MaxSearchResults = 100
)
