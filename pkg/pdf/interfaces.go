package pdf

// Document represents a parsed PDF document
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// GetPage returns a specific page by index (0-based). Pages are
	// decoded on demand; nothing is cached between calls.
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Backend names the library that parsed the document
	Backend() Backend

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetBBox returns the page bounding box
	GetBBox() BoundingBox

	// GetObjects returns all objects on the page
	GetObjects() Objects
}
