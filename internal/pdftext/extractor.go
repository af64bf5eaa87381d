// Package pdftext provides text and table extraction from PDF statements.
// Extraction sits behind interfaces so processors can be tested with
// predefined page text instead of real PDF files.
package pdftext

// Extractor extracts page text from a PDF file.
type Extractor interface {
	// ExtractPages returns the text of each page, in page order.
	ExtractPages(pdfPath string) ([]string, error)
}

// MockExtractor implements Extractor for testing purposes.
// It returns predefined page text instead of reading a PDF file.
type MockExtractor struct {
	MockPages []string
	MockErr   error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(pages []string, err error) *MockExtractor {
	return &MockExtractor{
		MockPages: pages,
		MockErr:   err,
	}
}

// ExtractPages returns the predefined mock pages or error.
func (e *MockExtractor) ExtractPages(pdfPath string) ([]string, error) {
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockPages, nil
}
