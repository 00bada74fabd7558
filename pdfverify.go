package manuscript

import (
	"bytes"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// countPDFPages parses data and returns its page count. A document that
// does not parse or has no pages is reported as ErrPDFVerify.
func countPDFPages(data []byte) (pages int, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: %v", ErrPDFVerify, r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFVerify, err)
	}
	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrPDFVerify)
	}
	return n, nil
}
