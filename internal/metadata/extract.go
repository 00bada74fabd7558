package metadata

// Result is everything extracted from one document.
type Result struct {
	// Body is the text without front matter.
	Body       string
	Metadata   Metadata
	References []Reference
	Inventory  Inventory
	Language   string // detected, "en" or "ru"
}

// Extract splits the front matter, reads the inline fields (front matter
// wins on conflict) and collects references and the inventory.
func Extract(text string) (*Result, error) {
	front, body, err := SplitFrontMatter(text)
	if err != nil {
		return nil, err
	}
	return &Result{
		Body:       body,
		Metadata:   Merge(ExtractFields(body), front),
		References: ExtractReferences(body),
		Inventory:  TakeInventory(body),
		Language:   DetectLanguage(body),
	}, nil
}
