package domain

import (
	"fmt"
	"strings"
)

type DocumentID string

type Document struct {
	ID   DocumentID
	Name string
	// Handle is the opaque locator handed to the page rasterizer and the
	// resource resolver.
	Handle    string
	PageCount int
	Verdicts  Verdicts
}

func (d Document) Validate() error {
	if strings.TrimSpace(string(d.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(d.Handle) == "" {
		return fmt.Errorf("handle is required")
	}
	if d.PageCount < 0 {
		return fmt.Errorf("page count must not be negative")
	}

	return nil
}

func (d Document) DisplayName() string {
	if trimmed := strings.TrimSpace(d.Name); trimmed != "" {
		return trimmed
	}
	return string(d.ID)
}
