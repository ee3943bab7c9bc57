// Package medicine serves the built-in medicine catalog used when writing
// prescriptions.
package medicine

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

// MaxResults caps the number of search hits.
const MaxResults = 10

//go:embed medicines.json
var catalogJSON []byte

type Medicine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GenericName string `json:"generic_name"`
	Dosage      string `json:"dosage"`
	Form        string `json:"form"`
	Category    string `json:"category"`
}

// Catalog is an immutable, ordered set of medicines.
type Catalog struct {
	items []Medicine
	byID  map[string]int
}

// NewCatalog indexes items. IDs must be unique and names non-empty.
func NewCatalog(items []Medicine) (*Catalog, error) {
	c := &Catalog{items: slices.Clone(items), byID: make(map[string]int, len(items))}
	for i, m := range c.items {
		if m.ID == "" || strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("medicine %d: id and name are required", i)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("medicine %d: duplicate id %q", i, m.ID)
		}
		c.byID[m.ID] = i
	}
	return c, nil
}

// Builtin returns the catalog embedded in the binary.
func Builtin() (*Catalog, error) {
	var items []Medicine
	if err := json.Unmarshal(catalogJSON, &items); err != nil {
		return nil, fmt.Errorf("decode medicine catalog: %w", err)
	}
	return NewCatalog(items)
}

func (c *Catalog) Len() int { return len(c.items) }

// Search matches query case-insensitively against name, generic name and
// category and returns at most MaxResults hits in catalog order. A blank
// query matches nothing.
func (c *Catalog) Search(query string) []Medicine {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Medicine{}
	}
	hits := listing.Filter(c.items, listing.Query[Medicine]{
		Search: query,
		Fields: func(m Medicine) []string { return []string{m.Name, m.GenericName, m.Category} },
	})
	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	return hits
}

func (c *Catalog) Get(id string) (Medicine, error) {
	i, ok := c.byID[id]
	if !ok {
		return Medicine{}, apperr.NotFound("medicine")
	}
	return c.items[i], nil
}

// Categories returns the distinct categories in ascending order.
func (c *Catalog) Categories() []string {
	out := []string{}
	for _, m := range c.items {
		if !slices.Contains(out, m.Category) {
			out = append(out, m.Category)
		}
	}
	slices.Sort(out)
	return out
}
