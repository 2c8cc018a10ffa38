package client

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/input"
)

const opCatalog = "client.LoadCatalog"

// Entry is one client in a catalog, with the optional scenario label used
// by fixture files to describe what the record exercises.
type Entry struct {
	Scenario string
	Client   *Client
}

// Catalog is an ordered set of client records loaded from one file.
type Catalog struct {
	Entries []Entry
}

// LoadCatalog reads and parses a catalog file. JSON and YAML are both
// accepted.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, estate.NewNotFoundError(opCatalog, fmt.Errorf("%w: failed to read catalog file: %w", estate.ErrNotFound, err)).
			WithContext(map[string]any{"path": path})
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// ParseCatalog decodes a catalog document. The document is either a list of
// entries or an object with a "clients" list. Each entry is either a client
// record or a wrapper of the form {"_scenario": "...", "client": {...}}.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, estate.NewValidationError(opCatalog, fmt.Errorf("failed to parse catalog: %w", err))
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		list, err := listField(v, "clients")
		if err != nil {
			return nil, estate.NewValidationError(opCatalog, err)
		}
		items = list
	case nil:
		return &Catalog{}, nil
	default:
		return nil, estate.NewValidationError(opCatalog, fmt.Errorf("catalog must be a list or an object, got %T", doc))
	}

	catalog := &Catalog{Entries: make([]Entry, 0, len(items))}
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, estate.NewValidationError(opCatalog, fmt.Errorf("entry %d must be an object, got %T", i, item))
		}

		record := m
		if wrapped := input.GetMap(m, "client"); wrapped != nil {
			record = wrapped
		}
		c, err := Decode(record)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		catalog.Entries = append(catalog.Entries, Entry{
			Scenario: input.GetString(m, "_scenario", ""),
			Client:   c,
		})
	}
	return catalog, nil
}

// Clients returns the catalog's clients in file order.
func (c *Catalog) Clients() []*Client {
	clients := make([]*Client, 0, len(c.Entries))
	for _, e := range c.Entries {
		clients = append(clients, e.Client)
	}
	return clients
}

// Find returns the first client whose name matches (case-insensitive).
func (c *Catalog) Find(name string) (*Client, error) {
	for _, e := range c.Entries {
		if strings.EqualFold(e.Client.Name, name) {
			return e.Client, nil
		}
	}
	return nil, estate.NewNotFoundError("client.Catalog.Find", fmt.Errorf("%w: no client named %q", estate.ErrNotFound, name))
}

// At returns the client at index i.
func (c *Catalog) At(i int) (*Client, error) {
	if i < 0 || i >= len(c.Entries) {
		return nil, estate.NewNotFoundError("client.Catalog.At", fmt.Errorf("%w: index %d out of range [0,%d)", estate.ErrNotFound, i, len(c.Entries)))
	}
	return c.Entries[i].Client, nil
}
