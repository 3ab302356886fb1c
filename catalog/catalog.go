// Package catalog holds the pre-cataloged textbook resource links and the
// criteria matcher the multigrade strategy and enrichment step draw from.
package catalog

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

// Entry is one cataloged resource as stored in the catalog file.
type Entry struct {
	Grade    string `json:"grade"`
	Medium   string `json:"medium"`
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Link     string `json:"link"`
	Type     string `json:"type,omitempty"`
	UniqueID string `json:"unique_id,omitempty"`
}

type catalogFile struct {
	Resources []Entry `json:"resources"`
}

// Catalog is an in-memory resource catalog.
type Catalog struct {
	entries []Entry
}

// NewCatalog creates a catalog from in-memory entries.
func NewCatalog(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Load reads the catalog from a JSON file. A missing or malformed file
// degrades to an empty catalog; resource matching is best-effort and must
// never take a request down.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("resource catalog not loaded, continuing with empty catalog")
		return &Catalog{}
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("resource catalog unreadable, continuing with empty catalog")
		return &Catalog{}
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"count": len(file.Resources),
	}).Info("resource catalog loaded")
	return &Catalog{entries: file.Resources}
}

// Len returns the number of cataloged entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the cataloged entries.
func (c *Catalog) Entries() []Entry { return c.entries }
