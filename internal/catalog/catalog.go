// Package catalog maps the subject → chapter → topic tree onto simulations.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

// ErrTopicNotFound indicates a path that does not resolve to a topic.
var ErrTopicNotFound = errors.New("catalog: topic not found")

type Topic struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Simulation  string `yaml:"simulation,omitempty" json:"simulation,omitempty"`
}

type Chapter struct {
	ID     string  `yaml:"id" json:"id"`
	Title  string  `yaml:"title" json:"title"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

type Subject struct {
	ID       string    `yaml:"id" json:"id"`
	Title    string    `yaml:"title" json:"title"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

type Catalog struct {
	Subjects []Subject `yaml:"subjects" json:"subjects"`
}

// Entry is a topic together with its location in the tree.
type Entry struct {
	Path    string
	Subject string
	Chapter string
	Topic   Topic
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: builtin catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// Entries flattens the tree in declaration order.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for _, s := range c.Subjects {
		for _, ch := range s.Chapters {
			for _, t := range ch.Topics {
				out = append(out, Entry{
					Path:    s.ID + "/" + ch.ID + "/" + t.ID,
					Subject: s.ID,
					Chapter: ch.ID,
					Topic:   t,
				})
			}
		}
	}
	return out
}

// Resolve finds the topic at subject/chapter/topic.
func (c *Catalog) Resolve(path string) (Entry, error) {
	path = strings.Trim(path, "/")
	for _, e := range c.Entries() {
		if e.Path == path {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrTopicNotFound, path)
}

// BySimulation returns every topic that shows the named simulation.
func (c *Catalog) BySimulation(name string) []Entry {
	var out []Entry
	for _, e := range c.Entries() {
		if e.Topic.Simulation == name {
			out = append(out, e)
		}
	}
	return out
}
