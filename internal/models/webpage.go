// Package models defines the webpage record shared by the state store, the
// data table and the REST/gRPC layers, plus the request and response shapes
// used on the wire.
package models

import (
	"strconv"
	"time"
)

// Webpage is a bookmarked URL with optional metadata.
//
// Zero values mean "unset": ID 0 is a record that has not been assigned an id
// yet, and empty strings or a zero CreatedAt are never copied over existing
// values by Merge.
type Webpage struct {
	ID          int64     `json:"id,omitempty"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	// ImageURL is an opaque attachment reference.
	ImageURL string `json:"imageUrl,omitempty"`
}

// HasID reports whether the record has been assigned an id.
func (w Webpage) HasID() bool {
	return w.ID > 0
}

// Value resolves a column key against the record. Unknown keys report false.
func (w Webpage) Value(key string) (any, bool) {
	switch key {
	case "id":
		return w.ID, true
	case "url":
		return w.URL, true
	case "title":
		return w.Title, true
	case "description":
		return w.Description, true
	case "createdAt":
		return w.CreatedAt, true
	case "imageUrl":
		return w.ImageURL, true
	}
	return nil, false
}

// Label is a human readable name used in notifications and prompts.
func (w Webpage) Label() string {
	if w.Title != "" {
		return w.Title
	}
	if w.URL != "" {
		return w.URL
	}
	return "webpage " + strconv.FormatInt(w.ID, 10)
}

// Merge returns base with every set field of patch copied over it.
// The id of base is kept.
func Merge(base, patch Webpage) Webpage {
	out := base
	if patch.URL != "" {
		out.URL = patch.URL
	}
	if patch.Title != "" {
		out.Title = patch.Title
	}
	if patch.Description != "" {
		out.Description = patch.Description
	}
	if !patch.CreatedAt.IsZero() {
		out.CreatedAt = patch.CreatedAt
	}
	if patch.ImageURL != "" {
		out.ImageURL = patch.ImageURL
	}
	return out
}

const day = 24 * time.Hour

// SeedWebpages returns the mock records the application starts with.
func SeedWebpages(now time.Time) []Webpage {
	return []Webpage{
		{
			ID:          1,
			URL:         "https://www.google.com",
			Title:       "Google",
			Description: "Search engine and technology company",
			CreatedAt:   now.Add(-1 * day),
		},
		{
			ID:          2,
			URL:         "https://www.github.com",
			Title:       "GitHub",
			Description: "Git repository hosting service for software development",
			CreatedAt:   now.Add(-2 * day),
		},
		{
			ID:          3,
			URL:         "https://www.stackoverflow.com",
			Title:       "Stack Overflow",
			Description: "Question and answer site for professional and enthusiast programmers",
			CreatedAt:   now.Add(-5 * day),
		},
		{
			ID:          4,
			URL:         "https://www.angular.io",
			Title:       "Angular",
			Description: "Platform and framework for building single-page client applications using HTML and TypeScript",
			CreatedAt:   now.Add(-7 * day),
		},
		{
			ID:          5,
			URL:         "https://www.typescriptlang.org",
			Title:       "TypeScript",
			Description: "Typed superset of JavaScript that compiles to plain JavaScript",
			CreatedAt:   now.Add(-10 * day),
		},
	}
}
