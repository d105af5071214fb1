package models

import "time"

// WebpageRequest is the body accepted by the create and update endpoints.
type WebpageRequest struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// Webpage converts the request into a record carrying the given id.
func (r WebpageRequest) Webpage(id int64) Webpage {
	return Webpage{
		ID:          id,
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		ImageURL:    r.ImageURL,
	}
}

// ErrorResponse is the structured error body returned by the API.
type ErrorResponse struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats is returned by the internal stats endpoint.
type Stats struct {
	Webpages int `json:"webpages"`
}

// PageInfo describes what an inspection of a live URL found.
type PageInfo struct {
	URL         string `json:"url"`
	StatusCode  int    `json:"status"`
	Reachable   bool   `json:"reachable"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// SortSpec mirrors the data table sort state on the wire.
type SortSpec struct {
	Column    string `json:"column"`
	Direction string `json:"direction,omitempty"`
}

// TableView is the dashboard representation of the data table.
type TableView struct {
	Rows         []Webpage `json:"rows"`
	Search       string    `json:"search"`
	Sort         SortSpec  `json:"sort"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
	TotalPages   int       `json:"totalPages"`
	Total        int       `json:"total"`
	VisiblePages []int     `json:"visiblePages"`
	Start        int       `json:"start"`
	End          int       `json:"end"`
	Loading      bool      `json:"loading"`
}

// ActivityEntry is one line of the dashboard activity log.
type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}
