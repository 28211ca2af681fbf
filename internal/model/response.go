package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NewMeta clamps page and limit the same way list queries do.
func NewMeta(page int, limit int, total int) *Meta {
	page, limit = ClampPage(page, limit)
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func ClampPage(page int, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
