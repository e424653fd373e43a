package domain

// Department mirrors the department resource served by the remote API.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"departmentName"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}
