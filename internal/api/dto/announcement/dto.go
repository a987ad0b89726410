package announcement

type Announcement struct {
	Enabled     bool   `json:"enabled"`
	ImageURL    string `json:"imageUrl"`
	LastUpdated int64  `json:"lastUpdated"`
}

type UpdateRequest struct {
	Enabled  bool   `json:"enabled"`
	ImageURL string `json:"imageUrl"`
}

type UpdateResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Announcement Announcement `json:"announcement"`
}
