package model

type ErrorMessage struct {
	Error string `json:"error" example:"Invalid credentials"`
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Jane"`
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// PhotoResponse is a Photo with its storage locators resolved to URLs the
// frontend can load directly.
type PhotoResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	FileName     string `json:"file_name"`
	OriginalURL  string `json:"original_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Collection   string `json:"collection"`
}

type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

type CollectionsResponse struct {
	Collections []string `json:"collections"`
}

type DeletePhotosRequest struct {
	IDs []int64 `json:"ids"`
}

// DeleteReport partitions a delete request into the ids whose rows and
// blobs were fully removed and the ids that did not resolve.
type DeleteReport struct {
	Deleted  []int64 `json:"deleted"`
	NotFound []int64 `json:"not_found"`
}
