package model

import "time"

// AboutCollection is a reserved collection label for the site's "about"
// image. It is excluded from the public collection index.
const AboutCollection = "about_me"

// Photo is a committed catalog entry. A row exists only after both of its
// renditions were written to the active image store, and is removed only
// after both were confirmed deleted.
type Photo struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Hash          string    `json:"hash"`
	FileName      string    `json:"file_name"`
	OriginalPath  string    `json:"original_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Collection    string    `json:"collection"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
