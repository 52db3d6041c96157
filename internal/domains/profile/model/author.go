package model

// Author is the public projection of a directory user. It is assembled per
// request and never persisted by this service.
type Author struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}
