package model

// CreateProfileRequest is the payload to register a new profile directly
// (bypassing the Resolver — used for operator-entered records).
type CreateProfileRequest struct {
	DisplayName string  `json:"display_name" binding:"required"`
	Email       *string `json:"email,omitempty"`
	Company     *string `json:"company,omitempty"`
	Website     *string `json:"website,omitempty"`
	Niche       string  `json:"niche"`
	Audience    string  `json:"audience"`
	ListSize    int     `json:"list_size"`
	SocialReach int     `json:"social_reach"`
	Offering    *string `json:"offering,omitempty"`
	Seeking     *string `json:"seeking,omitempty"`
	WhatYouDo   *string `json:"what_you_do,omitempty"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Company     *string `json:"company,omitempty"`
	Website     *string `json:"website,omitempty"`
	Niche       *string `json:"niche,omitempty"`
	Audience    *string `json:"audience,omitempty"`
	ListSize    *int    `json:"list_size,omitempty"`
	SocialReach *int    `json:"social_reach,omitempty"`
	Offering    *string `json:"offering,omitempty"`
	Seeking     *string `json:"seeking,omitempty"`
	WhatYouDo   *string `json:"what_you_do,omitempty"`
}
