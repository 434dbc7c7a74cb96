package api

import "github.com/itchan-dev/hoots/shared/domain"

// Request DTOs

type CreateHootRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// UpdateHootRequest is a partial update: omitted fields are left unchanged.
type UpdateHootRequest struct {
	Title *string `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Response DTOs

type HootResponse struct {
	domain.HootView
}

type HootListResponse struct {
	Hoots []domain.HootView `json:"hoots"`
}

type CommentResponse struct {
	domain.CommentView
}
