package dto

import "mime/multipart"

type CreateArticleInput struct {
	Title    string `validate:"required"`
	Category string `validate:"required"`
	Content  string `validate:"required"`
	Excerpt  string
	// Author is nil when the form field is absent.
	Author *string

	Image            *multipart.FileHeader
	AdditionalImages []*multipart.FileHeader
}

// UpdateArticleInput: nil pointer means "field not sent", keep the stored value.
type UpdateArticleInput struct {
	Title    *string
	Category *string
	Author   *string
	Excerpt  *string
	Content  *string

	Image            *multipart.FileHeader
	AdditionalImages []*multipart.FileHeader
}
