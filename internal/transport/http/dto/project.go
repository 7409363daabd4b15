package dto

import (
	"mime/multipart"
	"strconv"
	"strings"

	"content_admin/internal/domain/models"
)

// CreateProjectInput собирается из multipart-формы админки
type CreateProjectInput struct {
	ID              string
	Title           models.LocalizedText
	Summary         models.LocalizedText
	Category        string
	Status          string
	Featured        bool
	Priority        int
	Tags            []string
	PublishNow      bool
	Stat1           models.Stat
	Stat2           models.Stat
	LongDescription models.LocalizedText

	// ImageURL is used as main image when Image is missing or rejected.
	ImageURL      string
	Image         *multipart.FileHeader
	GalleryImages []*multipart.FileHeader
}

type UpdateOrderingInput struct {
	Featured bool
	Priority int
}

// ParsePriority trims raw and parses it as an integer; blank or invalid input yields 0.
func ParsePriority(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	priority, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}

	return priority
}

// ParseTags splits comma separated tags, trimming each and dropping empties.
func ParseTags(csv string) []string {
	tags := []string{}
	for _, tag := range strings.Split(csv, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

// Truthy mirrors checkbox semantics: any non-empty value is on.
func Truthy(v string) bool {
	return v != ""
}
