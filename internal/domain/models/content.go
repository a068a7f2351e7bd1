// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical content type identifiers.
//
// These values are stored in the database in the Content.Metadata.Type field
// and are used throughout the application as stable keys. The set is closed:
// validation rejects anything else at import time.
const (
	ContentTypeVideo = "video"
	ContentTypeQuiz  = "quiz"
	ContentTypeLink  = "link"
)

// ContentTypes is the full set of allowed content type identifiers.
//
// This slice should be treated as the single source of truth for validation
// and schema enums. Any new type must be added here to be considered valid.
var ContentTypes = []string{
	ContentTypeVideo,
	ContentTypeQuiz,
	ContentTypeLink,
}

// IsValidContentType reports whether t is an allowed content type.
func IsValidContentType(t string) bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// Content is a lesson building block: a video, a quiz, or an external link.
// The variant-specific fields live under Metadata, discriminated by
// Metadata.Type. Titles are unique case-insensitively across the collection.
type Content struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	TitleCI       string             `bson:"titleCI" json:"-"`
	Description   RichText           `bson:"description" json:"description"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	PublishStatus string             `bson:"publishStatus" json:"publishStatus"`
	Order         int                `bson:"order" json:"order"`
	Metadata      ContentMetadata    `bson:"metadata" json:"metadata"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ContentMetadata holds the per-variant fields of a content document.
// Exactly one variant's fields are populated, per Type:
//
//   - video: YouTubeVideoID (non-empty) and DurationSec (> 0)
//   - quiz:  QuestionIDs (the pool), QuestionsPerAttempt (> 0), AllowRetry
//     (explicit boolean), optional TimeLimitSec (> 0 if present)
//   - link:  URL (must parse as http/https)
type ContentMetadata struct {
	Type string `bson:"type" json:"type"` // video | quiz | link

	// video
	YouTubeVideoID string `bson:"youtubeVideoId,omitempty" json:"youtubeVideoId,omitempty"`
	DurationSec    int    `bson:"durationSec,omitempty" json:"durationSec,omitempty"`

	// quiz
	QuestionIDs         []primitive.ObjectID `bson:"questionIds,omitempty" json:"questionIds,omitempty"`
	QuestionsPerAttempt int                  `bson:"questionsPerAttempt,omitempty" json:"questionsPerAttempt,omitempty"`
	AllowRetry          *bool                `bson:"allowRetry,omitempty" json:"allowRetry,omitempty"`
	TimeLimitSec        int                  `bson:"timeLimitSec,omitempty" json:"timeLimitSec,omitempty"`

	// link
	URL string `bson:"url,omitempty" json:"url,omitempty"`
}

// IsQuiz reports whether this content is a quiz.
func (c *Content) IsQuiz() bool {
	return c.Metadata.Type == ContentTypeQuiz
}

// IsPublic reports whether this content is published.
func (c *Content) IsPublic() bool {
	return c.PublishStatus == PublishPublic
}
