package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a rating+comment tuple attached by exactly one distinct
// user to a post. Entries are append-only.
type Feedback struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedOn time.Time          `bson:"created_on" json:"created_on"`
}

// BlogPost holds the post content plus its embedded feedback entries.
// Invariant: at most one feedback entry per distinct user.
type BlogPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Category   string             `bson:"category" json:"category"`
	Author     primitive.ObjectID `bson:"author" json:"author"`
	Feedback   []Feedback         `bson:"feedback" json:"feedback"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	IsDisabled bool               `bson:"isDisabled" json:"isDisabled"`
}

// PostView is a read model for listing and detail endpoints: the author
// reference resolved to a username and the rating average derived from
// the embedded feedback. AverageRating is nil when there is no feedback,
// never zero.
type PostView struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"`
	Category      string             `bson:"category" json:"category"`
	Author        string             `bson:"author" json:"author"`
	Feedback      []Feedback         `bson:"feedback" json:"feedback"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	IsDisabled    bool               `bson:"isDisabled" json:"isDisabled"`
	AverageRating *float64           `bson:"averageRating" json:"averageRating"`
}

// AdminPostView is the moderation read model: slimmer than PostView and
// built over every post regardless of the disabled flag.
type AdminPostView struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	AverageRating *float64           `bson:"averageRating" json:"averageRating"`
	IsDisabled    bool               `bson:"isDisabled" json:"isDisabled"`
	// Feedback is projected only on the single-post view.
	Feedback []Feedback `bson:"feedback,omitempty" json:"feedback,omitempty"`
}
