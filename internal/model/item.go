package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultItemCategory = "Uncategorized"

// TagList is an ordered list of tags. Non-array JSON input is discarded and
// replaced with an empty list rather than failing the bind.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		*t = TagList{}
		return nil
	}
	if tags == nil {
		tags = []string{}
	}
	*t = TagList(tags)
	return nil
}

// Item represents a menu entry stored in the items collection
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	Badge       string             `bson:"badge" json:"badge"`
	BadgeColor  string             `bson:"badgeColor" json:"badgeColor"`
	IsLarge     bool               `bson:"isLarge" json:"isLarge"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateItemRequest is used for creating a new item
type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"` // Pointer so a zero price still binds
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Badge       string   `json:"badge"`
	BadgeColor  string   `json:"badgeColor"`
	IsLarge     bool     `json:"isLarge"`
	Tags        TagList  `json:"tags"`
}
