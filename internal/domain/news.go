package domain

import "time"

// News sentiment labels
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// MarketNews Model
type MarketNews struct {
	ID            uint      `gorm:"primaryKey" json:"id"`               // Primary key
	Title         string    `gorm:"size:255;not null" json:"title"`     // Headline
	Summary       string    `gorm:"type:text" json:"summary"`           // Article summary
	Source        string    `gorm:"size:100" json:"source"`             // Publisher name
	URL           string    `gorm:"size:255" json:"url,omitempty"`      // Link to the article
	Sentiment     string    `gorm:"size:10" json:"sentiment"`           // POSITIVE, NEGATIVE or NEUTRAL
	PublishedDate time.Time `gorm:"index" json:"published_date"`        // Original publication time
	CreatedAt     time.Time `json:"created"`                            // Ingestion timestamp
}
