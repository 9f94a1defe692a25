package service

import (
	"time"

	"github.com/creamcroissant/pixelbeacon/internal/repository"
)

// dateLayout renders stored timestamps at second precision, UTC.
const dateLayout = "2006-01-02 15:04:05"

// ImageView describes the image a hit served.
type ImageView struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  uint32 `json:"color"`
}

// HitView is the externally visible shape of a stored hit.
type HitView struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	UnixTime  int64     `json:"unix_time"`
	Category  *string   `json:"category"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Metadata  *string   `json:"metadata"`
	Image     ImageView `json:"image"`
}

func shapeHit(hit *repository.Hit) HitView {
	return HitView{
		ID:        hit.ID,
		Date:      time.Unix(hit.Date, 0).UTC().Format(dateLayout),
		UnixTime:  hit.Date,
		Category:  hit.Category,
		IPAddress: hit.IPAddress,
		UserAgent: hit.UserAgent,
		Metadata:  hit.Metadata,
		Image: ImageView{
			Width:  hit.Width,
			Height: hit.Height,
			Color:  hit.Color,
		},
	}
}
