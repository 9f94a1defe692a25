// Package repository defines the persistence contracts for pixelbeacon.
package repository

// Hit records one served pixel request. Rows are append-only: once inserted
// they are never updated or deleted.
type Hit struct {
	ID        int64
	Date      int64 // unix seconds at request receipt
	Category  *string
	IPAddress string
	Width     int
	Height    int
	Color     uint32 // packed RGBA, 0 = default transparent
	Metadata  *string
	UserAgent string
}
