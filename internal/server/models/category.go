package models

// Category is a node of the category tree. Depth is 0 for root categories.
type Category struct {
	ID        string
	ParentID  *string
	Name      string
	Slug      string
	Color     *string
	Icon      *string
	BannerKey *string
	Threads   int64
	Posts     int64
	IsClosed  bool
	Depth     int
}
