package request

// StockItemRequest creates or replaces a stock item
type StockItemRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	CurrentStock int     `json:"current_stock"`
	MinStock     int     `json:"min_stock"`
	Price        float64 `json:"price"`
}

// StockFilterRequest represents stock list query parameters
type StockFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// NoteRequest creates or replaces a note
type NoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Priority string   `json:"priority"`
}

// NoteFilterRequest represents note list query parameters
type NoteFilterRequest struct {
	Search   string `form:"search"`
	Priority string `form:"priority"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// PostRequest is a new community feed post
type PostRequest struct {
	Content string   `json:"content"`
	Image   *string  `json:"image"`
	Tags    []string `json:"tags"`
}
