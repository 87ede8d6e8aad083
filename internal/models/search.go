package models

// SearchResult is a normalized record returned by a web search adapter.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Product is a normalized record returned by a product discovery adapter.
type Product struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Website     string   `json:"website"`
	PostURL     string   `json:"post_url"`
	Votes       int      `json:"votes"`
	Topics      []string `json:"topics"`
}
