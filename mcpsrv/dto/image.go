package dto

// Image is one rendered gallery thumbnail as returned by the MCP tools.
type Image struct {
	Index    int      `json:"index"`
	Category string   `json:"category"`
	Thumb    string   `json:"thumb"`
	Full     string   `json:"full"`
	Alt      string   `json:"alt"`
	Tags     []string `json:"tags"`
	Visible  bool     `json:"visible"`
}

// Page is a page key and the navigation path that selects it.
type Page struct {
	Page string `json:"page"`
	Path string `json:"path"`
}
