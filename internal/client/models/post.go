package models

// Post is a single entry of a post listing.
type Post struct {
	PostID       string   `json:"post_id"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Op           string   `json:"op"`
	Subforum     string   `json:"subforum"`
	CreationDate string   `json:"creation_date"`
	ModifiedDate string   `json:"modified_date,omitempty"`
	Likes        int      `json:"likes"`
	Dislikes     int      `json:"dislikes"`
	Locked       bool     `json:"locked"`
	Media        []string `json:"media,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// SubforumInfo describes the listing a page belongs to.
type SubforumInfo struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Creator     string `json:"creator,omitempty"`
	CurrentPage int    `json:"current_page"`
	PageCount   int    `json:"page_count"`
	PostCount   int    `json:"post_count"`
}

// PostPage is one page of a root or subforum listing.
type PostPage struct {
	Posts []Post       `json:"posts"`
	Info  SubforumInfo `json:"info"`
	Page  int          `json:"-"`
}

// PostDraft carries the fields of POST /api/post/create.
type PostDraft struct {
	Subforum string
	Title    string
	Body     string
	Tags     []string
}

// SubforumDraft carries the fields of POST /api/subforum/create.
type SubforumDraft struct {
	Title       string
	Description string
}
