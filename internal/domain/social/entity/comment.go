package entity

// Comment represents a comment on a post
type Comment struct {
	ID       int    `json:"id"`
	PostID   int    `json:"postId"`
	Content  string `json:"content"`
	UserID   *int   `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
}
