package model

// swagger:model Post
type Post struct {
	BaseModel
	AuthorID  uint      `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Specialty string    `gorm:"size:100;index" json:"specialty"`
	Upvotes   int       `gorm:"default:0" json:"upvotes"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// swagger:model Comment
type Comment struct {
	BaseModel
	PostID   uint   `gorm:"index;type:bigint unsigned" json:"postId"`
	AuthorID uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body     string `gorm:"type:text;not null" json:"body"`
}

func (Comment) TableName() string {
	return "comments"
}
