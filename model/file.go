package model

const (
	TypeImage = "image"
	TypeVideo = "video"
)

type File struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	// Denormalized so admin listings don't need a join per row
	UserEmail string `json:"user_email"`

	// Original file name as uploaded. Users may have several files with the
	// same name, sharing is done through the URL slug instead
	Name string `json:"name"`
	Type string `gorm:"not null" json:"type"`
	Size int64  `gorm:"not null" json:"size"`

	// Assigned share path, "/foto/{slug}" for images and "/video/{slug}"
	// for videos. CustomURL overrides it for resolution when set
	URL       string  `gorm:"uniqueIndex;not null" json:"url"`
	CustomURL *string `gorm:"uniqueIndex" json:"custom_url,omitempty"`

	// Unix millisecond timestamp
	CreatedAt int64 `gorm:"not null" json:"created_at"`
}

// SharePath returns the path the file is currently reachable under
func (f *File) SharePath() string {
	if f.CustomURL != nil {
		return *f.CustomURL
	}
	return f.URL
}
