package model

type StorageByType struct {
	Images int64 `json:"images"`
	Videos int64 `json:"videos"`
}

type AdminStats struct {
	TotalUsers    int64         `json:"total_users"`
	TotalFiles    int64         `json:"total_files"`
	TotalStorage  int64         `json:"total_storage"`
	StorageByType StorageByType `json:"storage_by_type"`
	TotalCapacity int64         `json:"total_capacity"`
	// Not clamped at zero so admins can see by how much they're over quota
	RemainingStorage int64 `json:"remaining_storage"`
}
