package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"

	MaxPhotoSize = 5 << 20
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// 分页
const (
	MaxPageSize = 100
)

// 排序方向，兼容前端历史取值 "dsc"
const (
	SortAsc  = "asc"
	SortDesc = "desc"
	SortDsc  = "dsc"
)
