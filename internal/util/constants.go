package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeImage = "image/"
	MimeText  = "text/"
	MimePDF   = "application/pdf"
	MimeZip   = "application/zip"
	MimePNG   = "image/png"
)

// AllowedSubmissionTypes covers documents, archives (docx/xlsx sniff as zip) and images.
var AllowedSubmissionTypes = []string{MimePDF, MimeZip, MimeText, MimeImage}
