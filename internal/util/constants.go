package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Content types of the artifacts the platform stores: uploaded media,
// generated thumbnails, and transcript exports.
const (
	MimeVideo       = "video/"
	MimeJPEG        = "image/jpeg"
	MimePDF         = "application/pdf"
	MimeCSV         = "text/csv"
	MimeXML         = "application/xml"
	MimeOctetStream = "application/octet-stream"
)

var AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
