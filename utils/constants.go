// File: utils/constants.go
package utils

// UploadURLPrefix is the public mount point for stored listing media.
const UploadURLPrefix = "/uploads"
