package models

// Image is an uploaded picture normalised for a vision call.
type Image struct {
	// Format is the short image format understood by providers: "png" or "jpeg".
	Format   string
	MIMEType string
	Data     []byte
}
