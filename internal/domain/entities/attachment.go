package entities

// Attachment is an uploaded quote request image. Key is the reference stored in
// QuoteRequest.Images; URL is a short-lived presigned download link.
type Attachment struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
