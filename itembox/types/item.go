package types

type CreateItemRequest struct {
	ItemText string `json:"item_text"`
}

// UploadResponse carries the stored filename; it is null when nothing was stored.
type UploadResponse struct {
	Filename *string `json:"filename"`
}
