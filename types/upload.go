package types

type UploadResp struct {
	FileURL string `json:"file_url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}
