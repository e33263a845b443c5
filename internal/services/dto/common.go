package dto

// ListResponse is the envelope for collection reads.
type ListResponse[T any] struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Data    []T    `json:"data"`
}

type DataResponse[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}
