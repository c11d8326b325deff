package dto

// Envelope is the uniform response body returned by every endpoint.
type Envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Count      *int   `json:"count,omitempty"`
	TotalCount *int64 `json:"totalCount,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKList wraps a list and its length.
func OKList[T any](items []T) Envelope {
	n := len(items)
	return Envelope{Success: true, Data: items, Count: &n}
}

// OKPage wraps one page of a list together with the total number of matches.
func OKPage[T any](items []T, total int64) Envelope {
	n := len(items)
	return Envelope{Success: true, Data: items, Count: &n, TotalCount: &total}
}

// Fail builds an error envelope.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}
