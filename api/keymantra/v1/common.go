// Package keymantrav1 holds the request and response messages of the
// keymantra.v1 Connect services. Messages are exchanged as JSON with
// lowerCamelCase field names.
package keymantrav1

// Empty is returned by calls without a payload.
type Empty struct{}

type IDRequest struct {
	Id int64 `json:"id"`
}

func (r *IDRequest) GetId() int64 {
	if r == nil {
		return 0
	}
	return r.Id
}

type PaginationRequest struct {
	PageNo   int32 `json:"pageNo,omitempty"`
	PageSize int32 `json:"pageSize,omitempty"`
}

func (p *PaginationRequest) GetPageNo() int32 {
	if p == nil {
		return 0
	}
	return p.PageNo
}

func (p *PaginationRequest) GetPageSize() int32 {
	if p == nil {
		return 0
	}
	return p.PageSize
}

type PaginationResponse struct {
	PageNo   int32 `json:"pageNo"`
	PageSize int32 `json:"pageSize"`
	Total    int64 `json:"total"`
}
