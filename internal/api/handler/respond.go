package handler

// dataResponse is the uniform success envelope for single-item responses.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// listResponse adds the item count and page links for collection responses.
type listResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination *pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

type pageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// pagination links the neighbouring pages; a missing side means there is no
// page in that direction.
type pagination struct {
	Next *pageRef `json:"next,omitempty"`
	Prev *pageRef `json:"prev,omitempty"`
}

// tokenResponse carries a freshly issued session token.
type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// emptyData is the body of delete responses: {"success":true,"data":{}}.
var emptyData = struct{}{}
