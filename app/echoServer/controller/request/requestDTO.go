package request

type CreateRequestReq struct {
	Description string `json:"description"`
}
