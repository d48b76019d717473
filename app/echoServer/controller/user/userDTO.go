package user

type CreateUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
