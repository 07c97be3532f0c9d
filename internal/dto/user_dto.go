package dto

type SignupRequest struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SaveResumeRequest struct {
	Resume string `json:"resume"`
}
