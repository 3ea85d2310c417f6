package transport

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type LoginResponse struct {
	OK   bool        `json:"ok"`
	User UserSummary `json:"user"`
}

type ProductRequest struct {
	Name     string  `json:"name"`
	Stock    string  `json:"stock"`
	Price    float64 `json:"price"`
	Code     string  `json:"code"`
	ImageURL string  `json:"img"`
}

type BackfillResponse struct {
	Updated int `json:"updated"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
