package api

// User is the account returned by GET /auth/me.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string `json:"token"`
}

type lookupRequest struct {
	Message string `json:"message"`
	Force   bool   `json:"force"`
}

type saveRequest struct {
	Lemma string `json:"lemma"`
}
