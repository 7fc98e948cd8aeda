package session

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Username string `json:"username" doc:"User name" minLength:"1"`
	Secret   string `json:"secret" doc:"User secret" minLength:"1"`
}

type loginOutput struct {
	Body loginResponse
}

type loginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty" doc:"Bearer session token"`
}

type logoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token of the session to retire"`
}

type logoutOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
