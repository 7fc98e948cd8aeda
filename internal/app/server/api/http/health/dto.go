package health

type Input struct{}

type Output struct {
	Body Response
}

// Response reports whether the vault server is up. It says nothing about
// the vault itself; a sealed or empty vault still answers OK.
type Response struct {
	Status string `json:"status" example:"OK" doc:"Liveness indicator of the vault server"`
}
