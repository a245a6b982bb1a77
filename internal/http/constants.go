package httpx

const (
	// sessionCookieName carries the server-side session ID.
	sessionCookieName = "session_id"

	// maxRequestBody bounds proxied request bodies.
	maxRequestBody = 1 << 20
)
