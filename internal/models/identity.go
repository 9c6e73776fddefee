package models

// Identity is what the identity provider supplies per request: a
// stable voter/owner identifier plus whether it was authenticated.
// Anonymous-enabled polls accept votes keyed by an unauthenticated
// voter token; everything else requires an authenticated user.
type Identity struct {
	UserID          string `json:"user_id"`
	IsAuthenticated bool   `json:"is_authenticated"`
}
