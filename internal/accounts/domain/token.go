package domain

// LoginResult is returned by login and refresh. ExpiresIn is the access
// token lifetime in milliseconds.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "Bearer"
	ExpiresIn    int64
	User         PublicUser
}
