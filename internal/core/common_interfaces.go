package core

// AuthSession is the authenticated identity the session middleware
// attaches to a request.
type AuthSession interface {
	GetUserID() string
	GetRole() string
}
