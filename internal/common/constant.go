package common

// AuthorizationHeaderName is the HTTP header that carries the access token
// in the form "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme accepted by the server.
const BearerScheme = "Bearer"
