package v1

// BasePath is the prefix of every version 1 route
const BasePath = "/api/v1/skd"
