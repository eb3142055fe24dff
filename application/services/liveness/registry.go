package services

// SessionRegistry is the process-wide registry used by the HTTP controllers.
var SessionRegistry *Registry
