package internal

import (
	"gorm.io/gorm"

	"dormhub/room-api/internal/store"
	"dormhub/room-api/internal/verify"
	"dormhub/room-api/pkg/security"
)

// Deps holds every explicitly constructed collaborator the handlers need.
// Built once in the router, passed by pointer, no package-level singletons
type Deps struct {
	DB            *gorm.DB
	Users         *store.Users
	Verifications *store.Verifications
	Argon         *security.ArgonHash
	Sessions      *security.Sessions
	Verifier      *verify.Coordinator
}
