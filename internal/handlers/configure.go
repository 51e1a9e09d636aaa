package handlers

import (
	"time"

	"github.com/alexedwards/scs/v2"

	"levain/internal/store"
)

var (
	sessionManager *scs.SessionManager
	notebook       *store.Store
	nowFunc        = time.Now
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, st *store.Store) {
	sessionManager = sm
	notebook = st
}
