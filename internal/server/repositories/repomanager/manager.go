// Package repomanager bundles the repositories a service needs behind one
// handle.
package repomanager

import (
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/otps"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	OTPs() otps.Repository
	RevokedTokens() revokedtokens.Repository
	Bookings() bookings.Repository
}

// MemoryRepositoryManager keeps everything in process memory; all data is
// lost on restart.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	otps          *otps.MemoryRepository
	revokedTokens *revokedtokens.MemoryRepository
	bookings      *bookings.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		otps:          otps.NewMemoryRepository(),
		revokedTokens: revokedtokens.NewMemoryRepository(),
		bookings:      bookings.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) OTPs() otps.Repository { return m.otps }

func (m *MemoryRepositoryManager) RevokedTokens() revokedtokens.Repository { return m.revokedTokens }

func (m *MemoryRepositoryManager) Bookings() bookings.Repository { return m.bookings }
