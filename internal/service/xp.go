package service

import (
	"sync"

	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/xp"
)

type XPService struct {
	repo repository.XPRepository

	// serializes read-modify-write of totals within this process
	mu sync.Mutex
}

func NewXPService(repo repository.XPRepository) *XPService {
	return &XPService{repo: repo}
}

// userXP adapts the per-user repository to the ledger's Store
type userXP struct {
	repo   repository.XPRepository
	userID string
}

func (u userXP) Total() (int, error) {
	return u.repo.Total(u.userID)
}

func (u userXP) SetTotal(total int) error {
	return u.repo.SetTotal(u.userID, total)
}

func (s *XPService) ledger(userID string) *xp.Ledger {
	return xp.NewLedger(userXP{repo: s.repo, userID: userID})
}

// Award adds amount to the user's total and returns the points added
func (s *XPService) Award(userID string, amount float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger(userID).Award(amount)
}

func (s *XPService) Info(userID string) (xp.Info, error) {
	return s.ledger(userID).Info()
}

func (s *XPService) Total(userID string) (int, error) {
	return s.repo.Total(userID)
}

func (s *XPService) SetTotal(userID string, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.SetTotal(userID, total)
}
