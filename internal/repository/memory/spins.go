package memory

import (
	"context"
	"sync"
	"vault_backend/internal/model"
)

type SpinLogRepo struct {
	mtx     sync.RWMutex
	nextID  int64
	records []model.SpinRecord
}

func NewSpinLogRepository() *SpinLogRepo {
	return &SpinLogRepo{nextID: 1}
}

func (r *SpinLogRepo) AppendSpin(_ context.Context, rec *model.SpinRecord) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	rec.ID = r.nextID
	r.nextID++
	r.records = append(r.records, *rec)
	return nil
}

// ListSpins Новые записи первыми
func (r *SpinLogRepo) ListSpins(_ context.Context, userID int, limit int) ([]model.SpinRecord, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var out []model.SpinRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}
