package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var (
	_ repository.LedgerRepository  = (*LedgerRepo)(nil)
	_ repository.SettingRepository = (*SettingRepo)(nil)
)

// LedgerRepo eventos del libro en memoria (solo inserción).
type LedgerRepo struct{ base }

func (r *LedgerRepo) Create(event *entity.LedgerEvent) error {
	return r.view(func(s *state) error {
		if event.ID == "" {
			event.ID = uuid.New().String()
		}
		if event.Datetime.IsZero() {
			event.Datetime = time.Now()
		}
		s.events = append(s.events, copyEvent(event))
		return nil
	})
}

func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEvent, error) {
	var out *entity.LedgerEvent
	err := r.view(func(s *state) error {
		for _, e := range s.events {
			if e.ID == id {
				out = copyEvent(e)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *LedgerRepo) List(f repository.LedgerFilter) ([]*entity.LedgerEvent, error) {
	var out []*entity.LedgerEvent
	err := r.view(func(s *state) error {
		for _, e := range s.events {
			if f.Kind != "" && e.Kind != f.Kind {
				continue
			}
			if f.UserID != 0 && e.SenderID != f.UserID && e.RecipientID != f.UserID {
				continue
			}
			if f.SenderID != 0 && e.SenderID != f.SenderID {
				continue
			}
			if f.RecipientID != 0 && e.RecipientID != f.RecipientID {
				continue
			}
			if f.ShopID != 0 && (e.ShopID == nil || *e.ShopID != f.ShopID) {
				continue
			}
			if !f.Since.IsZero() && e.Datetime.Before(f.Since) {
				continue
			}
			out = append(out, copyEvent(e))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Datetime.After(out[j].Datetime) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, err
}

// SettingRepo versiones de configuración en memoria.
type SettingRepo struct{ base }

func (r *SettingRepo) Current() (*entity.Setting, error) {
	var out *entity.Setting
	err := r.view(func(s *state) error {
		if n := len(s.settings); n > 0 {
			c := *s.settings[n-1]
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *SettingRepo) Append(setting *entity.Setting) error {
	return r.view(func(s *state) error {
		setting.Version = int64(len(s.settings) + 1)
		if setting.CreatedAt.IsZero() {
			setting.CreatedAt = time.Now()
		}
		c := *setting
		s.settings = append(s.settings, &c)
		return nil
	})
}
