package analytics

import (
	"context"
	"time"

	"warden-moderation/internal/storage"
)

type Service struct {
	store *storage.Store
}

func New(store *storage.Store) *Service {
	return &Service{store: store}
}

// Report summarizes recorded moderation actions for one guild.
type Report struct {
	Total    int
	ByAction map[string]int
}

func (s *Service) Report(ctx context.Context, guildID string, since time.Time) (Report, error) {
	entries, err := s.store.ListAuditLogs(ctx, guildID, since.UnixMilli())
	if err != nil {
		return Report{}, err
	}

	report := Report{ByAction: make(map[string]int)}
	for _, entry := range entries {
		report.Total++
		report.ByAction[entry.Action]++
	}
	return report, nil
}
