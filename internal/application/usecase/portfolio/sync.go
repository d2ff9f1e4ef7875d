package portfolio

import (
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

// SyncCoordinator projects writes from one source owner onto a list of
// target owners' mirror entries, so the customer-facing copy tracks the
// admin's edits. The projection is one-way and best-effort: a failed target
// write is logged and swallowed, never rolled back and never surfaced to the
// caller whose own write already succeeded.
type SyncCoordinator struct {
	sourceOwner  string
	targetOwners []string
	mirror       service.Mirror
	logger       logger.Logger
}

func NewSyncCoordinator(sourceOwner string, targetOwners []string, mirror service.Mirror, log logger.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		sourceOwner:  sourceOwner,
		targetOwners: targetOwners,
		mirror:       mirror,
		logger:       log,
	}
}

// ShouldSync reports whether a write to the given owner triggers the
// projection. Only the configured source owner does; no other identity ever
// touches the targets.
func (s *SyncCoordinator) ShouldSync(ownerID string) bool {
	return ownerID == s.sourceOwner
}

// Propagate applies the same partial payload, under the same shallow-merge
// rule, to each target owner's mirror entry. It returns the post-merge
// documents of the targets that succeeded.
func (s *SyncCoordinator) Propagate(partial portfolio.Partial) []*portfolio.Document {
	synced := make([]*portfolio.Document, 0, len(s.targetOwners))
	for _, target := range s.targetOwners {
		doc, err := s.mirror.Put(target, partial)
		if err != nil {
			s.logger.Warn("failed to sync portfolio to target owner",
				zap.String("source_owner", s.sourceOwner),
				zap.String("target_owner", target),
				zap.Error(err))
			continue
		}
		synced = append(synced, doc)
	}
	return synced
}
