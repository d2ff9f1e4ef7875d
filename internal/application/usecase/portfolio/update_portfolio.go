package portfolio

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/adapters/event"
	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

// EventPublisher is the slice of the Kafka producer the portfolio use cases
// need; the worker picks these events up and write-behinds them into the
// durable store.
type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
}

type UpdatePortfolioUseCase struct {
	mirror      service.Mirror
	syncer      *SyncCoordinator
	broadcaster service.Broadcaster
	publisher   EventPublisher
	locks       *ownerLocks
	logger      logger.Logger
}

func NewUpdatePortfolioUseCase(
	mirror service.Mirror,
	syncer *SyncCoordinator,
	broadcaster service.Broadcaster,
	publisher EventPublisher,
	log logger.Logger,
) *UpdatePortfolioUseCase {
	return &UpdatePortfolioUseCase{
		mirror:      mirror,
		syncer:      syncer,
		broadcaster: broadcaster,
		publisher:   publisher,
		locks:       newOwnerLocks(),
		logger:      log,
	}
}

type UpdatePortfolioInput struct {
	OwnerID string
	Partial portfolio.Partial
}

type UpdatePortfolioOutput struct {
	Document *portfolio.Document
}

// Execute merges the partial into the owner's mirror entry, projects the same
// payload to the configured target owners when the write came from the sync
// source, and then broadcasts - strictly in that order. Broadcast never
// precedes a committed merge, and a failed merge emits nothing.
//
// The whole region runs under the owner's lock so rapid back-to-back updates
// resolve last-writer-wins per field. The durable store is not written here:
// the post-merge documents are published to Kafka and persisted off the
// request path.
func (uc *UpdatePortfolioUseCase) Execute(ctx context.Context, input UpdatePortfolioInput) (*UpdatePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdatePortfolio")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID))

	unlock := uc.locks.Lock(input.OwnerID)
	defer unlock()

	merged, err := uc.mirror.Put(input.OwnerID, input.Partial)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var synced []*portfolio.Document
	if uc.syncer.ShouldSync(input.OwnerID) {
		synced = uc.syncer.Propagate(input.Partial)
		uc.broadcaster.BroadcastRoom(service.RoomCustomerUpdates, realtime.EventPortfolioUpdated, adminSyncPayload{
			Message:   "Portfolio updated by admin",
			Timestamp: isoNow(),
		})
	}

	uc.broadcaster.BroadcastRoom(service.RoomForOwner(input.OwnerID), realtime.EventPortfolioChanged, changedPayload{
		OwnerID:   input.OwnerID,
		Portfolio: merged,
		UpdatedBy: "user",
		Timestamp: isoNow(),
	})
	uc.broadcaster.BroadcastAll(realtime.EventPortfolioUpdated, updatedPayload{
		OwnerID:   input.OwnerID,
		Message:   "Portfolio updated",
		Timestamp: isoNow(),
	})

	uc.publishWriteBehind(merged, synced)

	return &UpdatePortfolioOutput{Document: merged}, nil
}

func (uc *UpdatePortfolioUseCase) publishWriteBehind(merged *portfolio.Document, synced []*portfolio.Document) {
	payloads := make([]event.PortfolioEventPayload, 0, 1+len(synced))
	payloads = append(payloads, event.PortfolioEventPayload{
		EventType: event.PortfolioEventTypeUpdated,
		OwnerID:   merged.OwnerID,
		Document:  merged,
	})
	for _, doc := range synced {
		payloads = append(payloads, event.PortfolioEventPayload{
			EventType: event.PortfolioEventTypeSynced,
			OwnerID:   doc.OwnerID,
			Document:  doc,
		})
	}

	go func() {
		for _, p := range payloads {
			if err := uc.publisher.PublishPortfolioEvent(context.Background(), p); err != nil {
				uc.logger.Error("Failed to publish portfolio event", err,
					zap.String("owner_id", p.OwnerID), zap.String("event_type", p.EventType))
			}
		}
	}()
}
