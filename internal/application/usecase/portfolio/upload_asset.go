package portfolio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/adapters/event"
	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/asset"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

const (
	mimePDF  = "application/pdf"
	mimePPT  = "application/vnd.ms-powerpoint"
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// MediaPublisher is the media-topic slice of the Kafka producer.
type MediaPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
	PublishMediaEvent(ctx context.Context, payload event.MediaEventPayload) error
}

type UploadAssetUseCase struct {
	mirror      service.Mirror
	uploader    service.Uploader
	assetRepo   asset.Repository
	broadcaster service.Broadcaster
	publisher   MediaPublisher
	logger      logger.Logger
}

func NewUploadAssetUseCase(
	mirror service.Mirror,
	uploader service.Uploader,
	assetRepo asset.Repository,
	broadcaster service.Broadcaster,
	publisher MediaPublisher,
	log logger.Logger,
) *UploadAssetUseCase {
	return &UploadAssetUseCase{
		mirror:      mirror,
		uploader:    uploader,
		assetRepo:   assetRepo,
		broadcaster: broadcaster,
		publisher:   publisher,
		logger:      log,
	}
}

type UploadAssetInput struct {
	OwnerID  string
	Kind     string
	Filename string
	MimeType string
	File     io.Reader
}

type UploadAssetOutput struct {
	AssetID      uuid.UUID
	URL          string
	PreviewURL   *string
	IsPDF        bool
	IsPowerPoint bool
}

// Execute hands the file to the external file store and records the returned
// reference. Avatar uploads additionally apply the reference to the owner's
// document and notify the identity room; a missing document fails the upload
// before any file is stored.
func (uc *UploadAssetUseCase) Execute(ctx context.Context, input UploadAssetInput) (*UploadAssetOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadAsset")
	defer span.End()

	if err := validateMimeType(input.MimeType); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if input.Kind == asset.KindAvatar {
		if _, err := uc.mirror.Get(input.OwnerID); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	assetID := uuid.New()
	folder := fmt.Sprintf("portfolios/%s/%s", input.OwnerID, input.Kind)

	url, err := uc.uploader.Upload(ctx, input.File, folder, assetID.String())
	if err != nil {
		err = apperror.NewInternal("failed to upload asset file", err)
		span.RecordError(err)
		return nil, err
	}

	record := &asset.Asset{
		ID:        assetID,
		OwnerID:   input.OwnerID,
		Kind:      input.Kind,
		Filename:  input.Filename,
		URL:       url,
		MimeType:  input.MimeType,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.assetRepo.Save(ctx, record); err != nil {
		go func() {
			if delErr := uc.uploader.Delete(context.Background(), assetID.String()); delErr != nil {
				uc.logger.Error("Failed to delete orphaned upload", delErr, zap.String("asset_id", assetID.String()))
			}
		}()
		span.RecordError(err)
		return nil, err
	}

	if input.Kind == asset.KindAvatar {
		if err := uc.applyAvatar(input.OwnerID, url); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	go func() {
		err := uc.publisher.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			OwnerID:  input.OwnerID,
			Kind:     input.Kind,
			Filename: input.Filename,
			URL:      url,
		})
		if err != nil {
			uc.logger.Error("Failed to publish media event", err, zap.String("owner_id", input.OwnerID))
		}
	}()

	out := &UploadAssetOutput{
		AssetID:      assetID,
		URL:          url,
		IsPDF:        input.MimeType == mimePDF,
		IsPowerPoint: input.MimeType == mimePPT || input.MimeType == mimePPTX,
	}
	if input.Kind == asset.KindCertificate && (out.IsPDF || out.IsPowerPoint) {
		// No server-side conversion yet; the raw reference doubles as the
		// preview and the client renders it.
		out.PreviewURL = &url
	}
	return out, nil
}

// applyAvatar merges the new reference into the owner's profile and emits
// the identity-room notification after the merge committed.
func (uc *UploadAssetUseCase) applyAvatar(ownerID, url string) error {
	doc, err := uc.mirror.Get(ownerID)
	if err != nil {
		return err
	}
	profile := doc.Profile
	profile.AvatarURL = url

	merged, err := uc.mirror.Put(ownerID, portfolio.Partial{Profile: &profile})
	if err != nil {
		return err
	}

	uc.broadcaster.BroadcastRoom(service.RoomForOwner(ownerID), realtime.EventAvatarUploaded, avatarPayload{
		OwnerID:   ownerID,
		AvatarURL: url,
		Timestamp: isoNow(),
	})

	go func() {
		err := uc.publisher.PublishPortfolioEvent(context.Background(), event.PortfolioEventPayload{
			EventType: event.PortfolioEventTypeAvatar,
			OwnerID:   ownerID,
			Document:  merged,
		})
		if err != nil {
			uc.logger.Error("Failed to publish avatar event", err, zap.String("owner_id", ownerID))
		}
	}()
	return nil
}

func validateMimeType(mimeType string) error {
	if strings.HasPrefix(mimeType, "image/") ||
		mimeType == mimePDF || mimeType == mimePPT || mimeType == mimePPTX {
		return nil
	}
	return apperror.NewInvalidInput("only image files, PDFs, and PowerPoint files are allowed", nil)
}
