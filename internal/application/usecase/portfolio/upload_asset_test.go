package portfolio

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/asset"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type fakeUploader struct {
	mu         sync.Mutex
	uploads    int
	deletes    []string
	failDelete bool
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads++
	return "https://cdn.example.com/" + folder + "/" + publicID, nil
}

func (u *fakeUploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deletes = append(u.deletes, publicID)
	if u.failDelete {
		return apperror.NewInternal("delete failed", nil)
	}
	return nil
}

func (u *fakeUploader) deleted() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.deletes))
	copy(out, u.deletes)
	return out
}

type fakeAssetRepo struct {
	mu       sync.Mutex
	saved    []*asset.Asset
	failSave bool
}

func (r *fakeAssetRepo) Save(_ context.Context, a *asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return apperror.NewInternal("save failed", nil)
	}
	r.saved = append(r.saved, a)
	return nil
}

func (r *fakeAssetRepo) FindByFilename(_ context.Context, filename string) (*asset.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.saved {
		if a.Filename == filename {
			return a, nil
		}
	}
	return nil, apperror.NewNotFound("asset", filename)
}

func (r *fakeAssetRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*asset.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*asset.Asset
	for _, a := range r.saved {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newUploadFixture() (*UploadAssetUseCase, *fakeMirror, *fakeUploader, *fakeAssetRepo, *fakeBroadcaster, *fakePublisher) {
	mirror := newFakeMirror(testDoc(customerOwner))
	uploader := &fakeUploader{}
	assetRepo := &fakeAssetRepo{}
	broadcaster := &fakeBroadcaster{}
	publisher := newFakePublisher()
	uc := NewUploadAssetUseCase(mirror, uploader, assetRepo, broadcaster, publisher, logger.NewNop())
	return uc, mirror, uploader, assetRepo, broadcaster, publisher
}

func TestUpload_RejectsUnsupportedMimeType(t *testing.T) {
	uc, _, uploader, _, _, _ := newUploadFixture()

	_, err := uc.Execute(context.Background(), UploadAssetInput{
		OwnerID:  customerOwner,
		Kind:     asset.KindProjectImage,
		Filename: "notes.txt",
		MimeType: "text/plain",
		File:     strings.NewReader("hello"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Zero(t, uploader.uploads, "nothing must reach the file store")
}

func TestUpload_AvatarRequiresExistingPortfolio(t *testing.T) {
	uc, _, uploader, _, _, _ := newUploadFixture()

	_, err := uc.Execute(context.Background(), UploadAssetInput{
		OwnerID:  "ghost@test.com",
		Kind:     asset.KindAvatar,
		Filename: "face.png",
		MimeType: "image/png",
		File:     strings.NewReader("png"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Zero(t, uploader.uploads)
}

func TestUpload_AvatarMergesURLAndNotifiesIdentityRoom(t *testing.T) {
	uc, mirror, _, assetRepo, broadcaster, _ := newUploadFixture()

	out, err := uc.Execute(context.Background(), UploadAssetInput{
		OwnerID:  customerOwner,
		Kind:     asset.KindAvatar,
		Filename: "face.png",
		MimeType: "image/png",
		File:     strings.NewReader("png"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.URL)

	doc, err := mirror.Get(customerOwner)
	require.NoError(t, err)
	assert.Equal(t, out.URL, doc.Profile.AvatarURL)
	assert.Equal(t, "seeded", doc.Profile.Bio, "the rest of the profile survives the merge")

	require.Len(t, assetRepo.saved, 1)
	assert.Equal(t, asset.KindAvatar, assetRepo.saved[0].Kind)

	events := broadcaster.byEvent(realtime.EventAvatarUploaded)
	require.Len(t, events, 1)
	assert.Equal(t, customerOwner+"-updates", events[0].Room)
	payload, ok := events[0].Payload.(avatarPayload)
	require.True(t, ok)
	assert.Equal(t, out.URL, payload.AvatarURL)
}

func TestUpload_CertificatePDFCarriesPreviewFlags(t *testing.T) {
	uc, _, _, _, broadcaster, _ := newUploadFixture()

	out, err := uc.Execute(context.Background(), UploadAssetInput{
		OwnerID:  customerOwner,
		Kind:     asset.KindCertificate,
		Filename: "cert.pdf",
		MimeType: "application/pdf",
		File:     strings.NewReader("%PDF"),
	})
	require.NoError(t, err)

	assert.True(t, out.IsPDF)
	assert.False(t, out.IsPowerPoint)
	require.NotNil(t, out.PreviewURL)
	assert.Equal(t, out.URL, *out.PreviewURL)
	assert.Empty(t, broadcaster.records(), "non-avatar uploads do not broadcast")
}

func TestUpload_SaveFailureCompensatesStoredFile(t *testing.T) {
	uc, _, uploader, assetRepo, _, _ := newUploadFixture()
	assetRepo.failSave = true

	_, err := uc.Execute(context.Background(), UploadAssetInput{
		OwnerID:  customerOwner,
		Kind:     asset.KindProjectImage,
		Filename: "shot.png",
		MimeType: "image/png",
		File:     strings.NewReader("png"),
	})
	require.Error(t, err)

	assert.Eventually(t, func() bool {
		return len(uploader.deleted()) == 1
	}, 2*time.Second, 10*time.Millisecond, "the orphaned file must be removed")
}

func TestUpload_CompensationFailureIsSwallowed(t *testing.T) {
	uc, _, uploader, assetRepo, _, _ := newUploadFixture()
	assetRepo.failSave = true
	uploader.failDelete = true

	_, err := uc.Execute(context.Background(), UploadAssetInput{
		OwnerID:  customerOwner,
		Kind:     asset.KindProjectImage,
		Filename: "shot.png",
		MimeType: "image/png",
		File:     strings.NewReader("png"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInternal), "the caller sees the save error, not the cleanup error")

	assert.Eventually(t, func() bool {
		return len(uploader.deleted()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
