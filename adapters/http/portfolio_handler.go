package http

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/gayathrinuthana/portfolio-api/internal/application/usecase/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/asset"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

const maxUploadBytes = 5 << 20 // 5 MB, same cap for every upload kind

type PortfolioHandler struct {
	createUC    *portfolioUC.CreatePortfolioUseCase
	getUC       *portfolioUC.GetPortfolioUseCase
	updateUC    *portfolioUC.UpdatePortfolioUseCase
	deleteUC    *portfolioUC.DeletePortfolioUseCase
	uploadUC    *portfolioUC.UploadAssetUseCase
	assetFinder asset.Repository
	logger      logger.Logger
}

func NewPortfolioHandler(
	createUC *portfolioUC.CreatePortfolioUseCase,
	getUC *portfolioUC.GetPortfolioUseCase,
	updateUC *portfolioUC.UpdatePortfolioUseCase,
	deleteUC *portfolioUC.DeletePortfolioUseCase,
	uploadUC *portfolioUC.UploadAssetUseCase,
	assetFinder asset.Repository,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		createUC:    createUC,
		getUC:       getUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		uploadUC:    uploadUC,
		assetFinder: assetFinder,
		logger:      log,
	}
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio body", err))
		return
	}

	output, err := h.createUC.Execute(c.Request.Context(), portfolioUC.CreatePortfolioInput{
		Document: req.Document,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, output.Document)
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	output, err := h.getUC.Execute(c.Request.Context(), portfolioUC.GetPortfolioInput{
		OwnerID: c.Param("ownerId"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Document)
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid portfolio update body", err))
		return
	}
	if req.Partial.IsEmpty() {
		c.Error(apperror.NewInvalidInput("portfolio update body names no fields", nil))
		return
	}

	output, err := h.updateUC.Execute(c.Request.Context(), portfolioUC.UpdatePortfolioInput{
		OwnerID: c.Param("ownerId"),
		Partial: req.Partial,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Document)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	err := h.deleteUC.Execute(c.Request.Context(), portfolioUC.DeletePortfolioInput{
		OwnerID: c.Param("ownerId"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted"})
}

// UploadPhoto stores a new avatar and applies it to the owner's profile.
func (h *PortfolioHandler) UploadPhoto(c *gin.Context) {
	h.upload(c, "avatar", asset.KindAvatar, func(out *portfolioUC.UploadAssetOutput) any {
		return gin.H{"avatarUrl": out.URL}
	})
}

func (h *PortfolioHandler) UploadProjectImage(c *gin.Context) {
	h.upload(c, "projectImage", asset.KindProjectImage, func(out *portfolioUC.UploadAssetOutput) any {
		return UploadResponse{ImageURL: out.URL}
	})
}

func (h *PortfolioHandler) UploadCertificateImage(c *gin.Context) {
	h.upload(c, "certificateImage", asset.KindCertificate, func(out *portfolioUC.UploadAssetOutput) any {
		return UploadResponse{
			ImageURL:     out.URL,
			PreviewURL:   out.PreviewURL,
			IsPDF:        &out.IsPDF,
			IsPowerPoint: &out.IsPowerPoint,
		}
	})
}

func (h *PortfolioHandler) upload(c *gin.Context, field, kind string, respond func(*portfolioUC.UploadAssetOutput) any) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.Error(apperror.NewInvalidInput("'"+field+"' file is required", err))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.NewTooLarge("file exceeds the 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadUC.Execute(c.Request.Context(), portfolioUC.UploadAssetInput{
		OwnerID:  c.Param("ownerId"),
		Kind:     kind,
		Filename: fileHeader.Filename,
		MimeType: contentTypeOf(fileHeader),
		File:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, respond(output))
}

// PDFPreview resolves an uploaded file by its original filename and redirects
// to the stored reference.
func (h *PortfolioHandler) PDFPreview(c *gin.Context) {
	a, err := h.assetFinder.FindByFilename(c.Request.Context(), c.Param("filename"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, a.URL)
}

func contentTypeOf(fh *multipart.FileHeader) string {
	return fh.Header.Get("Content-Type")
}
