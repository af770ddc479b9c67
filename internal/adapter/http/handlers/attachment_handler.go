package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	response "instauto/internal/adapter/http/dto/response"
	"instauto/internal/usecase"
	"instauto/pkg"
)

var errMissingFile = pkg.NewDomainErrorSimple("INVALID_ATTACHMENT", "Multipart field \"file\" is required", http.StatusBadRequest)

type AttachmentHandler struct {
	usecase usecase.IAttachmentUseCase
}

func NewAttachmentHandler(uc usecase.IAttachmentUseCase) *AttachmentHandler {
	return &AttachmentHandler{usecase: uc}
}

// Upload godoc
// @Summary      Upload a quote request image
// @Description  Accepts one jpeg, png or webp up to 5 MiB. Use the returned key in the images list of a submission.
// @Tags         quote-requests
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      201   {object}  response.AttachmentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      503   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quote-requests/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(errMissingFile.HTTPStatus, errMissingFile.ToHTTPError())
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(errMissingFile.HTTPStatus, errMissingFile.ToHTTPError())
		return
	}
	defer f.Close()

	a, err := h.usecase.Upload(c.Request.Context(), actor, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromAttachment(a))
}

// URL godoc
// @Summary   Get a fresh link for an uploaded image
// @Tags      quote-requests
// @Produce   json
// @Param     key  query     string  true  "Attachment key"
// @Success   200  {object}  map[string]string
// @Failure   400  {object}  pkg.HTTPError
// @Security  Bearer
// @Router    /quote-requests/attachments/url [get]
func (h *AttachmentHandler) URL(c *gin.Context) {
	url, err := h.usecase.URL(c.Request.Context(), c.Query("key"))
	if err != nil {
		writeQuoteRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
