package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/valpere/translay/internal"
	"github.com/valpere/translay/pkg/logger"
)

type translationRoutes struct {
	t Translator
	l logger.Interface
}

func newTranslationRoutes(handler gin.IRoutes, t Translator, l logger.Interface) {
	r := &translationRoutes{t, l}

	handler.POST("/translate", r.doTranslate)
}

// @Summary     Translate
// @Description Translate a text, falling back across providers
// @ID          translate
// @Tags  	    translation
// @Accept      json
// @Produce     json
// @Param       request body internal.TranslationRequest true "Text and languages"
// @Success     200 {object} internal.TranslationResult
// @Failure     400 {object} internal.ErrorResult
// @Failure     500 {object} internal.ErrorResult
// @Router      /translate [post]
func (r *translationRoutes) doTranslate(c *gin.Context) {
	l := logger.FromContext(c.Request.Context(), r.l)

	var request internal.TranslationRequest
	// An empty body reads as {} and fails validation below.
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		l.Error(err, "http - v1 - doTranslate")
		errorResponse(c, internal.Internal)

		return
	}

	translation, err := r.t.Translate(c.Request.Context(), request)
	if err != nil {
		var e *internal.Error
		if errors.As(err, &e) && e.Kind.Status() == http.StatusBadRequest {
			errorResponse(c, e.Kind)

			return
		}

		l.Error(err, "http - v1 - doTranslate")
		errorResponse(c, internal.Internal)

		return
	}

	c.JSON(http.StatusOK, translation)
}
