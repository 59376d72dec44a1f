package handler

import (
	"medicare-call-server/internal/apierrors"
	"medicare-call-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// SignatureValidator checks Twilio webhook signatures.
type SignatureValidator interface {
	ValidateSignature(url string, params map[string]string, signature string) bool
}

// TwilioSignatureMiddleware rejects webhook requests that were not signed by
// Twilio. Enforcement is off in debug mode so local testing with curl works.
func TwilioSignatureMiddleware(validator SignatureValidator, publicURL string, enforce bool, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enforce {
			c.Next()
			return
		}

		signature := c.GetHeader("X-Twilio-Signature")
		if signature == "" {
			apierrors.Forbidden(c, "INVALID_SIGNATURE", "missing webhook signature")
			c.Abort()
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			apierrors.BadRequest(c, "INVALID_FORM", "could not parse request form")
			c.Abort()
			return
		}

		// Twilio signs the exact public URL it posted to.
		url := publicURL + c.Request.URL.RequestURI()

		params := make(map[string]string, len(c.Request.PostForm))
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		if !validator.ValidateSignature(url, params, signature) {
			logger.Warn(c.Request.Context(), "rejected webhook with invalid Twilio signature")
			apierrors.Forbidden(c, "INVALID_SIGNATURE", "invalid webhook signature")
			c.Abort()
			return
		}

		c.Next()
	}
}
