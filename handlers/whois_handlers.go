package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vit0-9/whois_api/models"
	"github.com/vit0-9/whois_api/pkg/lookup"
	"github.com/vit0-9/whois_api/pkg/middleware"
)

// Messages returned in the error body. The web frontend matches on them.
const (
	msgDomainRequired = "Domain parameter is required"
	msgInvalidFormat  = "Invalid domain format"
	msgQueryFailed    = "Query failed, please try again later"
)

// BatchResolver resolves a validated domain list. *lookup.Aggregator
// implements it.
type BatchResolver interface {
	ResolveAll(ctx context.Context, domains []string) (models.BatchResponse, error)
}

// WhoisHandlers serves batch WHOIS/RDAP lookups.
type WhoisHandlers struct {
	aggregator BatchResolver
	logger     *zap.Logger
}

func NewWhoisHandlers(aggregator BatchResolver, logger *zap.Logger) *WhoisHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhoisHandlers{aggregator: aggregator, logger: logger}
}

// LookupHandler godoc
// @Summary      Look up registration data for one or more domains
// @Description  Queries RDAP (falling back to WHOIS) for every domain in the comma-separated list, concurrently. A domain whose lookup fails gets an {"error": "..."} entry; the response is still 200.
// @Tags         WHOIS
// @Produce      json
// @Param        domain query string true "Domain name(s), comma-separated" example(example.com,itea.dev)
// @Success      200 {object} map[string]models.DomainRecord "Lookup result keyed by domain; failed domains hold {\"error\": \"...\"}"
// @Failure      400 {object} models.ErrorResponse "Missing parameter or malformed domain(s)"
// @Failure      429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} models.ErrorResponse "Unexpected failure"
// @Router       /lookup [get]
func (h *WhoisHandlers) LookupHandler(c *gin.Context) {
	raw, present := c.GetQuery("domain")
	domains, err := lookup.ParseDomains(raw, present)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validationMessage(err)})
		return
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("whois query panicked",
				zap.Any("panic", r),
				zap.Strings("domains", domains),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgQueryFailed})
		}
	}()

	// Issued lookups run to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	results, err := h.aggregator.ResolveAll(ctx, domains)
	if err != nil {
		h.logger.Error("whois query error",
			zap.Error(err),
			zap.Strings("domains", domains),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgQueryFailed})
		return
	}

	c.JSON(http.StatusOK, results)
}

func validationMessage(err error) string {
	var verr *lookup.ValidationError
	if !errors.As(err, &verr) {
		return msgInvalidFormat
	}
	switch verr.Kind {
	case lookup.MissingParameter:
		return msgDomainRequired
	case lookup.InvalidFormat:
		return msgInvalidFormat + ": " + strings.Join(verr.Offending, ", ")
	default:
		return msgInvalidFormat
	}
}
