package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/logger"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

// maxAnalyzeBody bounds the analyze request body. JSON escapes can spend
// six bytes on one character.
const maxAnalyzeBody = 6*domain.MaxInputLength + 1024

func (s *Server) health(c *gin.Context) {
	h := s.ports.Health.Check(c.Request.Context())
	status := http.StatusOK
	if !h.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, h)
}

func (s *Server) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAnalyzeBody)
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, CodeInputTooLong, domain.MessageInputTooLong)
			return
		}
		abortWithError(c, http.StatusBadRequest, CodeInvalidInput, MessageInvalidBody)
		return
	}
	result, err := s.ports.Analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) suggestIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(s.ports.Suggestions.Ingredients(c.Request.Context(), c.Query("q"))))
}

func (s *Server) suggestProducts(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(s.ports.Suggestions.Products(c.Request.Context(), c.Query("q"))))
}

func nonNil(items []domain.Suggestion) []domain.Suggestion {
	if items == nil {
		return []domain.Suggestion{}
	}
	return items
}

func (s *Server) listIngredients(c *gin.Context) {
	q := domain.IngredientQuery{Query: c.Query("q")}
	for _, raw := range c.QueryArray("function") {
		for _, fn := range strings.Split(raw, ",") {
			if fn = strings.TrimSpace(fn); fn != "" {
				q.Functions = append(q.Functions, domain.IngredientFunction(fn))
			}
		}
	}

	p := queryParser{c: c}
	q.FungalAcneSafe = p.boolParam("fa_safe")
	q.AllergenFree = p.boolParam("allergen_free")
	q.MaxComedogenic = p.optionalIntParam("max_comedogenic")
	q.Limit = p.intParam("limit")
	q.Offset = p.intParam("offset")
	if p.err != nil {
		respondError(c, p.err)
		return
	}

	page, err := s.ports.Ingredients.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getIngredient(c *gin.Context) {
	ing, err := s.ports.Ingredients.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (s *Server) listProducts(c *gin.Context) {
	q := domain.ProductQuery{
		Query:                 c.Query("q"),
		BrandSlug:             c.Query("brand"),
		Category:              domain.ProductCategory(c.Query("category")),
		IngredientSlug:        c.Query("ingredient"),
		ExcludeIngredientSlug: c.Query("exclude_ingredient"),
		Sort:                  domain.ProductSort(c.Query("sort")),
	}
	p := queryParser{c: c}
	q.FungalAcneSafe = p.boolParam("fa_safe")
	q.MinRating = p.floatParam("min_rating")
	q.Limit = p.intParam("limit")
	q.Offset = p.intParam("offset")
	if p.err != nil {
		respondError(c, p.err)
		return
	}

	page, err := s.ports.Products.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.ports.Products.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) relatedProducts(c *gin.Context) {
	items, err := s.ports.Products.Related(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.Product{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) productOffers(c *gin.Context) {
	cmp, err := s.ports.Affiliate.Offers(c.Request.Context(), c.Param("slug"), c.Query("country"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (s *Server) productSafety(c *gin.Context) {
	summary, err := s.ports.Products.Safety(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// affiliateClick redirects to a stored retailer URL. Only offer IDs are
// accepted, never target URLs.
func (s *Server) affiliateClick(c *gin.Context) {
	offerID := c.Query("offerId")
	if offerID == "" {
		abortWithError(c, http.StatusBadRequest, CodeInvalidInput, MessageMissingOfferID)
		return
	}

	target, err := s.ports.Affiliate.Click(c.Request.Context(), offerID)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, target)
	case errors.Is(err, domain.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, CodeInvalidInput, MessageInvalidOfferID)
	case errors.Is(err, domain.ErrNotFound):
		abortWithError(c, http.StatusNotFound, CodeNotFound, MessageOfferNotFound)
	case errors.Is(err, domain.ErrInvalidOfferURL):
		abortWithError(c, http.StatusInternalServerError, CodeInvalidOfferURL, MessageInvalidRedirect)
	default:
		logger.Error("affiliate click %s: %v", offerID, err)
		abortWithError(c, http.StatusInternalServerError, CodeInternal, MessageInternal)
	}
}

// queryParser reads typed query parameters, keeping the first error.
type queryParser struct {
	c   *gin.Context
	err error
}

func (p *queryParser) fail(key, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid value %q for %s: %w", raw, key, domain.ErrInvalidInput)
	}
}

func (p *queryParser) boolParam(key string) bool {
	raw := p.c.Query(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw)
	}
	return v
}

func (p *queryParser) intParam(key string) int {
	raw := p.c.Query(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw)
	}
	return v
}

func (p *queryParser) optionalIntParam(key string) *int {
	if p.c.Query(key) == "" {
		return nil
	}
	v := p.intParam(key)
	return &v
}

func (p *queryParser) floatParam(key string) float64 {
	raw := p.c.Query(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw)
	}
	return v
}
