package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) SubmitBill(c *gin.Context) {
	var req domain.SubmitBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "malformed request body")
		return
	}

	bill, err := s.billingSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": bill})
}

func (s *Server) ListBills(c *gin.Context) {
	summaries, err := s.billingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

func (s *Server) GetBill(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))

	bill, err := s.billingSvc.Get(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bill})
}

func (s *Server) BillStats(c *gin.Context) {
	stats, err := s.billingSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) DownloadInvoice(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))

	doc, err := s.billingSvc.RenderPDF(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
