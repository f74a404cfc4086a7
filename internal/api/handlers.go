package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"gocorr/adapters/datareadiness/coercer"
	"gocorr/adapters/excel"
	"gocorr/app"
	"gocorr/domain/core"
	"gocorr/domain/dataset"
	"gocorr/domain/stats"
	"gocorr/internal/analysis/inference"
	"gocorr/internal/errors"

	"github.com/gin-gonic/gin"
)

const defaultReportLimit = 20

type loadRecordsRequest struct {
	Records []map[string]interface{} `json:"records"`
}

type pairRequest struct {
	X         string   `json:"x" binding:"required"`
	Y         string   `json:"y" binding:"required"`
	Sidedness string   `json:"sidedness"`
	Alpha     *float64 `json:"alpha"`
}

type dimensionsRequest struct {
	Subscales dataset.DimensionSet `json:"subscales"`
	Spec      string               `json:"spec"`
}

type variablePairRequest struct {
	Var1      string `json:"var1" binding:"required"`
	Var2      string `json:"var2" binding:"required"`
	Unit      string `json:"unit"`
	Place     string `json:"place"`
	Sidedness string `json:"sidedness"`
}

// ============================================================================
// DATASET
// ============================================================================

func (s *Server) handleLoadRecords(c *gin.Context) {
	var req loadRecordsRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.service.LoadRecords(req.Records); err != nil {
		s.respondError(c, err)
		return
	}
	s.respondDatasetLoaded(c)
}

func (s *Server) handleLoadCSV(c *gin.Context) {
	table, err := excel.ReadCSV(c.Request.Body, coercer.DefaultCoercionConfig())
	if err != nil {
		if !stderrors.Is(err, core.ErrEmptyDataset) {
			err = errors.InvalidInput(err.Error())
		}
		s.respondError(c, err)
		return
	}
	if err := s.service.LoadDataset(table); err != nil {
		s.respondError(c, err)
		return
	}
	s.respondDatasetLoaded(c)
}

func (s *Server) respondDatasetLoaded(c *gin.Context) {
	table, err := s.service.Table()
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.events.Broadcast(AnalysisEvent{
		EventType: EventDatasetLoaded,
		Data:      map[string]interface{}{"rows": len(table.Rows), "columns": len(table.Columns)},
	})
	c.JSON(http.StatusOK, gin.H{
		"rows":    len(table.Rows),
		"columns": table.Columns,
		"numeric": table.NumericColumns(),
	})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	table, err := s.service.Table()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="dataset.csv"`)
	if err := excel.WriteCSV(c.Writer, table); err != nil {
		s.logger.Error("[HTTP] CSV export failed: %v", err)
	}
}

func (s *Server) handleProfile(c *gin.Context) {
	profiles, err := s.service.Profile()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (s *Server) handleClearDataset(c *gin.Context) {
	s.service.ClearDataset()
	s.events.Broadcast(AnalysisEvent{EventType: EventDatasetCleared})
	c.Status(http.StatusNoContent)
}

func (s *Server) handleColumns(c *gin.Context) {
	columns, err := s.service.Columns()
	if err != nil {
		s.respondError(c, err)
		return
	}
	numeric, err := s.service.NumericColumns()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns, "numeric": numeric})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary, err := s.service.Describe(c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleNormality(c *gin.Context) {
	result, err := s.service.NormalityTest(c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ============================================================================
// CORRELATION AND HYPOTHESIS
// ============================================================================

func (s *Server) handleCorrelate(c *gin.Context) {
	var req pairRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, ok := s.correlatePair(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHypothesis(c *gin.Context) {
	var req pairRequest
	if !s.bindJSON(c, &req) {
		return
	}
	result, ok := s.correlatePair(c, req)
	if !ok {
		return
	}

	var decision stats.HypothesisDecision
	var err error
	if req.Alpha != nil {
		decision, err = s.service.TestHypothesisAt(result, *req.Alpha)
	} else {
		decision, err = s.service.TestHypothesis(result)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"correlation": result, "hypothesis": decision})
}

func (s *Server) correlatePair(c *gin.Context, req pairRequest) (stats.CorrelationResult, bool) {
	sidedness, err := stats.ParseSidedness(req.Sidedness)
	if err != nil {
		s.respondError(c, err)
		return stats.CorrelationResult{}, false
	}
	result, err := s.service.Correlate(req.X, req.Y, sidedness)
	if err != nil {
		s.respondError(c, err)
		return stats.CorrelationResult{}, false
	}
	return result, true
}

// ============================================================================
// DIMENSIONS AND FRAMEWORK
// ============================================================================

func (s *Server) handleGetDimensions(c *gin.Context) {
	variable := c.Param("variable")
	dims, ok := s.service.Dimensions(variable)
	if !ok {
		s.respondError(c, errors.NotFound(fmt.Sprintf("dimensions of %q", variable)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"variable": variable, "dimensions": dims})
}

func (s *Server) handleConfigureDimensions(c *gin.Context) {
	var req dimensionsRequest
	if !s.bindJSON(c, &req) {
		return
	}

	variable := c.Param("variable")
	var warnings []string
	var err error
	if req.Spec != "" {
		warnings, err = s.service.ParseDimensions(variable, req.Spec)
	} else {
		warnings, err = s.service.ConfigureDimensions(variable, req.Subscales)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	dims, _ := s.service.Dimensions(variable)
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"variable": variable, "dimensions": dims, "warnings": warnings})
}

func (s *Server) handleCorrelateDimensions(c *gin.Context) {
	var req variablePairRequest
	if !s.bindJSON(c, &req) {
		return
	}
	sidedness, err := stats.ParseSidedness(req.Sidedness)
	if err != nil {
		s.respondError(c, err)
		return
	}

	results, err := s.service.CorrelateByDimensions(c.Request.Context(), req.Var1, req.Var2, sidedness)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleGetFramework(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.FrameworkConfig())
}

func (s *Server) handleConfigureFramework(c *gin.Context) {
	var cfg inference.FrameworkConfig
	if !s.bindJSON(c, &cfg) {
		return
	}
	if err := s.service.ConfigureFramework(cfg); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.service.FrameworkConfig())
}

// ============================================================================
// REPORTS
// ============================================================================

func (s *Server) handleCreateReport(c *gin.Context) {
	var req variablePairRequest
	if !s.bindJSON(c, &req) {
		return
	}
	sidedness, err := stats.ParseSidedness(req.Sidedness)
	if err != nil {
		s.respondError(c, err)
		return
	}

	rep, err := s.service.BuildReport(c.Request.Context(), app.ReportRequest{
		Var1:      req.Var1,
		Var2:      req.Var2,
		Unit:      req.Unit,
		Place:     req.Place,
		Sidedness: sidedness,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.events.Broadcast(AnalysisEvent{
		EventType: EventReportCreated,
		ReportID:  rep.ID.String(),
		Data: map[string]interface{}{
			"method":   rep.Correlation.Method,
			"decision": rep.Hypothesis.Decision,
		},
	})
	c.JSON(http.StatusCreated, rep)
}

func (s *Server) handleListReports(c *gin.Context) {
	limit := defaultReportLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(c, errors.InvalidInput(fmt.Sprintf("limit must be a positive integer, got %q", raw)))
			return
		}
		limit = n
	}

	summaries, err := s.service.Reports(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	rep, err := s.service.Report(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
