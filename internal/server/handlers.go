package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"biodesigner/internal/codon"
	"biodesigner/internal/model"
	"biodesigner/pkg/biodesigner"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func reject(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Message: message})
}

// fail answers 400 for caller errors and 500 with message otherwise.
func (s *Server) fail(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, biodesigner.ErrInvalidRequest) {
		status = http.StatusBadRequest
		s.requestLogger(c).Warn("rejected request", "error", err)
	} else {
		s.requestLogger(c).Error(message, "error", err)
	}
	c.JSON(status, envelope{Success: false, Message: message, Error: err.Error()})
}

func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.requestLogger(c).Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: bindingMessage(err), Error: err.Error()})
		return false
	}
	return true
}

func (s *Server) handleHealth(c *gin.Context) {
	respond(c, gin.H{"status": "ok"})
}

type circuitRequest struct {
	Nodes            []model.Node      `json:"nodes"`
	Edges            []model.Edge      `json:"edges"`
	OptimizationGoal string            `json:"optimizationGoal" binding:"omitempty,circuitgoal"`
	Constraints      model.Constraints `json:"constraints"`
}

type circuitImprovements struct {
	OriginalScore  float64 `json:"originalScore"`
	OptimizedScore float64 `json:"optimizedScore"`
}

type circuitStats struct {
	Iterations       int       `json:"iterations"`
	OptimizationGoal string    `json:"optimizationGoal"`
	Accepted         int       `json:"accepted"`
	Runs             int       `json:"runs"`
	Seed             int64     `json:"seed"`
	RunID            string    `json:"runId"`
	Operators        []string  `json:"operators"`
	Trace            []float64 `json:"trace"`
}

type circuitResponse struct {
	OriginalDesign  model.Design        `json:"originalDesign"`
	OptimizedDesign model.Design        `json:"optimizedDesign"`
	Improvements    circuitImprovements `json:"improvements"`
	Stats           circuitStats        `json:"stats"`
}

func (s *Server) handleOptimizeCircuit(c *gin.Context) {
	var req circuitRequest
	if !s.bind(c, &req) {
		return
	}
	if req.Nodes == nil || req.Edges == nil || req.OptimizationGoal == "" {
		reject(c, "Nodes, edges, and optimization goal are required")
		return
	}

	run, err := s.client.OptimizeCircuit(c.Request.Context(), biodesigner.CircuitRequest{
		Design:      model.Design{Nodes: req.Nodes, Edges: req.Edges},
		Goal:        model.Goal(req.OptimizationGoal),
		Constraints: req.Constraints,
	})
	if err != nil {
		s.fail(c, "Failed to optimize genetic circuit", err)
		return
	}

	result := run.Result
	optimizationScoreGain.WithLabelValues(string(result.Goal)).Observe(result.OptimizedScore - result.OriginalScore)
	optimizationAccepted.WithLabelValues(string(result.Goal)).Add(float64(result.Accepted))

	respond(c, circuitResponse{
		OriginalDesign:  result.OriginalDesign,
		OptimizedDesign: result.OptimizedDesign,
		Improvements: circuitImprovements{
			OriginalScore:  result.OriginalScore,
			OptimizedScore: result.OptimizedScore,
		},
		Stats: circuitStats{
			Iterations:       result.Iterations,
			OptimizationGoal: string(result.Goal),
			Accepted:         result.Accepted,
			Runs:             run.Config.Runs,
			Seed:             run.Config.Seed,
			RunID:            run.Config.RunID,
			Operators:        run.Config.Operators,
			Trace:            result.Trace,
		},
	})
}

type expressionConstraints struct {
	AvoidEnzymes []string `json:"avoidEnzymes"`
}

type expressionRequest struct {
	GeneSequence   string                `json:"geneSequence"`
	HostOrganism   string                `json:"hostOrganism" binding:"omitempty,organism"`
	ExpressionGoal string                `json:"expressionGoal"`
	Constraints    expressionConstraints `json:"constraints"`
}

func (s *Server) handleOptimizeExpression(c *gin.Context) {
	var req expressionRequest
	if !s.bind(c, &req) {
		return
	}
	if req.GeneSequence == "" {
		reject(c, "Gene sequence is required")
		return
	}

	result, err := s.client.OptimizeExpression(c.Request.Context(), biodesigner.ExpressionRequest{
		GeneSequence:   req.GeneSequence,
		HostOrganism:   req.HostOrganism,
		ExpressionGoal: req.ExpressionGoal,
		AvoidEnzymes:   req.Constraints.AvoidEnzymes,
	})
	if err != nil {
		s.fail(c, "Failed to optimize protein expression", err)
		return
	}
	codonChanges.WithLabelValues(organismLabel(result.Organism)).Add(float64(len(result.Changes)))
	respond(c, result)
}

type sequenceRequest struct {
	Sequence     string   `json:"sequence"`
	Organism     string   `json:"organism" binding:"omitempty,organism"`
	StartCodon   string   `json:"startCodon" binding:"omitempty,len=3,alpha"`
	AvoidEnzymes []string `json:"avoidEnzymes"`
}

func (s *Server) bindSequence(c *gin.Context) (sequenceRequest, bool) {
	var req sequenceRequest
	if !s.bind(c, &req) {
		return req, false
	}
	if req.Sequence == "" {
		reject(c, "Sequence is required")
		return req, false
	}
	return req, true
}

func (s *Server) handleValidateSequence(c *gin.Context) {
	req, ok := s.bindSequence(c)
	if !ok {
		return
	}
	report, err := s.client.ValidateSequence(req.Sequence)
	if err != nil {
		s.fail(c, "Failed to validate sequence", err)
		return
	}
	respond(c, report)
}

type codonImprovements struct {
	OriginalCAI  float64 `json:"originalCAI"`
	OptimizedCAI float64 `json:"optimizedCAI"`
	OriginalGC   float64 `json:"originalGC"`
	OptimizedGC  float64 `json:"optimizedGC"`
}

type codonResponse struct {
	OriginalSequence  string            `json:"originalSequence"`
	OptimizedSequence string            `json:"optimizedSequence"`
	Organism          string            `json:"organism"`
	Protein           string            `json:"protein"`
	Improvements      codonImprovements `json:"improvements"`
	Changes           []codon.Change    `json:"changes"`
}

func (s *Server) handleOptimizeCodons(c *gin.Context) {
	req, ok := s.bindSequence(c)
	if !ok {
		return
	}
	result, err := s.client.OptimizeCodons(c.Request.Context(), biodesigner.CodonRequest{
		Sequence:     req.Sequence,
		Organism:     req.Organism,
		AvoidEnzymes: req.AvoidEnzymes,
	})
	if err != nil {
		s.fail(c, "Failed to optimize codons", err)
		return
	}
	codonChanges.WithLabelValues(organismLabel(result.Organism)).Add(float64(len(result.Changes)))
	respond(c, codonResponse{
		OriginalSequence:  result.OriginalSequence,
		OptimizedSequence: result.OptimizedSequence,
		Organism:          result.Organism,
		Protein:           result.Protein,
		Improvements: codonImprovements{
			OriginalCAI:  result.OriginalCAI,
			OptimizedCAI: result.OptimizedCAI,
			OriginalGC:   result.OriginalGC,
			OptimizedGC:  result.OptimizedGC,
		},
		Changes: result.Changes,
	})
}

func (s *Server) handleTranslate(c *gin.Context) {
	req, ok := s.bindSequence(c)
	if !ok {
		return
	}
	translation, err := s.client.Translate(req.Sequence, req.StartCodon)
	if err != nil {
		s.fail(c, "Failed to translate sequence", err)
		return
	}
	respond(c, translation)
}

type simulationRequest struct {
	Nodes []model.Node `json:"nodes"`
	Edges []model.Edge `json:"edges"`
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req simulationRequest
	if !s.bind(c, &req) {
		return
	}
	if req.Nodes == nil {
		reject(c, "Nodes are required")
		return
	}
	result, err := s.client.Simulate(model.Design{Nodes: req.Nodes, Edges: req.Edges})
	if err != nil {
		s.fail(c, "Failed to run simulation", err)
		return
	}
	respond(c, result)
}

func (s *Server) handleListTables(c *gin.Context) {
	organisms, err := s.client.ListTables(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to list codon tables", err)
		return
	}
	respond(c, gin.H{"organisms": organisms})
}

func (s *Server) handleGetTable(c *gin.Context) {
	table, err := s.client.GetTable(c.Request.Context(), c.Param("organism"))
	if errors.Is(err, biodesigner.ErrTableNotFound) {
		c.JSON(http.StatusNotFound, envelope{Success: false, Message: "Codon table not found"})
		return
	}
	if err != nil {
		s.fail(c, "Failed to load codon table", err)
		return
	}
	respond(c, table)
}
