package report

import (
	"errors"
	"net/http"
	"sort"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tkarev/backend-sales/internal/common"
	"github.com/tkarev/backend-sales/internal/sales"
)

// Strategy names accepted by the API when the caller does not inject code.
const (
	RevenueSimple   = "simple"
	BonusProfitRank = "profit_rank"
)

// Registry resolves strategy names supplied by dynamic callers into
// concrete implementations. An unknown name maps to
// sales.ErrInvalidStrategyType, keeping the runtime callable check at the
// only boundary where "not callable" is still representable.
type Registry struct {
	revenue map[string]sales.RevenueStrategy
	bonus   map[string]sales.BonusStrategy
}

// DefaultRegistry returns a registry preloaded with the built-in strategies.
func DefaultRegistry() *Registry {
	return &Registry{
		revenue: map[string]sales.RevenueStrategy{
			RevenueSimple: sales.RevenueFunc(sales.SimpleRevenue),
		},
		bonus: map[string]sales.BonusStrategy{
			BonusProfitRank: sales.BonusFunc(sales.ProfitRankBonus),
		},
	}
}

// RegisterRevenue adds or replaces a named revenue strategy.
func (r *Registry) RegisterRevenue(name string, s sales.RevenueStrategy) {
	r.revenue[name] = s
}

// RegisterBonus adds or replaces a named bonus strategy.
func (r *Registry) RegisterBonus(name string, s sales.BonusStrategy) {
	r.bonus[name] = s
}

// Resolve maps the requested strategy names to analyzer options. Empty
// names select the defaults.
func (r *Registry) Resolve(revenueName, bonusName string) (*sales.Options, error) {
	if revenueName == "" {
		revenueName = RevenueSimple
	}
	if bonusName == "" {
		bonusName = BonusProfitRank
	}
	revenue, ok := r.revenue[revenueName]
	if !ok {
		return nil, common.NewAppError("INVALID_STRATEGY_TYPE", "unknown revenue strategy: "+revenueName, http.StatusBadRequest, sales.ErrInvalidStrategyType)
	}
	bonus, ok := r.bonus[bonusName]
	if !ok {
		return nil, common.NewAppError("INVALID_STRATEGY_TYPE", "unknown bonus strategy: "+bonusName, http.StatusBadRequest, sales.ErrInvalidStrategyType)
	}
	return &sales.Options{CalculateRevenue: revenue, CalculateBonus: bonus}, nil
}

// RevenueNames lists registered revenue strategy names sorted.
func (r *Registry) RevenueNames() []string {
	names := make([]string, 0, len(r.revenue))
	for name := range r.revenue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BonusNames lists registered bonus strategy names sorted.
func (r *Registry) BonusNames() []string {
	names := make([]string, 0, len(r.bonus))
	for name := range r.bonus {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StrategySelector names the strategies a request wants applied.
type StrategySelector struct {
	Revenue string `json:"revenue"`
	Bonus   string `json:"bonus"`
}

// Request is the POST body for report generation. The three collections
// mirror the analyzer input; deeper numeric constraints are deliberately
// not enforced here because the engine treats out-of-range discounts as
// passthrough and unknown references as silent skips.
type Request struct {
	Sellers         []sales.Seller         `json:"sellers" validate:"required,min=1"`
	Products        []sales.Product        `json:"products" validate:"required,min=1"`
	PurchaseRecords []sales.PurchaseRecord `json:"purchase_records" validate:"required,min=1"`
	Strategies      *StrategySelector      `json:"strategies,omitempty"`
}

// Response wraps a generated report.
type Response struct {
	ReportID    string         `json:"report_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Data        []sales.Record `json:"data"`
}

// ServiceConfig wires the report service dependencies.
type ServiceConfig struct {
	Validator *validator.Validate
	Registry  *Registry
	Now       func() time.Time
}

// Service turns validated API requests into analyzer runs.
type Service struct {
	validate *validator.Validate
	registry *Registry
	now      func() time.Time
}

// NewService constructs a Service, filling in defaults for absent deps.
func NewService(cfg ServiceConfig) *Service {
	svc := &Service{
		validate: cfg.Validator,
		registry: cfg.Registry,
		now:      cfg.Now,
	}
	if svc.validate == nil {
		svc.validate = validator.New()
	}
	if svc.registry == nil {
		svc.registry = DefaultRegistry()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Registry exposes the strategy registry for listing endpoints.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Generate validates the request, resolves strategies and runs the analyzer.
func (s *Service) Generate(req Request) (*Response, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.NewAppError("INVALID_INPUT", sales.ErrInvalidInput.Error(), http.StatusBadRequest, sales.ErrInvalidInput)
	}

	var revenueName, bonusName string
	if req.Strategies != nil {
		revenueName = req.Strategies.Revenue
		bonusName = req.Strategies.Bonus
	}
	opts, err := s.registry.Resolve(revenueName, bonusName)
	if err != nil {
		return nil, err
	}

	records, err := sales.Analyze(sales.AnalyzeInput{
		Sellers:         req.Sellers,
		Products:        req.Products,
		PurchaseRecords: req.PurchaseRecords,
	}, opts)
	if err != nil {
		return nil, wrapAnalyzeError(err)
	}

	return &Response{
		ReportID:    uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Data:        records,
	}, nil
}

func wrapAnalyzeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sales.ErrInvalidInput):
		return common.NewAppError("INVALID_INPUT", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, sales.ErrMissingOptions):
		return common.NewAppError("MISSING_OPTIONS", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, sales.ErrMissingStrategy):
		return common.NewAppError("MISSING_STRATEGY", err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, sales.ErrInvalidStrategyType):
		return common.NewAppError("INVALID_STRATEGY_TYPE", err.Error(), http.StatusBadRequest, err)
	default:
		return common.NewAppError("REPORT_ERROR", err.Error(), http.StatusInternalServerError, err)
	}
}
