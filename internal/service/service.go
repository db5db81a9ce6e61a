// Package service is the pre-approval application service. It loads and saves
// documents for the calling user and hands them to the quote engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/assets"
	"github.com/iwvelando/loan-portal/internal/auth"
	"github.com/iwvelando/loan-portal/internal/metrics"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/internal/quote"
	"github.com/iwvelando/loan-portal/internal/store"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"go.uber.org/zap"
)

// Service orchestrates the document store, the caller identity and the quote
// engine.
type Service struct {
	docs   store.Documents
	agents store.Agents
	signer assets.Signer
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAssetSigner sets the signer applied to agent profile image urls.
func WithAssetSigner(signer assets.Signer) Option {
	return func(s *Service) {
		s.signer = signer
	}
}

// New returns a service over the given stores.
func New(docs store.Documents, agents store.Agents, opts ...Option) *Service {
	s := &Service{
		docs:   docs,
		agents: agents,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// translate turns storage misses into the engine's not-found error.
func translate(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", quote.ErrNotFound, err)
	}
	return err
}

// owned loads a document that belongs to the caller. Another user's document
// is reported as not found.
func (s *Service) owned(ctx context.Context, id uuid.UUID) (preapproval.Document, error) {
	caller, err := auth.RequireIdentity(ctx)
	if err != nil {
		return preapproval.Document{}, err
	}
	doc, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return preapproval.Document{}, translate(err)
	}
	if doc.UserID != caller.UserID {
		return preapproval.Document{}, fmt.Errorf("pre-approval %s: %w", id, quote.ErrNotFound)
	}
	return doc, nil
}

// Get loads one of the caller's pre-approval documents.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (preapproval.Document, error) {
	return s.owned(ctx, id)
}

// Save inserts doc when it has no id, otherwise replaces the stored document.
// The owner is always the caller and only the caller's documents can be
// replaced. Derived fields are filled before writing.
func (s *Service) Save(ctx context.Context, doc preapproval.Document) (preapproval.Document, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return preapproval.Document{}, err
	}

	if doc.ID != uuid.Nil {
		existing, err := s.owned(ctx, doc.ID)
		if err != nil {
			return preapproval.Document{}, err
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = existing.CreatedAt
		}
	}

	now := s.now().UTC()
	doc.UserID = id.UserID
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}
	quote.FillDerived(&doc)

	operation := "replace"
	if doc.ID == uuid.Nil {
		operation = "insert"
		doc.ID = uuid.New()
		err = s.docs.InsertDocument(ctx, doc)
	} else {
		err = s.docs.ReplaceDocument(ctx, doc)
	}
	if err != nil {
		s.logger.Error("failed to save pre-approval",
			zap.String("op", "service.Save"),
			zap.String("operation", operation),
			zap.String("preApprovalId", doc.ID.String()),
			zap.Error(err))
		return preapproval.Document{}, translate(err)
	}
	metrics.DocumentsSaved.WithLabelValues(operation).Inc()

	return s.Get(ctx, doc.ID)
}

// Clone copies a document under a new id with a fresh creation time.
func (s *Service) Clone(ctx context.Context, id uuid.UUID) (preapproval.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return preapproval.Document{}, err
	}

	now := s.now().UTC()
	clone := doc.Clone()
	clone.ID = uuid.New()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	if err := s.docs.InsertDocument(ctx, clone); err != nil {
		return preapproval.Document{}, translate(err)
	}
	metrics.DocumentsSaved.WithLabelValues("clone").Inc()

	s.logger.Debug("cloned pre-approval",
		zap.String("op", "service.Clone"),
		zap.String("from", id.String()),
		zap.String("to", clone.ID.String()))
	return clone, nil
}

// Delete removes the given documents of the caller. Unknown ids and other
// users' documents are ignored.
func (s *Service) Delete(ctx context.Context, ids []uuid.UUID) error {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return err
	}
	if len(ids) == 0 {
		return &quote.ValidationError{Field: "ids", Message: "PreApproval IDs cannot be null or empty"}
	}

	mine := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		_, err := s.owned(ctx, id)
		switch {
		case err == nil:
			mine = append(mine, id)
		case errors.Is(err, quote.ErrNotFound):
		default:
			return fmt.Errorf("failed to delete pre-approvals: %w", err)
		}
	}
	if len(mine) == 0 {
		return nil
	}
	if err := s.docs.DeleteDocuments(ctx, mine); err != nil {
		return fmt.Errorf("failed to delete pre-approvals: %w", err)
	}
	if skipped := len(ids) - len(mine); skipped > 0 {
		s.logger.Debug("skipped pre-approvals not owned by caller",
			zap.String("op", "service.Delete"),
			zap.Int("skipped", skipped))
	}
	return nil
}

// UpdateApplicationStatus moves a document to a new lifecycle stage.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status preapproval.ApplicationStatus) (preapproval.Document, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return preapproval.Document{}, err
	}
	if !status.Valid() {
		return preapproval.Document{}, &quote.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("status must be between %d and %d, got %d", preapproval.StatusPreApproved, preapproval.StatusClosedEscrow, status),
		}
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return preapproval.Document{}, err
	}
	now := s.now().UTC()
	doc.Status = status
	doc.StatusUpdatedAt = &now
	if err := s.docs.ReplaceDocument(ctx, doc); err != nil {
		return preapproval.Document{}, translate(err)
	}
	return doc, nil
}

// agent returns the caller's profile with a signed profile url, or nil when
// the caller is anonymous or has no profile.
func (s *Service) agent(ctx context.Context) (*preapproval.Agent, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok || s.agents == nil {
		return nil, nil
	}
	agent, err := s.agents.GetAgent(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load agent profile: %w", err)
	}
	agent.Profile = s.signer.WithAccessToken(agent.Profile)
	return &agent, nil
}

// PreApprovalReport builds the pre-approval letter for a scenario.
func (s *Service) PreApprovalReport(ctx context.Context, docID, scenarioID uuid.UUID) (quote.PreApprovalReport, error) {
	doc, err := s.Get(ctx, docID)
	if err != nil {
		return quote.PreApprovalReport{}, s.record(constants.ReportPreApproval, docID, scenarioID, err)
	}
	agent, err := s.agent(ctx)
	if err != nil {
		return quote.PreApprovalReport{}, s.record(constants.ReportPreApproval, docID, scenarioID, err)
	}
	report, err := quote.BuildPreApprovalReport(&doc, scenarioID, agent, s.now())
	return report, s.record(constants.ReportPreApproval, docID, scenarioID, err)
}

// FHAReport builds the FHA disclosure for a scenario.
func (s *Service) FHAReport(ctx context.Context, docID, scenarioID uuid.UUID) (quote.FHAReport, error) {
	doc, err := s.Get(ctx, docID)
	if err != nil {
		return quote.FHAReport{}, s.record(constants.ReportFHA, docID, scenarioID, err)
	}
	report, err := quote.BuildFHAReport(&doc, scenarioID, s.now())
	return report, s.record(constants.ReportFHA, docID, scenarioID, err)
}

// QuickQuote builds the quick quote for a scenario.
func (s *Service) QuickQuote(ctx context.Context, docID, scenarioID uuid.UUID) (quote.QuickQuote, error) {
	doc, err := s.Get(ctx, docID)
	if err != nil {
		return quote.QuickQuote{}, s.record(constants.ReportQuickQuote, docID, scenarioID, err)
	}
	report, err := quote.BuildQuickQuote(&doc, scenarioID)
	return report, s.record(constants.ReportQuickQuote, docID, scenarioID, err)
}

// record counts and logs one report build and passes err through.
func (s *Service) record(kind string, docID, scenarioID uuid.UUID, err error) error {
	var validationErr *quote.ValidationError
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, quote.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, auth.ErrUnauthenticated):
		outcome = metrics.OutcomeUnauthenticated
	case errors.As(err, &validationErr):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeError
	}
	metrics.ReportsBuilt.WithLabelValues(kind, outcome).Inc()

	s.logger.Debug("built report",
		zap.String("op", "service.record"),
		zap.String("kind", kind),
		zap.String("outcome", outcome),
		zap.String("preApprovalId", docID.String()),
		zap.String("scenarioId", scenarioID.String()))
	return err
}

// QuoteList lists the caller's documents, newest first. A zero status lists
// every document.
func (s *Service) QuoteList(ctx context.Context, status preapproval.ApplicationStatus) ([]quote.Summary, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.ListDocuments(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pre-approvals: %w", err)
	}
	return quote.List(docs, status), nil
}

// PreApprovedList lists the caller's pre-approved documents.
func (s *Service) PreApprovedList(ctx context.Context) ([]quote.Summary, error) {
	return s.QuoteList(ctx, preapproval.StatusPreApproved)
}

// InEscrowList lists the caller's documents in escrow.
func (s *Service) InEscrowList(ctx context.Context) ([]quote.Summary, error) {
	return s.QuoteList(ctx, preapproval.StatusInEscrow)
}

// TBDList lists the caller's documents with an undecided status.
func (s *Service) TBDList(ctx context.Context) ([]quote.Summary, error) {
	return s.QuoteList(ctx, preapproval.StatusTBD)
}

// Dashboard counts the caller's activity this week against last week.
func (s *Service) Dashboard(ctx context.Context) (quote.Dashboard, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return quote.Dashboard{}, err
	}
	weeks := quote.WeeksOf(s.now())

	counts := make([]int, 0, 4)
	for _, q := range []struct {
		list     func(context.Context, uuid.UUID, time.Time, time.Time) ([]preapproval.Document, error)
		from, to time.Time
	}{
		{s.docs.ListCreatedBetween, weeks.ThisWeekStart, weeks.ThisWeekEnd},
		{s.docs.ListCreatedBetween, weeks.LastWeekStart, weeks.LastWeekEnd},
		{s.docs.ListPreApprovedBetween, weeks.ThisWeekStart, weeks.ThisWeekEnd},
		{s.docs.ListPreApprovedBetween, weeks.LastWeekStart, weeks.LastWeekEnd},
	} {
		docs, err := q.list(ctx, id.UserID, q.from, q.to)
		if err != nil {
			return quote.Dashboard{}, fmt.Errorf("failed to load dashboard: %w", err)
		}
		counts = append(counts, len(docs))
	}
	return quote.NewDashboard(counts[0], counts[1], counts[2], counts[3]), nil
}
