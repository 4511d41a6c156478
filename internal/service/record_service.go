// Package service holds the record workflow: validate, stamp, write to the
// store, then run the post-commit hooks before answering the caller.
package service

//go:generate mockgen -source=record_service.go -destination=mocks/mock_record_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"GestorChoferes/internal/clock"
	"GestorChoferes/internal/metrics"
	"GestorChoferes/internal/models"
	"GestorChoferes/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	MsgCreated  = "Registro creado exitosamente"
	MsgUpdated  = "Registro actualizado exitosamente"
	MsgDeleted  = "Registro eliminado exitosamente"
	MsgNotFound = "Registro no encontrado"
)

type RecordStore interface {
	Create(ctx context.Context, r models.Record) (int64, error)
	Get(ctx context.Context, id int64) (models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, r models.Record) error
	Delete(ctx context.Context, id int64) error
}

// PostCommitHook runs after the store acknowledged a mutation. Its error is
// logged and never reaches the caller or undoes the mutation.
type PostCommitHook interface {
	Name() string
	AfterCommit(ctx context.Context, m models.Mutation) error
}

// ValidationError rejects input before it reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type CreateResult struct {
	ID      int64  `json:"id" example:"1"`
	Message string `json:"message" example:"Registro creado exitosamente"`
}

type MessageResult struct {
	Message string `json:"message" example:"Registro actualizado exitosamente"`
}

type RecordService struct {
	store    RecordStore
	hooks    []PostCommitHook
	validate *validator.Validate
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// NewRecordService wires the store and the hooks; hooks run in the given order.
func NewRecordService(store RecordStore, log *zap.Logger, m *metrics.Metrics, hooks ...PostCommitHook) *RecordService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecordService{
		store:    store,
		hooks:    hooks,
		validate: v,
		log:      log,
		metrics:  m,
	}
}

func (s *RecordService) CreateRecord(ctx context.Context, in models.RecordInput) (CreateResult, error) {
	rec, err := s.prepare(in)
	if err != nil {
		return CreateResult{}, err
	}

	now := clock.Stamp()
	if rec.EventTimestamp == "" {
		rec.EventTimestamp = now
	}
	rec.RecordedAt = now

	id, err := s.store.Create(ctx, rec)
	if err != nil {
		return CreateResult{}, err
	}

	s.afterCommit(ctx, models.Mutation{Action: models.ActionCreated, RecordID: id})
	return CreateResult{ID: id, Message: MsgCreated}, nil
}

func (s *RecordService) ListRecords(ctx context.Context) ([]models.Record, error) {
	return s.store.List(ctx)
}

func (s *RecordService) GetRecord(ctx context.Context, id int64) (models.Record, error) {
	return s.store.Get(ctx, id)
}

// UpdateRecord checks existence and then updates: two independent round trips.
// A row deleted in between surfaces as storage.ErrNotFound from the update.
func (s *RecordService) UpdateRecord(ctx context.Context, id int64, in models.RecordInput) (MessageResult, error) {
	rec, err := s.prepare(in)
	if err != nil {
		return MessageResult{}, err
	}
	if err := s.mustExist(ctx, id); err != nil {
		return MessageResult{}, err
	}

	if err := s.store.Update(ctx, id, rec); err != nil {
		return MessageResult{}, err
	}

	s.afterCommit(ctx, models.Mutation{Action: models.ActionUpdated, RecordID: id})
	return MessageResult{Message: MsgUpdated}, nil
}

func (s *RecordService) DeleteRecord(ctx context.Context, id int64) (MessageResult, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return MessageResult{}, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return MessageResult{}, err
	}

	s.afterCommit(ctx, models.Mutation{Action: models.ActionDeleted, RecordID: id})
	return MessageResult{Message: MsgDeleted}, nil
}

func (s *RecordService) mustExist(ctx context.Context, id int64) error {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return storage.ErrNotFound
	}
	return nil
}

// prepare trims and validates the input and maps it onto a Record.
func (s *RecordService) prepare(in models.RecordInput) (models.Record, error) {
	in.DriverName = strings.TrimSpace(in.DriverName)
	in.Kind = strings.TrimSpace(in.Kind)
	in.Destination = strings.TrimSpace(in.Destination)
	in.Errand = strings.TrimSpace(in.Errand)
	in.Justification = strings.TrimSpace(in.Justification)
	in.RequestReason = strings.TrimSpace(in.RequestReason)
	in.ResponsibleParty = strings.TrimSpace(in.ResponsibleParty)
	in.EventTimestamp = strings.TrimSpace(in.EventTimestamp)

	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return models.Record{}, &ValidationError{Field: fieldErrs[0].Field(), Reason: "is required"}
		}
		return models.Record{}, &ValidationError{Field: "body", Reason: err.Error()}
	}

	if in.EventTimestamp != "" {
		ts, err := clock.Normalize(in.EventTimestamp)
		if err != nil {
			return models.Record{}, &ValidationError{Field: "event_timestamp", Reason: err.Error()}
		}
		in.EventTimestamp = ts
	}

	return models.Record{
		DriverName:       in.DriverName,
		Kind:             in.Kind,
		Destination:      in.Destination,
		Errand:           in.Errand,
		Justification:    in.Justification,
		RequestReason:    in.RequestReason,
		ResponsibleParty: in.ResponsibleParty,
		EventTimestamp:   in.EventTimestamp,
	}, nil
}

// afterCommit runs every hook in order on the request path. The context is
// detached from cancellation: a client that hangs up must not abort a backup
// of data that is already committed.
func (s *RecordService) afterCommit(ctx context.Context, m models.Mutation) {
	s.metrics.Mutations.WithLabelValues(string(m.Action)).Inc()

	hookCtx := context.WithoutCancel(ctx)
	for _, h := range s.hooks {
		if err := h.AfterCommit(hookCtx, m); err != nil {
			s.metrics.HookFailures.WithLabelValues(h.Name()).Inc()
			s.log.Error("RecordService.afterCommit(): post-commit hook failed",
				zap.String("hook", h.Name()),
				zap.String("action", string(m.Action)),
				zap.Int64("id", m.RecordID),
				zap.Error(err),
			)
		}
	}
}
