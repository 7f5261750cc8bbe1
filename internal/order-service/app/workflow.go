package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/order-taking/internal/coordinator"
	"github.com/jcmexdev/order-taking/internal/coordinator/runlog"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

const tracerName = "github.com/jcmexdev/order-taking/internal/order-service/app"

// Stage names, as they appear in the run log, spans and metrics.
const (
	StageValidate    = "validate_order"
	StagePrice       = "price_order"
	StageAcknowledge = "acknowledge_order"
)

// unencodablePayload is stored on the STARTED row when the request cannot be
// encoded as JSON.
const unencodablePayload = `{"error":"order not encodable"}`

// Dependencies are the services the workflow calls out to.
type Dependencies struct {
	CheckProductCodeExists          CheckProductCodeExists
	CheckAddressExists              CheckAddressExists
	GetPricingFunction              GetPricingFunction
	CalculateShippingCost           CalculateShippingCost
	CreateOrderAcknowledgmentLetter CreateOrderAcknowledgmentLetter
	SendOrderAcknowledgment         SendOrderAcknowledgment
}

// Recorder receives workflow measurements.
type Recorder interface {
	StageCompleted(stage string, elapsed time.Duration, err error)
	OrderCompleted(outcome string, elapsed time.Duration)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithRunLog records every run in repo.
func WithRunLog(repo runlog.Repository) Option {
	return func(w *Workflow) { w.runLog = repo }
}

// WithRecorder reports stage and order outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(w *Workflow) { w.recorder = r }
}

// WithPublisher hands the events of every placed order to p.
func WithPublisher(p EventPublisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

// WithConcurrency lets validation and pricing process up to n lines at once.
func WithConcurrency(n int) Option {
	return func(w *Workflow) { w.concurrency = n }
}

// Workflow places orders. It holds no per-order state and is safe for
// concurrent use.
type Workflow struct {
	deps        Dependencies
	runLog      runlog.Repository
	recorder    Recorder
	publisher   EventPublisher
	concurrency int
}

func NewWorkflow(deps Dependencies, opts ...Option) *Workflow {
	w := &Workflow{deps: deps, concurrency: 1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PlaceOrder runs validation, pricing and acknowledgment in sequence and
// returns the events of the placed order. The returned error, if any, is a
// domain.PlaceOrderError from the first stage that failed.
func (w *Workflow) PlaceOrder(ctx context.Context, order domain.UnvalidatedOrder) ([]domain.PlaceOrderEvent, error) {
	began := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "PlaceOrder")
	defer span.End()

	runID := order.OrderID
	if strings.TrimSpace(runID) == "" {
		runID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("order.run_id", runID))

	lineOpt := WithLineConcurrency(w.concurrency)
	var (
		validated domain.ValidatedOrder
		priced    domain.PricedOrder
		events    []domain.PlaceOrderEvent
	)

	stages := []coordinator.Stage{
		w.traced(StageValidate, func(ctx context.Context) (err error) {
			validated, err = ValidateOrder(ctx, w.deps.CheckProductCodeExists, w.deps.CheckAddressExists, order, lineOpt)
			return err
		}),
		w.traced(StagePrice, func(ctx context.Context) (err error) {
			priced, err = PriceOrder(ctx, w.deps.GetPricingFunction, validated, lineOpt)
			return err
		}),
		w.traced(StageAcknowledge, func(ctx context.Context) error {
			withShipping := FreeVipShipping(AddShippingInfoToOrder(w.deps.CalculateShippingCost, priced))
			ack := AcknowledgeOrder(ctx, w.deps.CreateOrderAcknowledgmentLetter, w.deps.SendOrderAcknowledgment, withShipping)
			events = CreateEvents(priced, ack)
			return nil
		}),
	}

	payload, err := json.Marshal(order)
	if err != nil {
		slog.WarnContext(ctx, "encoding run log payload failed", "run_id", runID, "error", err)
		payload = []byte(unencodablePayload)
	}
	err = coordinator.NewOrchestrator(runID, stages,
		coordinator.WithRunLog(w.runLog),
		coordinator.WithPayload(string(payload)),
		coordinator.WithObserver(w.observeStage),
	).Start(ctx)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.ErrorCode(err))
		w.observeOrder(domain.ErrorCode(err), began)
		slog.InfoContext(ctx, "order rejected", "run_id", runID, "code", domain.ErrorCode(err), "error", err)
		return nil, err
	}

	w.observeOrder("placed", began)
	slog.InfoContext(ctx, "order placed",
		"order_id", priced.OrderID.String(),
		"amount_to_bill", priced.AmountToBill.String(),
		"events", len(events),
	)

	if w.publisher != nil {
		if err := w.publisher.Publish(ctx, events); err != nil {
			slog.WarnContext(ctx, "publishing order events failed", "order_id", priced.OrderID.String(), "error", err)
		}
	}
	return events, nil
}

// traced runs fn inside a child span named after the stage.
func (w *Workflow) traced(name string, fn func(ctx context.Context) error) coordinator.Stage {
	return coordinator.NewStage(name, func(ctx context.Context) error {
		ctx, span := otel.Tracer(tracerName).Start(ctx, name)
		defer span.End()

		err := fn(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	})
}

func (w *Workflow) observeStage(stage string, elapsed time.Duration, err error) {
	if w.recorder != nil {
		w.recorder.StageCompleted(stage, elapsed, err)
	}
}

func (w *Workflow) observeOrder(outcome string, began time.Time) {
	if w.recorder != nil {
		w.recorder.OrderCompleted(outcome, time.Since(began))
	}
}
