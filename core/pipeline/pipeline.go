package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asaidimu/go-kente/core/decode"
	"github.com/asaidimu/go-kente/core/schema"
	"github.com/asaidimu/go-kente/core/statement"
)

// Pipeline routes statement compilation and row decoding through an event bus
// and a structured logger. A Pipeline is safe for concurrent use.
type Pipeline struct {
	bus           *events.TypedEventBus[Event]
	logger        *zap.Logger
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex
}

// NewPipeline creates a pipeline. A nil logger falls back to a no-op logger.
func NewPipeline(logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}
	return &Pipeline{
		bus:           bus,
		logger:        logger,
		subscriptions: map[string]*SubscriptionInfo{},
	}, nil
}

func (p *Pipeline) emit(event Event) {
	if p.bus != nil {
		p.bus.Emit(string(event.Type), event)
	}
}

// Compile compiles the statement, emitting start, success, and failed events
// around the flatten.
func (p *Pipeline) Compile(stmt *statement.Statement) (*statement.Compiled, error) {
	startTime := time.Now()
	dialect := stmt.Dialect().Name()

	p.emit(createEvent(StatementCompileStart, "compile", &dialect, nil, nil, nil, nil, startTime))

	compiled, err := stmt.Compile()
	if err != nil {
		errStr := err.Error()
		p.emit(createEvent(StatementCompileFailed, "compile", &dialect, nil, nil, nil, &errStr, startTime))
		p.logger.Error("statement compilation failed",
			zap.String("dialect", dialect),
			zap.Error(err),
		)
		return nil, err
	}

	p.emit(createEvent(StatementCompileSuccess, "compile", &dialect, nil, &compiled.SQL, compiled, nil, startTime))
	p.logger.Debug("statement compiled",
		zap.String("dialect", dialect),
		zap.String("sql", compiled.SQL),
		zap.Int("bindings", len(compiled.Bindings)),
		zap.String("shape", string(compiled.Shape)),
	)
	return compiled, nil
}

// Decode decodes one positional value stream against the table's canonical
// column order, emitting start, success, and failed events.
func (p *Pipeline) Decode(values []any, table *schema.TableDescriptor) (schema.Document, error) {
	return p.decodeWith("decode", values, table.Name, func() (schema.Document, error) {
		return decode.DecodeRow(values, table)
	})
}

// DecodeDraft decodes with relaxed primary-key requiredness, for rows read
// back before the database has assigned generated keys.
func (p *Pipeline) DecodeDraft(values []any, draft *schema.DraftDescriptor) (schema.Document, error) {
	return p.decodeWith("decode_draft", values, draft.Table.Name, func() (schema.Document, error) {
		return decode.DecodeDraftRow(values, draft)
	})
}

func (p *Pipeline) decodeWith(operation string, values []any, table string, fn func() (schema.Document, error)) (schema.Document, error) {
	startTime := time.Now()

	p.emit(createEvent(RowDecodeStart, operation, nil, &table, nil, nil, nil, startTime))

	doc, err := fn()
	if err != nil {
		errStr := err.Error()
		p.emit(createEvent(RowDecodeFailed, operation, nil, &table, nil, nil, &errStr, startTime))
		p.logger.Error("row decoding failed",
			zap.String("table", table),
			zap.Int("values", len(values)),
			zap.Error(err),
		)
		return nil, err
	}

	p.emit(createEvent(RowDecodeSuccess, operation, nil, &table, nil, doc, nil, startTime))
	return doc, nil
}

// RegisterSubscription registers a callback for one event type and returns the
// subscription's callback ID.
func (p *Pipeline) RegisterSubscription(options RegisterSubscriptionOptions) string {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	unsubscribe := p.bus.Subscribe(string(options.Event), options.Callback)
	callbackID := uuid.New().String()

	p.subscriptions[callbackID] = &SubscriptionInfo{
		Event:       options.Event,
		Unsubscribe: unsubscribe,
		Label:       options.Label,
		Description: options.Description,
	}

	p.emit(createEvent(SubscriptionRegister, "register_subscription", nil, nil, nil,
		map[string]any{"subscriptionId": callbackID, "event": options.Event}, nil, time.Now()))

	return callbackID
}

// UnregisterSubscription removes a subscription by its callback ID. Unknown
// IDs are ignored.
func (p *Pipeline) UnregisterSubscription(id string) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	info := p.subscriptions[id]
	if info != nil {
		info.Unsubscribe()
		delete(p.subscriptions, id)
	}

	p.emit(createEvent(SubscriptionUnregister, "unregister_subscription", nil, nil, nil,
		map[string]any{"subscriptionId": id}, nil, time.Now()))
}

// Subscriptions returns the currently registered subscriptions.
func (p *Pipeline) Subscriptions() []SubscriptionInfo {
	p.subMu.RLock()
	defer p.subMu.RUnlock()
	infos := make([]SubscriptionInfo, 0, len(p.subscriptions))
	for _, info := range p.subscriptions {
		infos = append(infos, *info)
	}
	return infos
}
