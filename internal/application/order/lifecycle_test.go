package order_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroPedidos-api/internal/application/dto"
	"github.com/jhoicas/AgroPedidos-api/internal/application/inventory"
	"github.com/jhoicas/AgroPedidos-api/internal/application/order"
	"github.com/jhoicas/AgroPedidos-api/internal/domain"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: transacciones serializadas con un mutex global; las
// escrituras se aplican solo en el commit, un error descarta todo.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	orders   map[string]*entity.Order
	users    map[string]*entity.User
	ledger   []*entity.StockLedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
		users:    make(map[string]*entity.User),
	}
}

func (s *memStore) product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.products[id]
	return &cp
}

func (s *memStore) order(id string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.orders[id]
	return &cp
}

func (s *memStore) ledgerByAction(action entity.StockActionType) []*entity.StockLedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockLedgerEntry
	for _, e := range s.ledger {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type memTx struct {
	store    *memStore
	products map[string]*entity.Product
	orders   map[string]*entity.Order
	ledger   []*entity.StockLedgerEntry
}

func (tx *memTx) commit() {
	for id, p := range tx.products {
		tx.store.products[id] = p
	}
	for id, o := range tx.orders {
		tx.store.orders[id] = o
	}
	tx.store.ledger = append(tx.store.ledger, tx.ledger...)
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := &memTx{
		store:    r.store,
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
	}
	if err := fn(&memOrderRepo{tx: tx}, &memProductRepo{tx: tx}, &memLedgerRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memOrderRepo struct {
	tx *memTx
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.tx.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) get(id string) *entity.Order {
	if o, ok := r.tx.orders[id]; ok {
		cp := *o
		return &cp
	}
	if o, ok := r.tx.store.orders[id]; ok {
		cp := *o
		return &cp
	}
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error)      { return r.get(id), nil }
func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.get(id), nil }

func (r *memOrderRepo) GetByGatewayRef(ref string) (*entity.Order, error) {
	for id := range r.tx.store.orders {
		if o := r.get(id); o != nil && o.Payment.GatewayOrderRef == ref {
			return o, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) Update(o *entity.Order) error {
	cp := *o
	r.tx.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) ListByUser(string, int, int) ([]*entity.Order, error) { panic("no usado") }
func (r *memOrderRepo) List(string, int, int) ([]*entity.Order, error)       { panic("no usado") }

type memProductRepo struct {
	tx *memTx
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if p, ok := r.tx.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	p, ok := r.tx.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) UpdateStock(p *entity.Product) error {
	cp := *p
	r.tx.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Create(*entity.Product) error                       { panic("no usado") }
func (r *memProductRepo) GetByID(string) (*entity.Product, error)            { panic("no usado") }
func (r *memProductRepo) GetBySKU(string) (*entity.Product, error)           { panic("no usado") }
func (r *memProductRepo) List(bool, int, int) ([]*entity.Product, error)     { panic("no usado") }
func (r *memProductRepo) Update(*entity.Product) error                       { panic("no usado") }
func (r *memProductRepo) ListLowStock(int, int) ([]*entity.Product, error)   { panic("no usado") }
func (r *memProductRepo) ListOutOfStock(int, int) ([]*entity.Product, error) { panic("no usado") }

type memLedgerRepo struct {
	tx *memTx
}

func (r *memLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	cp := *e
	r.tx.ledger = append(r.tx.ledger, &cp)
	return nil
}

func (r *memLedgerRepo) List(repository.LedgerFilter, int, int) ([]*entity.StockLedgerEntry, int64, error) {
	panic("no usado")
}

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Create(*entity.User) error { panic("no usado") }

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(string) (*entity.User, error) { panic("no usado") }

// stubVerifier acepta o rechaza firmas según se configure.
type stubVerifier struct {
	err   error
	calls int
}

func (v *stubVerifier) VerifySignature(_, _, _ string) error {
	v.calls++
	return v.err
}

// stubNotifier registra los eventos emitidos.
type stubNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *stubNotifier) NotifyOrderEvent(eventType string, _ *entity.Order, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *stubNotifier) NotifyLowStock(*entity.Product) {}

func (n *stubNotifier) count(eventType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == eventType {
			c++
		}
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque común
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memStore
	create   *order.CreateOrderUseCase
	life     *order.LifecycleUseCase
	notifier *stubNotifier
	verifier *stubVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	store.users["user-1"] = &entity.User{
		ID:           "user-1",
		Email:        "tienda@campoverde.co",
		Name:         "María Rodríguez",
		BusinessName: "Agrotienda Campo Verde",
		Role:         entity.RoleRetailer,
		Status:       "active",
	}
	store.products["semilla"] = &entity.Product{
		ID: "semilla", SKU: "SEM-01", Name: "Semilla de maíz híbrido", Unit: "kg",
		Price: decimal.NewFromInt(12000), TaxRate: decimal.NewFromFloat(0.05),
		StockTotal: 100, StockReserved: 0, Active: true,
	}
	store.products["abono"] = &entity.Product{
		ID: "abono", SKU: "ABO-01", Name: "Abono orgánico", Unit: "bulto",
		Price: decimal.NewFromInt(45000), TaxRate: decimal.NewFromFloat(0.19),
		StockTotal: 10, StockReserved: 0, Active: true,
	}

	runner := &memTxRunner{store: store}
	stockUC := inventory.NewStockUseCase(nil, nil) // solo se usan las variantes InTx
	notifier := &stubNotifier{}
	verifier := &stubVerifier{}

	orderRepo := &memOrderRepo{tx: &memTx{
		store:    store,
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
	}}

	return &fixture{
		store:    store,
		create:   order.NewCreateOrderUseCase(runner, &memUserRepo{store: store}, stockUC, notifier),
		life:     order.NewLifecycleUseCase(runner, orderRepo, stockUC, verifier, notifier),
		notifier: notifier,
		verifier: verifier,
	}
}

func createRequest() *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "semilla", Quantity: 10},
			{ProductID: "abono", Quantity: 2},
		},
		ShippingAddress: entity.Address{Line1: "Vereda El Placer km 4", City: "Fusagasugá"},
		PaymentMethod:   "online",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación del pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_ReservaYCongelaPrecios(t *testing.T) {
	f := newFixture(t)

	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPendingPayment, o.Status)
	assert.Equal(t, entity.PaymentStatusPending, o.PaymentStatus)
	assert.NotEmpty(t, o.OrderNumber)
	assert.Len(t, o.StatusHistory, 1)

	// Snapshot del comprador congelado en el pedido.
	assert.Equal(t, "Agrotienda Campo Verde", o.Customer.BusinessName)

	// Totales: semilla 10*12000 = 120000 (+5% = 6000); abono 2*45000 = 90000 (+19% = 17100)
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(210000)), "subtotal = %s", o.Subtotal)
	assert.True(t, o.TaxTotal.Equal(decimal.NewFromInt(23100)), "impuestos = %s", o.TaxTotal)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(233100)), "total = %s", o.TotalAmount)

	// Reservas aplicadas y libro con la referencia al pedido.
	assert.Equal(t, int64(10), f.store.product("semilla").StockReserved)
	assert.Equal(t, int64(2), f.store.product("abono").StockReserved)
	reserves := f.store.ledgerByAction(entity.StockActionReserve)
	require.Len(t, reserves, 2)
	for _, e := range reserves {
		assert.Equal(t, o.ID, e.OrderID)
		assert.Equal(t, "user-1", e.PerformedBy)
	}

	// Snapshot del producto en la línea.
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Semilla de maíz híbrido", o.Items[0].Product.Name)
	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.NewFromInt(12000)))

	assert.Equal(t, 1, f.notifier.count(order.EventOrderCreated))
}

func TestCreateOrder_SinStockEnUnItem_NoReservaNada(t *testing.T) {
	f := newFixture(t)
	req := createRequest()
	req.Items[1].Quantity = 50 // abono solo tiene 10

	_, err := f.create.Execute(context.Background(), "user-1", req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Abono orgánico", "el error nombra el producto sin stock")

	// La reserva de la primera línea se revirtió con la transacción.
	assert.Equal(t, int64(0), f.store.product("semilla").StockReserved)
	assert.Equal(t, int64(0), f.store.product("abono").StockReserved)
	assert.Empty(t, f.store.ledger)
	assert.Empty(t, f.store.orders)
	assert.Equal(t, 0, f.notifier.count(order.EventOrderCreated))
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := createRequest()
	req.Items = nil
	_, err := f.create.Execute(ctx, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = createRequest()
	req.Items[0].Quantity = 0
	_, err = f.create.Execute(ctx, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req = createRequest()
	req.Items[1].ProductID = "semilla" // duplicado
	_, err = f.create.Execute(ctx, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = createRequest()
	req.ShippingAddress = entity.Address{}
	_, err = f.create.Execute(ctx, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmPayment_DescuentaYFactura(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	confirmed, err := f.life.ConfirmPayment(context.Background(), o.ID, "staff-1", &dto.ConfirmPaymentRequest{
		PaymentRef: "pay_123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPaid, confirmed.Status)
	assert.Equal(t, entity.PaymentStatusConfirmed, confirmed.PaymentStatus)
	assert.NotEmpty(t, confirmed.InvoiceNumber)
	require.NotNil(t, confirmed.Payment.PaidAt)

	// Reserva convertida en salida definitiva.
	semilla := f.store.product("semilla")
	assert.Equal(t, int64(90), semilla.StockTotal)
	assert.Equal(t, int64(0), semilla.StockReserved)
	assert.Len(t, f.store.ledgerByAction(entity.StockActionDeduct), 2)
	assert.Equal(t, 1, f.notifier.count(order.EventOrderPaid))
}

func TestConfirmPayment_Idempotente(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	req := &dto.ConfirmPaymentRequest{PaymentRef: "pay_123"}
	_, err = f.life.ConfirmPayment(context.Background(), o.ID, "staff-1", req)
	require.NoError(t, err)

	// Segundo intento (webhook reintentado): mismo resultado, sin segundo descuento.
	again, err := f.life.ConfirmPayment(context.Background(), o.ID, "gateway", req)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, again.Status)

	assert.Len(t, f.store.ledgerByAction(entity.StockActionDeduct), 2,
		"una confirmación repetida no genera nuevos descuentos")
	assert.Equal(t, int64(90), f.store.product("semilla").StockTotal)
	assert.Equal(t, 1, f.notifier.count(order.EventOrderPaid),
		"el evento order.paid se emite una sola vez")
}

func TestConfirmPayment_FirmaInvalida_NoTocaNada(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	f.verifier.err = domain.ErrSignatureMismatch
	_, err = f.life.ConfirmPayment(context.Background(), o.ID, "gateway", &dto.ConfirmPaymentRequest{
		GatewayOrderRef: "gw_1", PaymentRef: "pay_1", Signature: "mala",
	})
	require.ErrorIs(t, err, domain.ErrSignatureMismatch)
	assert.Equal(t, 1, f.verifier.calls)

	// El pedido y el stock quedan como estaban: reservado, sin descontar.
	assert.Equal(t, entity.OrderStatusPendingPayment, f.store.order(o.ID).Status)
	assert.Equal(t, int64(10), f.store.product("semilla").StockReserved)
	assert.Empty(t, f.store.ledgerByAction(entity.StockActionDeduct))
}

func TestConfirmPayment_SinFirma_NoVerifica(t *testing.T) {
	// Confirmación manual del staff (transferencia): sin firma no se llama al verificador.
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	_, err = f.life.ConfirmPayment(context.Background(), o.ID, "staff-1", &dto.ConfirmPaymentRequest{
		PaymentRef: "transferencia-4455",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.verifier.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_LiberaLaReserva(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	cancelled, err := f.life.Cancel(context.Background(), o.ID, "user-1", "me equivoqué de cantidad")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, "me equivoqué de cantidad", cancelled.CancelReason)
	assert.NotNil(t, cancelled.CancelledAt)

	// Stock de vuelta al disponible, total intacto.
	semilla := f.store.product("semilla")
	assert.Equal(t, int64(100), semilla.StockTotal)
	assert.Equal(t, int64(0), semilla.StockReserved)
	assert.Len(t, f.store.ledgerByAction(entity.StockActionRelease), 2)
	assert.Equal(t, 1, f.notifier.count(order.EventOrderCancelled))
}

func TestCancel_Idempotente(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	_, err = f.life.Cancel(context.Background(), o.ID, "user-1", "cambio de planes")
	require.NoError(t, err)
	_, err = f.life.Cancel(context.Background(), o.ID, "user-1", "cambio de planes")
	require.NoError(t, err, "cancelar un pedido ya cancelado es un no-op")

	assert.Len(t, f.store.ledgerByAction(entity.StockActionRelease), 2,
		"la segunda cancelación no libera de nuevo")
	assert.Equal(t, 1, f.notifier.count(order.EventOrderCancelled))
}

func TestCancel_ConPagoConfirmado_Rechazada(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	_, err = f.life.ConfirmPayment(context.Background(), o.ID, "staff-1", &dto.ConfirmPaymentRequest{PaymentRef: "pay_1"})
	require.NoError(t, err)

	_, err = f.life.Cancel(context.Background(), o.ID, "user-1", "ya no lo quiero")
	require.ErrorIs(t, err, domain.ErrIllegalTransition)

	// Nada cambió: sigue pagado y el stock descontado.
	assert.Equal(t, entity.OrderStatusPaid, f.store.order(o.ID).Status)
	assert.Empty(t, f.store.ledgerByAction(entity.StockActionRelease))
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío de pago y fallo
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitPayment_GuardaReferencia(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	updated, err := f.life.SubmitPayment(context.Background(), o.ID, "user-1", &dto.SubmitPaymentRequest{
		PaymentMethod: "online", GatewayOrderRef: "gw_789",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSubmitted, updated.PaymentStatus)
	assert.Equal(t, "gw_789", updated.Payment.GatewayOrderRef)
	assert.Equal(t, entity.OrderStatusPendingPayment, updated.Status, "enviar el pago no cambia el estado")
	assert.Equal(t, int64(10), f.store.product("semilla").StockReserved, "la reserva sigue vigente")
}

func TestSubmitPayment_DeOtroUsuario_Prohibido(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	_, err = f.life.SubmitPayment(context.Background(), o.ID, "otro-usuario", &dto.SubmitPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFailPayment_MantieneLaReserva(t *testing.T) {
	f := newFixture(t)
	o, err := f.create.Execute(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	_, err = f.life.SubmitPayment(context.Background(), o.ID, "user-1", &dto.SubmitPaymentRequest{
		PaymentMethod: "online", GatewayOrderRef: "gw_789",
	})
	require.NoError(t, err)

	failed, err := f.life.FailPayment(context.Background(), "gw_789")
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusFailed, failed.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPendingPayment, failed.Status,
		"un pago fallido deja el pedido esperando reintento")
	assert.Equal(t, int64(10), f.store.product("semilla").StockReserved)
}

// ──────────────────────────────────────────────────────────────────────────────
// Avance del estado de entrega
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_SecuenciaCompleta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.create.Execute(ctx, "user-1", createRequest())
	require.NoError(t, err)
	_, err = f.life.ConfirmPayment(ctx, o.ID, "staff-1", &dto.ConfirmPaymentRequest{PaymentRef: "pay_1"})
	require.NoError(t, err)

	for _, status := range []string{
		entity.OrderStatusAccepted,
		entity.OrderStatusInTransit,
		entity.OrderStatusDelivered,
	} {
		updated, err := f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err, "transición a %s", status)
		assert.Equal(t, status, updated.Status)
	}

	final := f.store.order(o.ID)
	// creado, paid, accepted, in_transit, delivered
	assert.Len(t, final.StatusHistory, 5)
}

func TestUpdateStatus_SaltoIlegal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.create.Execute(ctx, "user-1", createRequest())
	require.NoError(t, err)

	// pending_payment -> in_transit no existe en la máquina de estados.
	_, err = f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: entity.OrderStatusInTransit})
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Contains(t, err.Error(), entity.OrderStatusPendingPayment, "el error nombra el estado actual")
	assert.Contains(t, err.Error(), entity.OrderStatusInTransit, "el error nombra el estado solicitado")
}

func TestUpdateStatus_EstadosReservados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.create.Execute(ctx, "user-1", createRequest())
	require.NoError(t, err)

	_, err = f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPaid})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "paid solo vía confirmación de pago")

	_, err = f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cancelled solo vía la operación de cancelación")

	_, err = f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: "enviado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_MismoEstado_NoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.create.Execute(ctx, "user-1", createRequest())
	require.NoError(t, err)
	_, err = f.life.ConfirmPayment(ctx, o.ID, "staff-1", &dto.ConfirmPaymentRequest{PaymentRef: "p"})
	require.NoError(t, err)
	_, err = f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: entity.OrderStatusAccepted})
	require.NoError(t, err)

	before := len(f.store.order(o.ID).StatusHistory)
	_, err = f.life.UpdateStatus(ctx, o.ID, "staff-1", &dto.UpdateOrderStatusRequest{Status: entity.OrderStatusAccepted})
	require.NoError(t, err)
	assert.Len(t, f.store.order(o.ID).StatusHistory, before, "repetir el mismo estado no duplica historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook por referencia del gateway
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmByGatewayRef(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.create.Execute(ctx, "user-1", createRequest())
	require.NoError(t, err)
	_, err = f.life.SubmitPayment(ctx, o.ID, "user-1", &dto.SubmitPaymentRequest{
		PaymentMethod: "online", GatewayOrderRef: "gw_555",
	})
	require.NoError(t, err)

	confirmed, err := f.life.ConfirmByGatewayRef(ctx, &dto.ConfirmPaymentRequest{
		GatewayOrderRef: "gw_555", PaymentRef: "pay_555",
	})
	require.NoError(t, err)
	assert.Equal(t, o.ID, confirmed.ID)
	assert.Equal(t, entity.OrderStatusPaid, confirmed.Status)

	_, err = f.life.ConfirmByGatewayRef(ctx, &dto.ConfirmPaymentRequest{GatewayOrderRef: "gw_desconocida"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
