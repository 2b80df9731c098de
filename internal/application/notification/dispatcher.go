package notification

import (
	"fmt"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/AgroPedidos-api/internal/domain/entity"
	"github.com/jhoicas/AgroPedidos-api/pkg/config"
	"github.com/jhoicas/AgroPedidos-api/pkg/logger"
)

// Tipo del evento de stock bajo; los del pedido viven en el paquete order.
const EventLowStock = "stock.low"

// Event notificación pendiente de despachar.
type Event struct {
	Type    string
	Order   *entity.Order
	Product *entity.Product
	Note    string
}

// Dispatcher despachador fire-and-forget: las operaciones de negocio encolan
// eventos sin bloquearse y un worker los envía por correo. Si la cola está
// llena el evento se descarta con un warning; un fallo de SMTP se loguea y
// nunca se propaga al caller.
type Dispatcher struct {
	cfg    config.SMTPConfig
	log    *logger.Logger
	events chan Event
	wg     sync.WaitGroup
}

// NewDispatcher construye el despachador con una cola acotada.
func NewDispatcher(cfg config.SMTPConfig, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		log:    log,
		events: make(chan Event, 256),
	}
}

// Start arranca el worker de envío.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for ev := range d.events {
			d.deliver(ev)
		}
	}()
}

// Stop cierra la cola y espera a que se drenen los eventos pendientes.
func (d *Dispatcher) Stop() {
	close(d.events)
	d.wg.Wait()
}

// NotifyOrderEvent encola un evento del ciclo de vida del pedido.
func (d *Dispatcher) NotifyOrderEvent(eventType string, order *entity.Order, note string) {
	d.enqueue(Event{Type: eventType, Order: order, Note: note})
}

// NotifyLowStock encola una alerta de stock bajo para el staff.
func (d *Dispatcher) NotifyLowStock(product *entity.Product) {
	d.enqueue(Event{Type: EventLowStock, Product: product})
}

func (d *Dispatcher) enqueue(ev Event) {
	select {
	case d.events <- ev:
	default:
		d.log.Warn().Str("event", ev.Type).Msg("cola de notificaciones llena; evento descartado")
	}
}

// deliver construye y envía el correo del evento. Sin SMTP_HOST configurado
// solo se loguea (útil en desarrollo).
func (d *Dispatcher) deliver(ev Event) {
	to, subject, body := d.compose(ev)
	if to == "" {
		d.log.Debug().Str("event", ev.Type).Msg("notificación sin destinatario; omitida")
		return
	}

	log := d.log.With().Str("event", ev.Type).Str("to", to).Logger()
	if d.cfg.Host == "" {
		log.Info().Str("subject", subject).Msg("notificación (SMTP deshabilitado)")
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(d.cfg.Host, d.cfg.Port, d.cfg.User, d.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Msg("fallo enviando notificación por correo")
		return
	}
	log.Info().Msg("notificación enviada")
}

// compose arma destinatario, asunto y cuerpo según el tipo de evento.
func (d *Dispatcher) compose(ev Event) (to, subject, body string) {
	switch ev.Type {
	case EventLowStock:
		p := ev.Product
		return d.cfg.StaffEmail,
			fmt.Sprintf("Stock bajo: %s", p.Name),
			fmt.Sprintf("El producto %q (SKU %s) quedó con %d %s disponibles (umbral %d). Programar reposición.",
				p.Name, p.SKU, p.StockAvailable(), p.Unit, p.LowStockThreshold)
	}

	o := ev.Order
	if o == nil {
		return "", "", ""
	}
	switch ev.Type {
	case "order.created":
		return o.Customer.Email,
			fmt.Sprintf("Pedido %s recibido", o.OrderNumber),
			fmt.Sprintf("Hola %s, recibimos tu pedido %s por %s. Te avisaremos cuando se confirme el pago.",
				o.Customer.Name, o.OrderNumber, o.TotalAmount.StringFixed(2))
	case "order.paid":
		return o.Customer.Email,
			fmt.Sprintf("Pago confirmado para el pedido %s", o.OrderNumber),
			fmt.Sprintf("Hola %s, confirmamos el pago de tu pedido %s (factura %s). Pronto comenzaremos a prepararlo.",
				o.Customer.Name, o.OrderNumber, o.InvoiceNumber)
	case "order.cancelled":
		// El staff también se entera de las cancelaciones por el buzón interno.
		if d.cfg.StaffEmail != "" && d.cfg.Host != "" {
			d.enqueue(Event{Type: "order.cancelled.staff", Order: o, Note: ev.Note})
		}
		return o.Customer.Email,
			fmt.Sprintf("Pedido %s cancelado", o.OrderNumber),
			fmt.Sprintf("Hola %s, tu pedido %s fue cancelado. Motivo: %s.",
				o.Customer.Name, o.OrderNumber, orDefault(ev.Note, "no indicado"))
	case "order.cancelled.staff":
		return d.cfg.StaffEmail,
			fmt.Sprintf("Cancelación: pedido %s", o.OrderNumber),
			fmt.Sprintf("El pedido %s de %s fue cancelado. Motivo: %s.",
				o.OrderNumber, o.Customer.BusinessName, orDefault(ev.Note, "no indicado"))
	case "order.status_changed":
		return o.Customer.Email,
			fmt.Sprintf("Pedido %s: %s", o.OrderNumber, o.Status),
			fmt.Sprintf("Hola %s, tu pedido %s cambió a %s. %s",
				o.Customer.Name, o.OrderNumber, o.Status, ev.Note)
	}
	return "", "", ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
