// Package capture перехватывает покадровую отрисовку сущности и записывает
// нарисованное.
//
// Tracer оборачивает Entity и ставится на её место: цикл отрисовки вызывает
// Tracer.Render там же, где раньше вызывал сущность. Во время трассировки каждый
// вызов рисует сущность один раз во внеэкранный буфер, сохраняет буфер как кадр
// и копирует его на настоящий холст. Видимый результат совпадает с захваченным.
package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"reflect"

	"golang.org/x/image/draw"

	"github.com/ivlev/spritetrace/internal/frames"
	"github.com/ivlev/spritetrace/internal/system"
)

// ErrInvalidEnvironment возвращает New, если окружение не умеет рисовать вне экрана.
var ErrInvalidEnvironment = errors.New("offscreen capture not supported in this environment")

// Renderable рисует себя в dst с левым верхним углом в origin.
type Renderable interface {
	Render(dst draw.Image, origin image.Point) error
}

// Entity — рисуемая сущность, которую можно трассировать.
type Entity interface {
	Renderable
	// Size — текущий размер в пикселях.
	Size() (width, height float64)
}

// Namer задаёт имя сущности для префиксов экспорта и ошибок.
type Namer interface {
	Name() string
}

// Tracer — движок захвата одной сущности. Управляется из одного цикла
// отрисовки, конкурентный доступ не поддерживается.
type Tracer struct {
	entity    Entity
	store     *frames.Store
	state     State
	remaining int
	bounded   bool

	logger *slog.Logger
	env    Environment
	getBuf func(width, height int) *image.RGBA
	putBuf func(*image.RGBA)
}

// Option настраивает Tracer.
type Option func(*Tracer)

// WithLogger задаёт логгер событий. Nil оставляет логирование выключенным.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithEnvironment задаёт окружение. По умолчанию Development.
func WithEnvironment(env Environment) Option {
	return func(t *Tracer) {
		t.env = env
	}
}

// WithAllocator заменяет пул буферов кадров. put может быть nil.
func WithAllocator(get func(width, height int) *image.RGBA, put func(*image.RGBA)) Option {
	return func(t *Tracer) {
		t.getBuf = get
		t.putBuf = put
	}
}

// New подключает трассировщик к e. Границы задаются текущим размером e.
func New(e Entity, opts ...Option) (*Tracer, error) {
	t := &Tracer{
		entity: e,
		state:  Idle,
		logger: slog.New(slog.DiscardHandler),
		env:    Development,
		getBuf: system.GetImage,
		putBuf: system.PutImage,
	}
	for _, opt := range opts {
		opt(t)
	}

	if !t.env.SupportsOffscreen() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEnvironment, t.env)
	}

	w, h := e.Size()
	t.store = frames.NewStore(w, h, t.putBuf)
	t.logger = t.logger.With("entity", t.Name())
	return t, nil
}

// StartTracing включает захват. Положительный limit останавливает его после
// стольких кадров, ноль и меньше — до StopTracing. Повторный вызов во время
// трассировки заменяет лимит.
func (t *Tracer) StartTracing(limit int) {
	t.state = Tracing
	t.bounded = limit > 0
	t.remaining = 0
	if t.bounded {
		t.remaining = limit
	}
	t.logger.Info("tracing started", "limit", limit)
}

// StopTracing выключает захват. В Idle ничего не делает.
func (t *Tracer) StopTracing() {
	if t.state == Idle {
		return
	}
	t.state = Idle
	t.bounded = false
	t.remaining = 0
	t.logger.Info("tracing stopped", "frames", t.store.Len())
}

// Reset удаляет все кадры, задаёт границы по текущему размеру сущности и
// возвращает в Idle.
func (t *Tracer) Reset() {
	w, h := t.entity.Size()
	t.store.Clear(w, h)
	t.state = Idle
	t.bounded = false
	t.remaining = 0
	t.logger.Info("tracing reset", "width", w, "height", h)
}

// Render заменяет собственную отрисовку сущности.
func (t *Tracer) Render(dst draw.Image, origin image.Point) error {
	if t.state != Tracing {
		return t.entity.Render(dst, origin)
	}

	w, h := t.entity.Size()
	buf := t.getBuf(pixels(w), pixels(h))
	if err := t.entity.Render(buf, image.Point{}); err != nil {
		if t.putBuf != nil {
			t.putBuf(buf)
		}
		return err
	}

	t.store.Append(frames.NewFrame(buf))
	draw.Draw(dst, buf.Rect.Add(origin), buf, image.Point{}, draw.Over)
	t.logger.Debug("frame captured", "index", t.store.Len(), "width", buf.Rect.Dx(), "height", buf.Rect.Dy())

	t.advance()
	return nil
}

// advance — единственный покадровый переход: тратит единицу лимита и уходит
// в Idle, когда лимит исчерпан.
func (t *Tracer) advance() {
	if !t.bounded {
		return
	}
	t.remaining--
	if t.remaining <= 0 {
		t.logger.Info("frame limit reached")
		t.StopTracing()
	}
}

// State — текущее состояние.
func (t *Tracer) State() State {
	return t.state
}

// Remaining — сколько кадров осталось до автоостановки. ok ложно без лимита
// или в Idle.
func (t *Tracer) Remaining() (n int, ok bool) {
	return t.remaining, t.bounded
}

// Frames отдаёт кадры только для чтения.
func (t *Tracer) Frames() frames.View {
	return t.store
}

// Bounds — накопленные границы размеров сессии.
func (t *Tracer) Bounds() frames.Bounds {
	return t.store.Bounds()
}

// Name — имя сущности, по умолчанию имя её типа.
func (t *Tracer) Name() string {
	return EntityName(t.entity)
}

// EntityName возвращает Name сущности, если есть, иначе имя типа.
func EntityName(e Entity) string {
	if n, ok := e.(Namer); ok {
		return n.Name()
	}
	typ := reflect.TypeOf(e)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() == "" {
		return "entity"
	}
	return typ.Name()
}

// pixels переводит размер в сторону буфера, в которую он помещается.
func pixels(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}
