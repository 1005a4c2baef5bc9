package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"lavadero/internal/apperr"
	"lavadero/internal/model"
	"lavadero/internal/repository"
	"lavadero/internal/service"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────

// stubLavadorRepo is shared by the other stubs to resolve lavador names.
type stubLavadorRepo struct {
	mu        sync.Mutex
	lavadores map[uint]*model.Lavador
	seq       uint
	finds     int
}

func newStubLavadorRepo() *stubLavadorRepo {
	return &stubLavadorRepo{lavadores: make(map[uint]*model.Lavador)}
}

func (r *stubLavadorRepo) add(nombre, turno string) *model.Lavador {
	l := &model.Lavador{Nombre: nombre, Turno: turno}
	_ = r.Create(context.Background(), l)
	return l
}

func (r *stubLavadorRepo) Create(_ context.Context, l *model.Lavador) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.lavadores {
		if existing.Nombre == l.Nombre && existing.Turno == l.Turno {
			return apperr.Duplicate("lavador.create", "lavador", "El lavador ya existe en ese turno", nil)
		}
	}
	r.seq++
	l.ID = r.seq
	cp := *l
	r.lavadores[l.ID] = &cp
	return nil
}

func (r *stubLavadorRepo) FindByID(_ context.Context, id uint) (*model.Lavador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	l, ok := r.lavadores[id]
	if !ok {
		return nil, apperr.NotFound("lavador.find", "lavador", "Lavador no encontrado", nil)
	}
	cp := *l
	return &cp, nil
}

func (r *stubLavadorRepo) List(_ context.Context, turno string) ([]model.Lavador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Lavador, 0)
	for _, l := range r.lavadores {
		if turno == "" || l.Turno == turno {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Turno != out[j].Turno {
			return out[i].Turno < out[j].Turno
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out, nil
}

func (r *stubLavadorRepo) nombre(id uint) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lavadores[id]
	if !ok {
		return "", false
	}
	return l.Nombre, true
}

// stubAseoRepo enforces the (lavador_id, fecha) uniqueness like the real index.
type stubAseoRepo struct {
	mu        sync.Mutex
	lavadores *stubLavadorRepo
	rows      []model.Aseo
	seq       uint
	lastQuery repository.ReporteFilter
	failWith  error
}

func newStubAseoRepo(l *stubLavadorRepo) *stubAseoRepo { return &stubAseoRepo{lavadores: l} }

func (r *stubAseoRepo) Create(_ context.Context, a *model.Aseo) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.lavadores.nombre(a.LavadorID); !ok {
		return apperr.NotFound("aseo.create", "lavador", "Lavador no encontrado", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.LavadorID == a.LavadorID && time.Time(existing.Fecha).Equal(time.Time(a.Fecha)) {
			return apperr.Duplicate("aseo.create", "aseo", "El lavador ya registró el aseo de hoy", nil)
		}
	}
	r.seq++
	a.ID = r.seq
	r.rows = append(r.rows, *a)
	return nil
}

func (r *stubAseoRepo) List(_ context.Context, f repository.ReporteFilter) ([]repository.AseoRow, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = f
	out := make([]repository.AseoRow, 0)
	for _, a := range r.rows {
		nombre, ok := r.lavadores.nombre(a.LavadorID)
		if !ok {
			continue
		}
		fe := time.Time(a.Fecha)
		if (f.Desde != nil && fe.Before(time.Time(*f.Desde))) ||
			(f.Hasta != nil && fe.After(time.Time(*f.Hasta))) ||
			(f.Turno != "" && a.Turno != f.Turno) ||
			(f.LavadorID != nil && a.LavadorID != *f.LavadorID) {
			continue
		}
		out = append(out, repository.AseoRow{
			ID: a.ID, Fecha: a.Fecha, Turno: a.Turno, LavadorID: a.LavadorID,
			Lavador: nombre, Tareas: a.Tareas, Observacion: a.Observacion,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := time.Time(out[i].Fecha), time.Time(out[j].Fecha)
		if !fi.Equal(fj) {
			return fi.After(fj)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type stubEntregaRepo struct {
	mu        sync.Mutex
	lavadores *stubLavadorRepo
	rows      []model.Entrega
	seq       uint
	lastQuery repository.ReporteFilter
}

func newStubEntregaRepo(l *stubLavadorRepo) *stubEntregaRepo { return &stubEntregaRepo{lavadores: l} }

func (r *stubEntregaRepo) Create(_ context.Context, e *model.Entrega) error {
	if _, ok := r.lavadores.nombre(e.LavadorID); !ok {
		return apperr.NotFound("entrega.create", "lavador", "Lavador o usuario no encontrado", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	e.ID = r.seq
	r.rows = append(r.rows, *e)
	return nil
}

func (r *stubEntregaRepo) List(_ context.Context, f repository.ReporteFilter) ([]repository.EntregaRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = f
	out := make([]repository.EntregaRow, 0)
	for i := len(r.rows) - 1; i >= 0; i-- {
		e := r.rows[i]
		nombre, ok := r.lavadores.nombre(e.LavadorID)
		if !ok {
			continue
		}
		out = append(out, repository.EntregaRow{
			ID: e.ID, Fecha: e.Fecha, Turno: e.Turno, LavadorID: e.LavadorID, Lavador: nombre,
			Producto: e.Producto, Cantidad: e.Cantidad, Observacion: e.Observacion,
		})
	}
	return out, nil
}

type stubUsuarioRepo struct {
	users map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) FindActivo(_ context.Context, usuario string) (*model.Usuario, error) {
	u, ok := r.users[usuario]
	if !ok || !u.Activo {
		return nil, apperr.NotFound("usuario.find", "usuario", "Usuario no encontrado", nil)
	}
	return u, nil
}

func (r *stubUsuarioRepo) CreateIfMissing(_ context.Context, u *model.Usuario) (bool, error) {
	if _, ok := r.users[u.Usuario]; ok {
		return false, nil
	}
	u.ID = uint(len(r.users) + 1)
	r.users[u.Usuario] = u
	return true, nil
}

var (
	_ repository.LavadorRepository = (*stubLavadorRepo)(nil)
	_ repository.AseoRepository    = (*stubAseoRepo)(nil)
	_ repository.EntregaRepository = (*stubEntregaRepo)(nil)
	_ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
)

// ── Helpers ───────────────────────────────────────────────────────────────────

var buenosAires = time.FixedZone("ART", -3*60*60)

// relojFijo returns a clock frozen at the given instant, observed in UTC-3.
func relojFijo(t time.Time) service.Reloj {
	return service.Reloj{Now: func() time.Time { return t }, Loc: buenosAires}
}
