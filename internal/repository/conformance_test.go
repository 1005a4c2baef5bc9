package repository_test

import (
	"context"
	"sync"
	"testing"

	"lavadero/internal/apperr"
	"lavadero/internal/model"
	"lavadero/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// harness adapts the conformance suite to one storage adapter.
type harness struct {
	// open returns an empty, migrated database.
	open func(t *testing.T) *gorm.DB
	// dropLavadorUnchecked deletes a lavador bypassing foreign keys, leaving
	// its records orphaned.
	dropLavadorUnchecked func(t *testing.T, db *gorm.DB, id uint)
}

// runConformance checks the repository contract every adapter must honor.
func runConformance(t *testing.T, h harness) {
	tests := []struct {
		name string
		fn   func(t *testing.T, h harness)
	}{
		{"AseoRoundTripsTareas", testAseoRoundTripsTareas},
		{"AseoDuplicateSameDay", testAseoDuplicateSameDay},
		{"AseoNextDayAllowed", testAseoNextDayAllowed},
		{"AseoUnknownLavador", testAseoUnknownLavador},
		{"AseoConcurrentRegistration", testAseoConcurrentRegistration},
		{"AseoListFiltersAndOrder", testAseoListFiltersAndOrder},
		{"AseoListPagination", testAseoListPagination},
		{"AseoListOmitsOrphans", testAseoListOmitsOrphans},
		{"EntregaCreateAndList", testEntregaCreateAndList},
		{"EntregaUnknownLavador", testEntregaUnknownLavador},
		{"LavadorCrud", testLavadorCrud},
		{"UsuarioSeedAndLogin", testUsuarioSeedAndLogin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) { tc.fn(t, h) })
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func fecha(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := model.ParseFecha(s)
	require.NoError(t, err)
	return d
}

func crearLavador(t *testing.T, db *gorm.DB, nombre, turno string) *model.Lavador {
	t.Helper()
	l := &model.Lavador{Nombre: nombre, Turno: turno}
	require.NoError(t, repository.NewLavadorRepository(db).Create(context.Background(), l))
	require.NotZero(t, l.ID)
	return l
}

func crearAseo(t *testing.T, db *gorm.DB, l *model.Lavador, dia string, tareas ...string) *model.Aseo {
	t.Helper()
	a := &model.Aseo{
		Fecha:     fecha(t, dia),
		Turno:     l.Turno,
		LavadorID: l.ID,
		Tareas:    datatypes.JSONSlice[string](tareas),
	}
	require.NoError(t, repository.NewAseoRepository(db).Create(context.Background(), a))
	return a
}

func ids(rows []repository.AseoRow) []uint {
	out := make([]uint, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

// ── Aseo ──────────────────────────────────────────────────────────────────────

func testAseoRoundTripsTareas(t *testing.T, h harness) {
	db := h.open(t)
	l := crearLavador(t, db, "Juan", model.TurnoDia)
	obs := "sin novedades"
	a := &model.Aseo{
		Fecha:       fecha(t, "2026-03-10"),
		Turno:       model.TurnoDia,
		LavadorID:   l.ID,
		Tareas:      datatypes.JSONSlice[string]{"ventanas", "piso", "baño"},
		Observacion: &obs,
	}
	require.NoError(t, repository.NewAseoRepository(db).Create(context.Background(), a))

	rows, err := repository.NewAseoRepository(db).List(context.Background(), repository.ReporteFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)
	assert.Equal(t, "Juan", rows[0].Lavador)
	assert.Equal(t, l.ID, rows[0].LavadorID)
	assert.Equal(t, "2026-03-10", model.FormatFecha(rows[0].Fecha))
	assert.Equal(t, []string{"ventanas", "piso", "baño"}, []string(rows[0].Tareas))
	require.NotNil(t, rows[0].Observacion)
	assert.Equal(t, "sin novedades", *rows[0].Observacion)
}

func testAseoDuplicateSameDay(t *testing.T, h harness) {
	db := h.open(t)
	l := crearLavador(t, db, "Juan", model.TurnoDia)
	crearAseo(t, db, l, "2026-03-10", "piso")

	err := repository.NewAseoRepository(db).Create(context.Background(), &model.Aseo{
		Fecha:     fecha(t, "2026-03-10"),
		Turno:     model.TurnoDia,
		LavadorID: l.ID,
		Tareas:    datatypes.JSONSlice[string]{"ventanas"},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate), err.Error())
	e, _ := apperr.As(err)
	assert.Equal(t, "El lavador ya registró el aseo de hoy", e.Message)

	// The first record is untouched.
	rows, err := repository.NewAseoRepository(db).List(context.Background(), repository.ReporteFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"piso"}, []string(rows[0].Tareas))
}

func testAseoNextDayAllowed(t *testing.T, h harness) {
	db := h.open(t)
	l := crearLavador(t, db, "Juan", model.TurnoDia)
	otro := crearLavador(t, db, "Pedro", model.TurnoDia)
	crearAseo(t, db, l, "2026-03-10", "piso")
	crearAseo(t, db, l, "2026-03-11", "piso")
	crearAseo(t, db, otro, "2026-03-10", "piso")

	rows, err := repository.NewAseoRepository(db).List(context.Background(), repository.ReporteFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func testAseoUnknownLavador(t *testing.T, h harness) {
	db := h.open(t)
	err := repository.NewAseoRepository(db).Create(context.Background(), &model.Aseo{
		Fecha:     fecha(t, "2026-03-10"),
		Turno:     model.TurnoDia,
		LavadorID: 999,
		Tareas:    datatypes.JSONSlice[string]{"piso"},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), err.Error())
}

func testAseoConcurrentRegistration(t *testing.T, h harness) {
	db := h.open(t)
	l := crearLavador(t, db, "Juan", model.TurnoDia)
	repo := repository.NewAseoRepository(db)
	dia := fecha(t, "2026-03-10")

	const n = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = repo.Create(context.Background(), &model.Aseo{
				Fecha:     dia,
				Turno:     model.TurnoDia,
				LavadorID: l.ID,
				Tareas:    datatypes.JSONSlice[string]{"piso"},
			})
		}(i)
	}
	close(start)
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.Is(err, apperr.KindDuplicate):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)

	rows, err := repo.List(context.Background(), repository.ReporteFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func testAseoListFiltersAndOrder(t *testing.T, h harness) {
	db := h.open(t)
	repo := repository.NewAseoRepository(db)
	juan := crearLavador(t, db, "Juan", model.TurnoDia)
	ana := crearLavador(t, db, "Ana", model.TurnoNoche)

	a1 := crearAseo(t, db, juan, "2026-03-01", "piso")
	a2 := crearAseo(t, db, ana, "2026-03-01", "piso")
	a3 := crearAseo(t, db, juan, "2026-03-02", "piso")
	a4 := crearAseo(t, db, ana, "2026-03-03", "piso")

	ctx := context.Background()

	all, err := repo.List(ctx, repository.ReporteFilter{})
	require.NoError(t, err)
	// fecha DESC, then id DESC within the same day.
	assert.Equal(t, []uint{a4.ID, a3.ID, a2.ID, a1.ID}, ids(all))

	desde, hasta := fecha(t, "2026-03-01"), fecha(t, "2026-03-02")
	rango, err := repo.List(ctx, repository.ReporteFilter{Desde: &desde, Hasta: &hasta})
	require.NoError(t, err)
	assert.Equal(t, []uint{a3.ID, a2.ID, a1.ID}, ids(rango), "both bounds are inclusive")

	noche, err := repo.List(ctx, repository.ReporteFilter{Turno: model.TurnoNoche})
	require.NoError(t, err)
	assert.Equal(t, []uint{a4.ID, a2.ID}, ids(noche))
	for _, r := range noche {
		assert.Equal(t, "Ana", r.Lavador)
	}

	porLavador, err := repo.List(ctx, repository.ReporteFilter{LavadorID: &juan.ID, Hasta: &desde})
	require.NoError(t, err)
	assert.Equal(t, []uint{a1.ID}, ids(porLavador))

	d1, d2 := fecha(t, "2026-04-01"), fecha(t, "2026-04-30")
	vacio, err := repo.List(ctx, repository.ReporteFilter{Desde: &d1, Hasta: &d2})
	require.NoError(t, err)
	assert.NotNil(t, vacio)
	assert.Empty(t, vacio)

	invertido, err := repo.List(ctx, repository.ReporteFilter{Desde: &hasta, Hasta: &desde})
	require.NoError(t, err)
	assert.Empty(t, invertido)
}

func testAseoListPagination(t *testing.T, h harness) {
	db := h.open(t)
	repo := repository.NewAseoRepository(db)
	l := crearLavador(t, db, "Juan", model.TurnoDia)
	var created []uint
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"} {
		created = append(created, crearAseo(t, db, l, d, "piso").ID)
	}

	page2, err := repo.List(context.Background(), repository.ReporteFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []uint{created[2], created[1]}, ids(page2))

	sinLimite, err := repo.List(context.Background(), repository.ReporteFilter{Page: 3})
	require.NoError(t, err)
	assert.Len(t, sinLimite, 5, "page without limit returns everything")
}

func testAseoListOmitsOrphans(t *testing.T, h harness) {
	db := h.open(t)
	repo := repository.NewAseoRepository(db)
	juan := crearLavador(t, db, "Juan", model.TurnoDia)
	pedro := crearLavador(t, db, "Pedro", model.TurnoDia)
	keep := crearAseo(t, db, juan, "2026-03-01", "piso")
	crearAseo(t, db, pedro, "2026-03-01", "piso")

	h.dropLavadorUnchecked(t, db, pedro.ID)

	rows, err := repo.List(context.Background(), repository.ReporteFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uint{keep.ID}, ids(rows))
}

// ── Entregas ──────────────────────────────────────────────────────────────────

func testEntregaCreateAndList(t *testing.T, h harness) {
	db := h.open(t)
	repo := repository.NewEntregaRepository(db)
	ctx := context.Background()
	juan := crearLavador(t, db, "Juan", model.TurnoDia)
	ana := crearLavador(t, db, "Ana", model.TurnoNoche)

	admin := &model.Usuario{Usuario: "admin", Password: "1234", Rol: model.TurnoAdmin, Activo: true}
	_, err := repository.NewUsuarioRepository(db).CreateIfMissing(ctx, admin)
	require.NoError(t, err)

	e1 := &model.Entrega{
		Fecha: fecha(t, "2026-03-01"), Turno: model.TurnoDia, LavadorID: juan.ID,
		Producto: "Shampoo", Cantidad: decimal.RequireFromString("2.5"), RegistradoPor: &admin.ID,
	}
	e2 := &model.Entrega{
		Fecha: fecha(t, "2026-03-02"), Turno: model.TurnoNoche, LavadorID: ana.ID,
		Producto: "Cera", Cantidad: decimal.NewFromInt(1),
	}
	require.NoError(t, repo.Create(ctx, e1))
	require.NoError(t, repo.Create(ctx, e2))

	rows, err := repo.List(ctx, repository.ReporteFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, e2.ID, rows[0].ID)
	assert.Equal(t, "Ana", rows[0].Lavador)
	assert.Equal(t, e1.ID, rows[1].ID)
	assert.Equal(t, "Shampoo", rows[1].Producto)
	assert.True(t, decimal.RequireFromString("2.5").Equal(rows[1].Cantidad), rows[1].Cantidad.String())

	dia, err := repo.List(ctx, repository.ReporteFilter{Turno: model.TurnoDia})
	require.NoError(t, err)
	require.Len(t, dia, 1)
	assert.Equal(t, e1.ID, dia[0].ID)
}

func testEntregaUnknownLavador(t *testing.T, h harness) {
	db := h.open(t)
	err := repository.NewEntregaRepository(db).Create(context.Background(), &model.Entrega{
		Fecha: fecha(t, "2026-03-01"), Turno: model.TurnoDia, LavadorID: 42,
		Producto: "Cera", Cantidad: decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), err.Error())
}

// ── Lavadores / Usuarios ──────────────────────────────────────────────────────

func testLavadorCrud(t *testing.T, h harness) {
	db := h.open(t)
	repo := repository.NewLavadorRepository(db)
	ctx := context.Background()

	juan := crearLavador(t, db, "Juan", model.TurnoDia)
	crearLavador(t, db, "Ana", model.TurnoNoche)
	crearLavador(t, db, "Juan", model.TurnoNoche)

	err := repo.Create(ctx, &model.Lavador{Nombre: "Juan", Turno: model.TurnoDia})
	assert.True(t, apperr.Is(err, apperr.KindDuplicate), "same name in the same shift")

	found, err := repo.FindByID(ctx, juan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan", found.Nombre)

	_, err = repo.FindByID(ctx, 9999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	noche, err := repo.List(ctx, model.TurnoNoche)
	require.NoError(t, err)
	require.Len(t, noche, 2)
	assert.Equal(t, "Ana", noche[0].Nombre)
	assert.Equal(t, "Juan", noche[1].Nombre)

	todos, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func testUsuarioSeedAndLogin(t *testing.T, h harness) {
	db := h.open(t)
	repo := repository.NewUsuarioRepository(db)
	ctx := context.Background()

	created, err := repo.CreateIfMissing(ctx, &model.Usuario{Usuario: "admin", Password: "1234", Rol: "admin", Activo: true})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfMissing(ctx, &model.Usuario{Usuario: "admin", Password: "otra", Rol: "admin", Activo: true})
	require.NoError(t, err)
	assert.False(t, created)

	u, err := repo.FindActivo(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "1234", u.Password)

	require.NoError(t, db.Model(&model.Usuario{}).Where("id = ?", u.ID).Update("activo", false).Error)
	_, err = repo.FindActivo(ctx, "admin")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
