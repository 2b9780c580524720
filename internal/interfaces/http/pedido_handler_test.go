package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pedidos-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "pedidos-api-test"
	testAudience  = "pedidos-admin-test"
	testExpMin    = 60
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos map[int64]*entity.Pedido
	nextID  int64
}

func newFakePedidoRepo() *fakePedidoRepo {
	return &fakePedidoRepo{pedidos: make(map[int64]*entity.Pedido), nextID: 1}
}

func (f *fakePedidoRepo) ListAll() ([]*entity.Pedido, error) {
	var list []*entity.Pedido
	for _, p := range f.pedidos {
		if !p.IsDeleted {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (f *fakePedidoRepo) GetByID(id int64) (*entity.Pedido, error) {
	p, ok := f.pedidos[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePedidoRepo) ExistsByNumero(numero string) (bool, error) {
	for _, p := range f.pedidos {
		if p.NumeroPedido == numero && !p.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePedidoRepo) Create(p *entity.Pedido) error {
	for _, existing := range f.pedidos {
		if existing.NumeroPedido == p.NumeroPedido {
			return domain.ErrNumeroDuplicado
		}
	}
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.pedidos[p.ID] = &cp
	return nil
}

func (f *fakePedidoRepo) Update(p *entity.Pedido) error {
	cp := *p
	f.pedidos[p.ID] = &cp
	return nil
}

type fakeUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
}

func (f *fakeUsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	u, ok := f.usuarios[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// buildApp monta la API completa (router real, use cases reales) sobre fakes.
func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	usuarioRepo := &fakeUsuarioRepo{usuarios: map[string]*entity.Usuario{
		"user@email.com": {
			ID:           "00000000-0000-0000-0000-000000000001",
			Email:        "user@email.com",
			PasswordHash: string(hash),
			Nombre:       "Administrador",
			Rol:          entity.RolAdmin,
		},
	}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		PedidoUC: usecase.NewPedidoUseCase(newFakePedidoRepo()),
		AuthUC: auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
			Audience:   testAudience,
		}),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
		JWTAudience: testAudience,
	})
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "user@email.com", "admin", testIssuer, testAudience, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodePedido(t *testing.T, resp *http.Response) dto.PedidoResponse {
	t.Helper()
	var out dto.PedidoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK_DevuelveTokenYExpiracion(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "",
		dto.LoginRequest{Email: "user@email.com", Password: "123456"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, testExpMin*60, out.ExpiresIn)

	email, rol, err := pkgjwt.Parse(testJWTSecret, testIssuer, testAudience, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user@email.com", email)
	assert.Equal(t, entity.RolAdmin, rol)
}

func TestLogin_CredencialesInvalidas_MismaRespuesta(t *testing.T) {
	app := buildApp(t)

	respPassword := doJSON(t, app, http.MethodPost, "/auth/login", "",
		dto.LoginRequest{Email: "user@email.com", Password: "incorrecta"})
	defer respPassword.Body.Close()
	respEmail := doJSON(t, app, http.MethodPost, "/auth/login", "",
		dto.LoginRequest{Email: "nadie@email.com", Password: "123456"})
	defer respEmail.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, respPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respEmail.StatusCode)

	bodyPassword, _ := io.ReadAll(respPassword.Body)
	bodyEmail, _ := io.ReadAll(respEmail.Body)
	assert.Equal(t, string(bodyPassword), string(bodyEmail),
		"email desconocido y contraseña incorrecta deben ser indistinguibles")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos: autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestPedidos_SinToken_Retorna401(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/pedidos/", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos: CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestPedidos_Create_Retorna201(t *testing.T) {
	app := buildApp(t)
	tok := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-100",
		Cliente:      "Acme Co",
		Total:        decimal.NewFromFloat(99.90),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decodePedido(t, resp)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "PED-100", out.NumeroPedido)
	assert.Equal(t, entity.EstadoRegistrado, out.Estado)
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(99.90)))
}

func TestPedidos_Create_TotalSerializaComoNumero(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", bearerToken(t), dto.CreatePedidoRequest{
		NumeroPedido: "PED-100",
		Cliente:      "Acme Co",
		Total:        decimal.NewFromFloat(99.90),
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// El frontend suma los totales directamente: el JSON crudo debe traer un
	// número, no un string.
	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.NotEmpty(t, raw["total"])
	assert.NotEqual(t, byte('"'), raw["total"][0], "total debe serializarse como número JSON")
	assert.Equal(t, "99.9", string(raw["total"]))
}

func TestPedidos_Create_TotalCero_Retorna400(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", bearerToken(t), dto.CreatePedidoRequest{
		NumeroPedido: "PED-100",
		Cliente:      "Acme Co",
		Total:        decimal.Zero,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "mayor a cero")
}

func TestPedidos_Create_ClienteMuyCorto_Retorna400(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", bearerToken(t), dto.CreatePedidoRequest{
		NumeroPedido: "PED-100",
		Cliente:      "ab",
		Total:        decimal.NewFromInt(10),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPedidos_Create_Duplicado_Retorna400ConElNumero(t *testing.T) {
	app := buildApp(t)
	tok := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-001", Cliente: "Acme Co", Total: decimal.NewFromInt(10),
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-001", Cliente: "Otro Cliente", Total: decimal.NewFromInt(20),
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PED-001")
}

func TestPedidos_ListYGetByID(t *testing.T) {
	app := buildApp(t)
	tok := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-001", Cliente: "Acme Co", Total: decimal.NewFromInt(10),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	creado := decodePedido(t, resp)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/pedidos/", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.PedidoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)

	resp2 := doJSON(t, app, http.MethodGet, "/api/pedidos/1", tok, nil)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	out := decodePedido(t, resp2)
	assert.Equal(t, creado.ID, out.ID)
	assert.Equal(t, "PED-001", out.NumeroPedido)
}

func TestPedidos_GetByID_IDInvalido_Retorna400(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/pedidos/abc", bearerToken(t), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPedidos_Update_Retorna204YPersiste(t *testing.T) {
	app := buildApp(t)
	tok := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-001", Cliente: "Acme Co", Total: decimal.NewFromInt(10),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/api/pedidos/1", tok, dto.UpdatePedidoRequest{
		Cliente: "Jane", Total: decimal.NewFromFloat(50.00), Estado: "Enviado",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp2 := doJSON(t, app, http.MethodGet, "/api/pedidos/1", tok, nil)
	defer resp2.Body.Close()
	out := decodePedido(t, resp2)
	assert.Equal(t, "Jane", out.Cliente)
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(50.00)))
	assert.Equal(t, "Enviado", out.Estado)
	assert.Equal(t, "PED-001", out.NumeroPedido)
}

func TestPedidos_Update_NoExiste_Retorna404(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/pedidos/999", bearerToken(t), dto.UpdatePedidoRequest{
		Cliente: "Jane", Total: decimal.NewFromInt(1), Estado: "Enviado",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPedidos_Delete_LuegoGet_Retorna404(t *testing.T) {
	app := buildApp(t)
	tok := bearerToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-100", Cliente: "Acme Co", Total: decimal.NewFromFloat(99.90),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/pedidos/1", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp2 := doJSON(t, app, http.MethodGet, "/api/pedidos/1", tok, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	// El número sigue reservado: crear de nuevo con PED-100 falla.
	resp3 := doJSON(t, app, http.MethodPost, "/api/pedidos/", tok, dto.CreatePedidoRequest{
		NumeroPedido: "PED-100", Cliente: "Acme Co", Total: decimal.NewFromFloat(99.90),
	})
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestPedidos_Delete_NoExiste_Retorna404(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/pedidos/999", bearerToken(t), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
