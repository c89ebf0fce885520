package routes

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	hotelModel "travel-agency/models/hotel"
	serviceModel "travel-agency/models/travel_service"
	"travel-agency/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotelFilters(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	for _, h := range []fiber.Map{
		{"name": "Lakeside", "city": "Geneva", "country": "CH", "star_rating": 4, "price_from": "120.00"},
		{"name": "Palace", "city": "Geneva", "country": "CH", "star_rating": 5, "price_from": 480},
		{"name": "Budget Inn", "city": "Paris", "country": "FR", "star_rating": 2, "price_from": "55"},
		{"name": "Closed", "city": "Geneva", "country": "CH", "star_rating": 5, "price_from": 90, "is_active": false},
	} {
		status, resp := s.do(t, http.MethodPost, "/api/admin/hotels", token, h)
		require.Equal(t, http.StatusCreated, status, resp.Message)
	}

	status, resp := s.do(t, http.MethodGet, "/api/hotels?city=geneva", "", nil)
	require.Equal(t, http.StatusOK, status)
	var hotels []hotelModel.Hotel
	decode(t, resp.Data, &hotels)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Palace", hotels[0].Name)
	assert.Equal(t, "Lakeside", hotels[1].Name)

	status, resp = s.do(t, http.MethodGet, "/api/hotels?min_stars=3&active_only=false", "", nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, resp.Data, &hotels)
	assert.Len(t, hotels, 3)

	status, resp = s.do(t, http.MethodGet, "/api/admin/hotels", token, nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, resp.Data, &hotels)
	assert.Len(t, hotels, 4)
}

func TestHotelValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, resp := s.do(t, http.MethodPost, "/api/admin/hotels", token, fiber.Map{
		"name": "Too Many Stars", "city": "Rome", "country": "IT", "star_rating": 6, "price_from": 100,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "star_rating", resp.Errors[0].Field)

	status, resp = s.do(t, http.MethodPost, "/api/admin/hotels", token, fiber.Map{
		"name": "Free", "city": "Rome", "country": "IT", "star_rating": 3, "price_from": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "price_from", resp.Errors[0].Field)

	status, _ = s.do(t, http.MethodPut, "/api/admin/hotels/999", token, fiber.Map{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServiceCRUD(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, resp := s.do(t, http.MethodPost, "/api/admin/services", token, fiber.Map{
		"name_ru": "Визы", "name_en": "Visas", "name_fr": "Visas", "price": "35.50", "icon": "passport",
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	var created serviceModel.TravelService
	decode(t, resp.Data, &created)
	require.True(t, created.Price.Valid)
	assert.Equal(t, "35.5", created.Price.Decimal.String())

	status, resp = s.do(t, http.MethodPost, "/api/admin/services", token, fiber.Map{
		"name_ru": "Трансфер", "name_en": "Transfer", "name_fr": "Transfert",
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	var transfer serviceModel.TravelService
	decode(t, resp.Data, &transfer)
	assert.False(t, transfer.Price.Valid)

	status, _ = s.do(t, http.MethodPut, "/api/admin/services/"+itoa(transfer.ID), token, fiber.Map{"is_active": false})
	require.Equal(t, http.StatusOK, status)

	status, resp = s.do(t, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, status)
	var services []serviceModel.TravelService
	decode(t, resp.Data, &services)
	require.Len(t, services, 1)
	assert.Equal(t, created.ID, services[0].ID)

	status, resp = s.do(t, http.MethodGet, "/api/services?active_only=false", "", nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, resp.Data, &services)
	assert.Len(t, services, 2)

	status, _ = s.do(t, http.MethodPost, "/api/admin/services", token, fiber.Map{
		"name_ru": "x", "name_en": "x", "name_fr": "x", "price": -1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = s.do(t, http.MethodDelete, "/api/admin/services/"+itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(t, http.MethodGet, "/api/services/"+itoa(created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func uploadRequest(t *testing.T, token, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("note", "no file"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestUploadStoresAndServesFile(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, resp := s.send(t, uploadRequest(t, token, "Beach.PNG", []byte("fake png bytes")))
	require.Equal(t, http.StatusCreated, status, resp.Message)
	var uploaded resource.UploadResponse
	decode(t, resp.Data, &uploaded)
	assert.True(t, strings.HasSuffix(uploaded.Filename, ".png"))
	assert.Equal(t, "/api/uploads/"+uploaded.Filename, uploaded.URL)

	served, err := s.app.Test(httptest.NewRequest(http.MethodGet, uploaded.URL, nil), -1)
	require.NoError(t, err)
	defer served.Body.Close()
	require.Equal(t, http.StatusOK, served.StatusCode)
	raw, err := io.ReadAll(served.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(raw))
}

func TestUploadRejections(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	status, resp := s.send(t, uploadRequest(t, token, "script.exe", []byte("MZ")))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "file", resp.Errors[0].Field)

	status, _ = s.send(t, uploadRequest(t, token, "", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = s.send(t, uploadRequest(t, token, "huge.jpg", bytes.Repeat([]byte("a"), 1024*1024+1)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)

	req := uploadRequest(t, token, "photo.jpg", []byte("x"))
	req.Header.Del(fiber.HeaderAuthorization)
	status, _ = s.send(t, req)
	assert.Equal(t, http.StatusUnauthorized, status)
}
