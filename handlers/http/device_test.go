package httpHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vitalmonitor/cache"
	"vitalmonitor/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Deleted    *bool          `json:"deleted"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Resource string `json:"resource"`
			Field    string `json:"field"`
			Message  string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

func deviceRouter(t *testing.T) (*gin.Engine, *cache.TelemetryCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	useCase := usecases.NewDeviceUseCase(newFakeDeviceRepo(), &fakeReadingRepo{})
	telemetry := cache.NewTelemetryCache()
	handler := NewDeviceHandler(useCase, telemetry, zap.NewNop())

	r := gin.New()
	r.POST("/devices", handler.CreateDevice)
	r.GET("/devices/:deviceId", handler.GetDeviceByID)
	r.PUT("/devices/:deviceId", handler.UpdateDevice)
	r.DELETE("/devices/:deviceId", handler.DeleteDevice)
	r.GET("/devices/:deviceId/readings", handler.GetReadings)
	return r, telemetry
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "1.0", env.APIVersion)
	return w, env
}

func TestCreateDeviceEndpoint(t *testing.T) {
	r, _ := deviceRouter(t)

	w, env := do(t, r, http.MethodPost, "/devices",
		`{"id":"pico-01","room_temp":22.5,"room_rh":40,"user_temp":36.6,"user_spo2":98,"user_bpm":72,"condition":"stable"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, env.Data)
	assert.Equal(t, "pico-01", env.Data["id"])
	assert.Equal(t, 22.5, env.Data["room_temp"])
}

func TestCreateDeviceDuplicateID(t *testing.T) {
	r, _ := deviceRouter(t)

	w, _ := do(t, r, http.MethodPost, "/devices", `{"id":"pico-01","room_temp":21}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/devices", `{"id":"pico-01","room_temp":99}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	require.NotEmpty(t, env.Error.Errors)
	assert.Equal(t, "device", env.Error.Errors[0].Resource)

	// No write happened: the original value is still there.
	w, env = do(t, r, http.MethodGet, "/devices/pico-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 21.0, env.Data["room_temp"])
}

func TestCreateDeviceValidationAggregation(t *testing.T) {
	r, _ := deviceRouter(t)

	// Missing id and a mistyped field: both must be reported at once.
	w, env := do(t, r, http.MethodPost, "/devices", `{"room_temp":"hot"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "failed during input validation", env.Error.Message)
	assert.GreaterOrEqual(t, len(env.Error.Errors), 2)
}

func TestUpdateDeviceTelemetryPush(t *testing.T) {
	r, telemetry := deviceRouter(t)

	_, _ = do(t, r, http.MethodPost, "/devices", `{"id":"pico-01","room_temp":21,"condition":"stable"}`)

	w, env := do(t, r, http.MethodPut, "/devices/pico-01", `{"room_temp":25.5,"user_bpm":80}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25.5, env.Data["room_temp"])
	assert.Equal(t, 80.0, env.Data["user_bpm"])
	assert.Equal(t, "stable", env.Data["condition"])

	// The push is buffered for the flusher.
	assert.Equal(t, 1, telemetry.Len())
}

func TestUpdateDeviceUnknownID(t *testing.T) {
	r, _ := deviceRouter(t)

	w, env := do(t, r, http.MethodPut, "/devices/missing", `{"room_temp":20}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, http.StatusNotFound, env.Error.Code)
}

func TestDeleteDeviceReportsTrueEvenWhenAbsent(t *testing.T) {
	r, _ := deviceRouter(t)

	w, env := do(t, r, http.MethodDelete, "/devices/never-existed", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Deleted)
	assert.True(t, *env.Deleted)
}

func TestGetDeviceNotFound(t *testing.T) {
	r, _ := deviceRouter(t)

	w, env := do(t, r, http.MethodGet, "/devices/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 404, env.Error.Code)
}
