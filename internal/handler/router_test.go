package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"GestorChoferes/internal/handler"
	"GestorChoferes/internal/handler/mocks"
	"GestorChoferes/internal/metrics"
	"GestorChoferes/internal/models"
	"GestorChoferes/internal/notify"
	"GestorChoferes/internal/service"
	"GestorChoferes/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

var roster = []string{"Morris Larrañaga Policarpio", "Saucedo Abad Florencio"}

func newRouter(svc handler.RecordService, opts ...func(*handler.RouterDeps)) *gin.Engine {
	deps := handler.RouterDeps{
		Records: svc,
		Hub:     notify.NewHub(zap.NewNop(), metrics.NewNop()),
		DB:      fakePinger{},
		Metrics: metrics.NewNop().Handler(),
		Roster:  roster,
		Log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(&deps)
	}
	return handler.NewRouter(deps)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"driver_name": "Ana",
	"kind": "entry",
	"destination": "X",
	"errand": "Y",
	"justification": "Z",
	"request_reason": "W",
	"responsible_party": "Boss"
}`

var validInput = models.RecordInput{
	DriverName:       "Ana",
	Kind:             "entry",
	Destination:      "X",
	Errand:           "Y",
	Justification:    "Z",
	RequestReason:    "W",
	ResponsibleParty: "Boss",
}

func TestRecordHandler_Routes(t *testing.T) {
	storageErr := &storage.StorageError{Op: "list", Err: errors.New("connection refused")}

	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		setupMocks   func(svc *mocks.MockRecordService)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "create - success",
			method: http.MethodPost,
			path:   "/registros/",
			body:   validBody,
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().CreateRecord(gomock.Any(), validInput).
					Return(service.CreateResult{ID: 1, Message: service.MsgCreated}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"message":"Registro creado exitosamente"}`,
		},
		{
			name:         "create - malformed json",
			method:       http.MethodPost,
			path:         "/registros/",
			body:         `{"driver_name":`,
			setupMocks:   func(svc *mocks.MockRecordService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Cuerpo de la solicitud inválido"}`,
		},
		{
			name:   "create - validation error",
			method: http.MethodPost,
			path:   "/registros/",
			body:   `{"kind":"entry"}`,
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().CreateRecord(gomock.Any(), models.RecordInput{Kind: "entry"}).
					Return(service.CreateResult{}, &service.ValidationError{Field: "driver_name", Reason: "is required"})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"driver_name: is required"}`,
		},
		{
			name:   "create - storage error",
			method: http.MethodPost,
			path:   "/registros/",
			body:   validBody,
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
					Return(service.CreateResult{}, &storage.StorageError{Op: "create", Err: errors.New("disk I/O error")})
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Error al acceder a la base de datos"}`,
		},
		{
			name:   "list - empty store",
			method: http.MethodGet,
			path:   "/registros/",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().ListRecords(gomock.Any()).Return([]models.Record{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:   "list - storage error",
			method: http.MethodGet,
			path:   "/registros/",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().ListRecords(gomock.Any()).Return(nil, storageErr)
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Error al acceder a la base de datos"}`,
		},
		{
			name:   "get - found",
			method: http.MethodGet,
			path:   "/registros/1",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().GetRecord(gomock.Any(), int64(1)).Return(models.Record{ID: 1, DriverName: "Ana"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"driver_name":"Ana","kind":"","destination":"","errand":"","justification":"","request_reason":"","responsible_party":"","event_timestamp":"","recorded_at":""}`,
		},
		{
			name:   "get - not found",
			method: http.MethodGet,
			path:   "/registros/999",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().GetRecord(gomock.Any(), int64(999)).Return(models.Record{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
		{
			name:         "get - non numeric id",
			method:       http.MethodGet,
			path:         "/registros/abc",
			setupMocks:   func(svc *mocks.MockRecordService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ID de registro inválido"}`,
		},
		{
			name:   "get - zero id is looked up",
			method: http.MethodGet,
			path:   "/registros/0",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().GetRecord(gomock.Any(), int64(0)).Return(models.Record{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
		{
			name:   "get - negative id is looked up",
			method: http.MethodGet,
			path:   "/registros/-1",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().GetRecord(gomock.Any(), int64(-1)).Return(models.Record{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
		{
			name:         "get - id out of range",
			method:       http.MethodGet,
			path:         "/registros/99999999999999999999",
			setupMocks:   func(svc *mocks.MockRecordService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ID de registro inválido"}`,
		},
		{
			name:   "update - success",
			method: http.MethodPut,
			path:   "/registros/3",
			body:   validBody,
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().UpdateRecord(gomock.Any(), int64(3), validInput).
					Return(service.MessageResult{Message: service.MsgUpdated}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Registro actualizado exitosamente"}`,
		},
		{
			name:   "update - not found",
			method: http.MethodPut,
			path:   "/registros/3",
			body:   validBody,
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().UpdateRecord(gomock.Any(), int64(3), gomock.Any()).
					Return(service.MessageResult{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
		{
			name:   "update - zero id",
			method: http.MethodPut,
			path:   "/registros/0",
			body:   validBody,
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().UpdateRecord(gomock.Any(), int64(0), validInput).
					Return(service.MessageResult{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
		{
			name:         "update - bad id is checked before the body",
			method:       http.MethodPut,
			path:         "/registros/x",
			body:         `not json`,
			setupMocks:   func(svc *mocks.MockRecordService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ID de registro inválido"}`,
		},
		{
			name:   "delete - success",
			method: http.MethodDelete,
			path:   "/registros/4",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().DeleteRecord(gomock.Any(), int64(4)).
					Return(service.MessageResult{Message: service.MsgDeleted}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Registro eliminado exitosamente"}`,
		},
		{
			name:   "delete - not found",
			method: http.MethodDelete,
			path:   "/registros/4",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().DeleteRecord(gomock.Any(), int64(4)).
					Return(service.MessageResult{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
		{
			name:   "delete - negative id",
			method: http.MethodDelete,
			path:   "/registros/-1",
			setupMocks: func(svc *mocks.MockRecordService) {
				svc.EXPECT().DeleteRecord(gomock.Any(), int64(-1)).
					Return(service.MessageResult{}, storage.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Registro no encontrado"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mocks.NewMockRecordService(ctrl)
			tt.setupMocks(svc)

			w := do(newRouter(svc), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRouter_RateLimitsMutationsOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockRecordService(ctrl)
	svc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		Return(service.CreateResult{ID: 1, Message: service.MsgCreated}, nil).Times(1)
	svc.EXPECT().ListRecords(gomock.Any()).Return([]models.Record{}, nil).Times(3)

	r := newRouter(svc, func(d *handler.RouterDeps) {
		d.RateLimit = 0.001
		d.RateBurst = 1
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/registros/", validBody).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/registros/", validBody).Code)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/registros/", "").Code)
	}
}

func TestRouter_RateLimitIsPerRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockRecordService(ctrl)
	svc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		Return(service.CreateResult{ID: 1, Message: service.MsgCreated}, nil).Times(3)

	first := newRouter(svc, func(d *handler.RouterDeps) {
		d.RateLimit = 0.001
		d.RateBurst = 1
	})
	second := newRouter(svc, func(d *handler.RouterDeps) {
		d.RateLimit = 0.001
		d.RateBurst = 2
	})

	assert.Equal(t, http.StatusOK, do(first, http.MethodPost, "/registros/", validBody).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(first, http.MethodPost, "/registros/", validBody).Code)

	assert.Equal(t, http.StatusOK, do(second, http.MethodPost, "/registros/", validBody).Code)
	assert.Equal(t, http.StatusOK, do(second, http.MethodPost, "/registros/", validBody).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(second, http.MethodPost, "/registros/", validBody).Code)
}

func TestRecordHandler_StorageErrorLoggedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockRecordService(ctrl)
	svc.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		Return(service.CreateResult{}, &storage.StorageError{Op: "create", Err: errors.New("disk I/O error")})

	core, logs := observer.New(zap.ErrorLevel)
	r := newRouter(svc, func(d *handler.RouterDeps) {
		d.Log = zap.New(core)
	})

	w := do(r, http.MethodPost, "/registros/", validBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	failed := logs.FilterMessage("RecordHandler: request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "/registros/", failed[0].ContextMap()["path"])
}

func TestPageHandler(t *testing.T) {
	r := newRouter(nil)

	t.Run("index renders the roster", func(t *testing.T) {
		w := do(r, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Saucedo Abad Florencio")
	})

	t.Run("roster as json", func(t *testing.T) {
		w := do(r, http.MethodGet, "/choferes", "")
		assert.Equal(t, http.StatusOK, w.Code)
		var got []string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, roster, got)
	})

	t.Run("health ok", func(t *testing.T) {
		w := do(r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("static assets", func(t *testing.T) {
		w := do(r, http.MethodGet, "/static/js/script.js", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := do(r, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("swagger document", func(t *testing.T) {
		w := do(r, http.MethodGet, "/swagger/doc.json", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Gestor de choferes")
	})

	t.Run("request id echoed", func(t *testing.T) {
		w := do(r, http.MethodGet, "/health", "")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestPageHandler_HealthDatabaseDown(t *testing.T) {
	r := newRouter(nil, func(d *handler.RouterDeps) {
		d.DB = fakePinger{err: errors.New("connection refused")}
	})

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"connection refused"}`, w.Body.String())
}

func TestEventsHandler_StreamsMutations(t *testing.T) {
	hub := notify.NewHub(zap.NewNop(), metrics.NewNop())
	srv := httptest.NewServer(newRouter(nil, func(d *handler.RouterDeps) { d.Hub = hub }))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/registros", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, hub.AfterCommit(context.Background(), models.Mutation{Action: models.ActionUpdated, RecordID: 7}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev notify.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, models.ActionUpdated, ev.Action)
	assert.Equal(t, int64(7), ev.ID)
}
