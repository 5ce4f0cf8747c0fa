package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/wassalha/wassalha/internal/domain/errors"
	"github.com/wassalha/wassalha/internal/domain/model"
	"github.com/wassalha/wassalha/internal/server/http/dto"
	"github.com/wassalha/wassalha/internal/server/http/middleware"
	testhelpers "github.com/wassalha/wassalha/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterScenarioMatchesE2E(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	authHeader := resp.Header().Get("Authorization")
	if authHeader != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected auth cookie to be set")
	}
	foundCookie := false
	for _, cookie := range cookies {
		if cookie.Name == "wassalha_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named wassalha_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestRequestHandlerCreate(t *testing.T) {
	body := []byte(`{"goodsName":"Console","quantity":1,"origin":"Paris","destination":"Tunis"}`)
	facade := testhelpers.RequestFacadeStub{CreateFn: func(ctx context.Context, userID int64, goodsName string, quantity int, origin, destination string) (*model.Request, error) {
		if userID != 1 || goodsName != "Console" || origin != "Paris" {
			t.Fatalf("unexpected arguments: %d %q %q", userID, goodsName, origin)
		}
		return &model.Request{ID: 9, UserID: userID, GoodsName: goodsName, Quantity: quantity, Origin: origin, Destination: destination, Status: model.RequestStatusPending}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/requests", "/requests", NewRequestHandler(facade).Create, asUser(1), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var decoded struct {
		Data dto.RequestResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Data.ID != 9 || decoded.Data.Status != "PENDING" {
		t.Fatalf("unexpected response: %+v", decoded.Data)
	}
}

func TestRequestHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.RequestFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "missing field", body: []byte(`{"goodsName":""}`), facade: testhelpers.RequestFacadeStub{CreateFn: func(context.Context, int64, string, int, string, string) (*model.Request, error) {
			return nil, domainErrors.ErrMissingField
		}}, status: http.StatusBadRequest},
		{name: "internal", body: []byte(`{"goodsName":"x","quantity":1}`), facade: testhelpers.RequestFacadeStub{CreateFn: func(context.Context, int64, string, int, string, string) (*model.Request, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/requests", "/requests", NewRequestHandler(tt.facade).Create, asUser(1), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestRequestHandlerListOfferable(t *testing.T) {
	facade := testhelpers.RequestFacadeStub{OfferableFn: func(context.Context) ([]model.Request, error) {
		return []model.Request{{ID: 1, Status: model.RequestStatusPending}, {ID: 2, Status: model.RequestStatusPending}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/requests", "/requests", NewRequestHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded struct {
		Data []dto.RequestResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Data) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(decoded.Data))
	}
}

func TestOfferHandlerAcceptRunsTheSaga(t *testing.T) {
	facade := testhelpers.OfferFacadeStub{AcceptFn: func(ctx context.Context, userID, offerID int64) (*model.Order, error) {
		if userID != 3 || offerID != 5 {
			t.Fatalf("unexpected arguments: %d %d", userID, offerID)
		}
		return &model.Order{ID: 101, OfferID: offerID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusOnHold}, nil
	}}
	body := []byte(`{"status":"ACCEPTED"}`)
	resp := performRequest(t, http.MethodPatch, "/offers/:id/status", "/offers/5/status", NewOfferHandler(facade).UpdateStatus, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded struct {
		Data dto.OrderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Data.ID != 101 || decoded.Data.PaymentStatus != "ON_HOLD" {
		t.Fatalf("unexpected order: %+v", decoded.Data)
	}
}

func TestOfferHandlerAcceptPartialFailureIsDistinguishable(t *testing.T) {
	facade := testhelpers.OfferFacadeStub{AcceptFn: func(context.Context, int64, int64) (*model.Order, error) {
		return nil, &domainErrors.OfferAcceptIncompleteError{OfferID: 5, OrderID: 101, Err: errors.New("patch failed")}
	}}
	body := []byte(`{"status":"ACCEPTED"}`)
	resp := performRequest(t, http.MethodPatch, "/offers/:id/status", "/offers/5/status", NewOfferHandler(facade).UpdateStatus, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	var decoded dto.StatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Success {
		t.Fatal("expected success=false")
	}
	if decoded.Message == "" {
		t.Fatal("expected a recovery message")
	}
	raw, _ := json.Marshal(decoded.Data)
	var data dto.AcceptIncompleteResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.OrderID != 101 {
		t.Fatalf("expected created order id 101, got %d", data.OrderID)
	}
}

func TestOfferHandlerStatusMatrix(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		facade testhelpers.OfferFacadeStub
		status int
	}{
		{name: "reject", body: []byte(`{"status":"REJECTED"}`), status: http.StatusOK},
		{name: "withdraw", body: []byte(`{"status":"CANCELLED"}`), status: http.StatusOK},
		{name: "unknown status", body: []byte(`{"status":"WAT"}`), status: http.StatusBadRequest},
		{name: "not pending", body: []byte(`{"status":"REJECTED"}`), facade: testhelpers.OfferFacadeStub{RejectFn: func(context.Context, int64, int64) error {
			return domainErrors.ErrOfferNotPending
		}}, status: http.StatusConflict},
		{name: "foreign offer", body: []byte(`{"status":"CANCELLED"}`), facade: testhelpers.OfferFacadeStub{WithdrawFn: func(context.Context, int64, int64) error {
			return domainErrors.ErrNotAuthorized
		}}, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPatch, "/offers/:id/status", "/offers/5/status", NewOfferHandler(tt.facade).UpdateStatus, asUser(3), tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOfferHandlerRetryAccept(t *testing.T) {
	facade := testhelpers.OfferFacadeStub{RetryFn: func(ctx context.Context, userID, offerID, orderID int64) (*model.Order, error) {
		if offerID != 5 || orderID != 101 {
			t.Fatalf("unexpected arguments: %d %d", offerID, orderID)
		}
		return &model.Order{ID: orderID, OfferID: offerID}, nil
	}}
	body := []byte(`{"orderId":101}`)
	resp := performRequest(t, http.MethodPost, "/offers/:id/accept/retry", "/offers/5/accept/retry", NewOfferHandler(facade).RetryAccept, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestOrderHandlerCreateAcceptsTheOffer(t *testing.T) {
	var accepted int64
	offers := testhelpers.OfferFacadeStub{AcceptFn: func(ctx context.Context, userID, offerID int64) (*model.Order, error) {
		accepted = offerID
		return &model.Order{ID: 101, OfferID: offerID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusOnHold}, nil
	}}
	body := []byte(`{"offerId":5,"requestId":2,"travelerId":3,"price":20,"orderStatus":"PENDING","paymentStatus":"ON_HOLD"}`)
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(offers, testhelpers.ProcessFacadeStub{}).Create, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if accepted != 5 {
		t.Fatalf("expected offer 5 accepted, got %d", accepted)
	}

	var decoded struct {
		Data dto.OrderResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Data.ID != 101 {
		t.Fatalf("expected order id 101, got %d", decoded.Data.ID)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	process := testhelpers.ProcessFacadeStub{AdvanceFn: func(ctx context.Context, userID, orderID int64, status model.ProcessStatus, note string) (*model.GoodsProcess, error) {
		if orderID != 7 || status != model.ProcessStatusPaid {
			t.Fatalf("unexpected arguments: %d %v", orderID, status)
		}
		return &model.GoodsProcess{ID: 1, OrderID: orderID, Status: status}, nil
	}}
	body := []byte(`{"status":"PAID","userId":3}`)
	resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/7/status", NewOrderHandler(testhelpers.OfferFacadeStub{}, process).UpdateStatus, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatusFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "wrong user", err: domainErrors.ErrNotAuthorized, status: http.StatusForbidden},
		{name: "terminal", err: domainErrors.ErrTerminalStatus, status: http.StatusConflict},
		{name: "skipping ahead", err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "capture declined", err: domainErrors.ErrPaymentDeclined, status: http.StatusPaymentRequired},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			process := testhelpers.ProcessFacadeStub{AdvanceFn: func(context.Context, int64, int64, model.ProcessStatus, string) (*model.GoodsProcess, error) {
				return nil, tt.err
			}}
			body := []byte(`{"status":"PAID"}`)
			resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/7/status", NewOrderHandler(testhelpers.OfferFacadeStub{}, process).UpdateStatus, asUser(3), body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestProcessHandlerGetIncludesAuditTrail(t *testing.T) {
	facade := testhelpers.ProcessFacadeStub{GetFn: func(ctx context.Context, id int64) (*model.GoodsProcess, error) {
		return &model.GoodsProcess{ID: id, OrderID: 7, Status: model.ProcessStatusPaid, Events: []model.ProcessEvent{
			{FromStatus: model.ProcessStatusConfirmed, ToStatus: model.ProcessStatusPaid, ChangedByUserID: 3},
		}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/process/:id", "/process/4", NewProcessHandler(facade).Get, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded struct {
		Data dto.ProcessResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Data.Events) != 1 || decoded.Data.Events[0].ToStatus != "PAID" {
		t.Fatalf("unexpected events: %+v", decoded.Data.Events)
	}
}

func TestProcessHandlerRoute(t *testing.T) {
	facade := testhelpers.ProcessFacadeStub{RouteFn: func(ctx context.Context, userID, processID int64) (model.Route, error) {
		return model.RoutePaymentConfirmation, nil
	}}
	resp := performRequest(t, http.MethodGet, "/process/:id/route", "/process/4/route", NewProcessHandler(facade).Route, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded struct {
		Data dto.RouteResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Data.Route != string(model.RoutePaymentConfirmation) {
		t.Fatalf("unexpected route %q", decoded.Data.Route)
	}
}

func TestSponsorshipHandlerInitiate(t *testing.T) {
	facade := testhelpers.SponsorshipFacadeStub{InitiateFn: func(ctx context.Context, buyerID, sponsorshipID int64) (*model.SponsorshipProcess, int64, error) {
		if buyerID != 3 || sponsorshipID != 2 {
			t.Fatalf("unexpected arguments: %d %d", buyerID, sponsorshipID)
		}
		return &model.SponsorshipProcess{ID: 8, SponsorshipID: sponsorshipID, BuyerID: buyerID, Status: model.SponsorshipStatusInitialized}, 11, nil
	}}
	body := []byte(`{"sponsorshipId":2,"buyerId":3}`)
	resp := performRequest(t, http.MethodPost, "/sponsorship-process/initiate", "/sponsorship-process/initiate", NewSponsorshipHandler(facade).Initiate, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var decoded dto.StatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !decoded.Success {
		t.Fatal("expected success envelope")
	}
	raw, _ := json.Marshal(decoded.Data)
	var data dto.InitiatedSponsorshipResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.ID != 8 || data.SponsorID != 11 {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestSponsorshipHandlerInitiateRecipientAlias(t *testing.T) {
	var gotBuyer int64
	facade := testhelpers.SponsorshipFacadeStub{InitiateFn: func(ctx context.Context, buyerID, sponsorshipID int64) (*model.SponsorshipProcess, int64, error) {
		gotBuyer = buyerID
		return &model.SponsorshipProcess{ID: 1}, 1, nil
	}}
	body := []byte(`{"sponsorshipId":2,"recipientId":9}`)
	resp := performRequest(t, http.MethodPost, "/sponsorship-process/initiate", "/sponsorship-process/initiate", NewSponsorshipHandler(facade).Initiate, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotBuyer != 9 {
		t.Fatalf("expected recipientId used as buyer, got %d", gotBuyer)
	}
}

func TestSponsorshipHandlerUpdateStatusFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "sponsor only", err: domainErrors.ErrNotAuthorized, status: http.StatusForbidden},
		{name: "bad transition", err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "terminal", err: domainErrors.ErrTerminalStatus, status: http.StatusConflict},
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.SponsorshipFacadeStub{UpdateStatusFn: func(context.Context, int64, int64, model.SponsorshipStatus) (*model.SponsorshipProcess, error) {
				return nil, tt.err
			}}
			body := []byte(`{"status":"ACCEPTED"}`)
			resp := performRequest(t, http.MethodPatch, "/sponsorship-process/:id/status", "/sponsorship-process/4/status", NewSponsorshipHandler(facade).UpdateStatus, asUser(3), body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			var decoded dto.StatusResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if decoded.Success || decoded.Message == "" {
				t.Fatalf("expected failure envelope, got %+v", decoded)
			}
		})
	}
}

func TestSponsorshipHandlerVerify(t *testing.T) {
	var gotImage string
	facade := testhelpers.SponsorshipFacadeStub{VerifyFn: func(ctx context.Context, userID, processID int64, image string) (*model.SponsorshipProcess, error) {
		if processID != 4 {
			t.Fatalf("unexpected process id %d", processID)
		}
		gotImage = image
		return &model.SponsorshipProcess{ID: processID, Status: model.SponsorshipStatusDelivered}, nil
	}}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("processId", "4")
	part, _ := writer.CreateFormFile("file", "proof.jpg")
	_, _ = part.Write([]byte("jpeg-bytes"))
	_ = writer.Close()

	resp := performRequest(t, http.MethodPost, "/sponsorship-process/verify", "/sponsorship-process/verify", NewSponsorshipHandler(facade).Verify, asUser(3), buf.Bytes(), map[string]string{"Content-Type": writer.FormDataContentType()})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotImage != "proof.jpg" {
		t.Fatalf("expected stored file reference, got %q", gotImage)
	}
}

func TestSponsorshipHandlerVerifyMissingFile(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("processId", "4")
	_ = writer.Close()

	resp := performRequest(t, http.MethodPost, "/sponsorship-process/verify", "/sponsorship-process/verify", NewSponsorshipHandler(testhelpers.SponsorshipFacadeStub{}).Verify, asUser(3), buf.Bytes(), map[string]string{"Content-Type": writer.FormDataContentType()})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestPickupHandlerScanMatrix(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.PickupFacadeStub
		status int
	}{
		{name: "success", status: http.StatusOK},
		{name: "malformed", facade: testhelpers.PickupFacadeStub{ScanFn: func(context.Context, int64, []byte) (*model.Pickup, error) {
			return nil, domainErrors.ErrMalformedQRPayload
		}}, status: http.StatusBadRequest},
		{name: "unknown pickup", facade: testhelpers.PickupFacadeStub{ScanFn: func(context.Context, int64, []byte) (*model.Pickup, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "not a party", facade: testhelpers.PickupFacadeStub{ScanFn: func(context.Context, int64, []byte) (*model.Pickup, error) {
			return nil, domainErrors.ErrNotAuthorized
		}}, status: http.StatusForbidden},
		{name: "order mismatch", facade: testhelpers.PickupFacadeStub{ScanFn: func(context.Context, int64, []byte) (*model.Pickup, error) {
			return nil, domainErrors.ErrPickupMismatch
		}}, status: http.StatusConflict},
		{name: "already completed", facade: testhelpers.PickupFacadeStub{ScanFn: func(context.Context, int64, []byte) (*model.Pickup, error) {
			return nil, domainErrors.ErrPickupCompleted
		}}, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"payload":"{\"pickupNumber\":5,\"orderNumber\":9}"}`)
			resp := performRequest(t, http.MethodPost, "/pickup/scan", "/pickup/scan", NewPickupHandler(tt.facade).Scan, asUser(3), body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status != http.StatusOK {
				var decoded dto.StatusResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if decoded.Success || decoded.Message == "" {
					t.Fatalf("expected specific failure message, got %+v", decoded)
				}
			}
		})
	}
}

func TestPickupHandlerUpdateStatus(t *testing.T) {
	facade := testhelpers.PickupFacadeStub{UpdateStatusFn: func(ctx context.Context, userID, pickupID int64, status model.PickupStatus) (*model.Pickup, error) {
		if userID != 3 || pickupID != 5 || status != model.PickupStatusCancelled {
			t.Fatalf("unexpected arguments: %d %d %v", userID, pickupID, status)
		}
		return &model.Pickup{ID: pickupID, Status: status}, nil
	}}
	body := []byte(`{"pickupId":5,"newStatus":"CANCELLED"}`)
	resp := performRequest(t, http.MethodPut, "/pickup/status", "/pickup/status", NewPickupHandler(facade).UpdateStatus, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestPickupHandlerUpdateStatusForbiddenForStrangers(t *testing.T) {
	facade := testhelpers.PickupFacadeStub{UpdateStatusFn: func(context.Context, int64, int64, model.PickupStatus) (*model.Pickup, error) {
		return nil, domainErrors.ErrNotAuthorized
	}}
	body := []byte(`{"pickupId":5,"newStatus":"CANCELLED"}`)
	resp := performRequest(t, http.MethodPut, "/pickup/status", "/pickup/status", NewPickupHandler(facade).UpdateStatus, asUser(99), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestPickupHandlerSchedulePassesAuthenticatedUser(t *testing.T) {
	facade := testhelpers.PickupFacadeStub{ScheduleFn: func(_ context.Context, userID, orderID int64, location string, _ time.Time) (*model.Pickup, error) {
		if userID != 3 || orderID != 9 || location != "airport arrivals" {
			t.Fatalf("unexpected arguments: %d %d %q", userID, orderID, location)
		}
		return &model.Pickup{ID: 1, OrderID: orderID, Location: location, Status: model.PickupStatusScheduled}, nil
	}}
	body := []byte(`{"orderId":9,"location":"airport arrivals","scheduledAt":"2026-09-01T10:00:00Z"}`)
	resp := performRequest(t, http.MethodPost, "/pickup", "/pickup", NewPickupHandler(facade).Schedule, asUser(3), body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestNotificationHandlerList(t *testing.T) {
	facade := testhelpers.NotificationFacadeStub{ListFn: func(ctx context.Context, userID int64) ([]model.Notification, error) {
		return []model.Notification{{ID: 1, UserID: userID, Type: model.EventOfferMade, Title: "New offer"}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/notifications", "/notifications", NewNotificationHandler(facade).List, asUser(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded struct {
		Data []dto.NotificationResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Data) != 1 || decoded.Data[0].Title != "New offer" {
		t.Fatalf("unexpected notifications: %+v", decoded.Data)
	}
}

func TestNotificationHandlerMarkRead(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.NotificationFacadeStub
		path   string
		status int
	}{
		{name: "success", path: "/notifications/4/read", status: http.StatusOK},
		{name: "bad id", path: "/notifications/abc/read", status: http.StatusBadRequest},
		{name: "foreign notification", path: "/notifications/4/read", facade: testhelpers.NotificationFacadeStub{MarkReadFn: func(context.Context, int64, int64) error {
			return domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPatch, "/notifications/:id/read", tt.path, NewNotificationHandler(tt.facade).MarkRead, asUser(3), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}
