package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/openloot/marketplace/internal/entity"
	"github.com/openloot/marketplace/internal/funds"
	"github.com/openloot/marketplace/internal/market"
	"github.com/openloot/marketplace/internal/registry"
	"github.com/openloot/marketplace/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAudit struct {
	mu       sync.Mutex
	recorded []string
}

func (s *stubAudit) HandleTrade(msg interface{})   {}
func (s *stubAudit) HandleRoyalty(msg interface{}) {}

func (s *stubAudit) RecordError(component, name string, err error, extra map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorded = append(s.recorded, name)
}

func (s *stubAudit) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.recorded...)
}

type testApi struct {
	router      *mux.Router
	ledger      funds.Ledger
	avatars     *registry.AvatarRegistry
	accessories *registry.AccessoryRegistry
	audit       *stubAudit
}

func newTestApi() *testApi {
	listings := store.NewListingStore()
	royalties := store.NewRoyaltyTable()
	ledger := funds.NewLedger()
	avatars := registry.NewAvatarRegistry()
	accessories := registry.NewAccessoryRegistry()
	engine := market.NewEngine(listings, royalties, ledger, avatars, accessories, "admin", "market.escrow")
	auditStub := &stubAudit{}

	server := NewServer(engine, listings, royalties, ledger, avatars, accessories, auditStub)

	return &testApi{
		router:      server.Router(),
		ledger:      ledger,
		avatars:     avatars,
		accessories: accessories,
		audit:       auditStub,
	}
}

func (a *testApi) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	resp := httptest.NewRecorder()
	a.router.ServeHTTP(resp, req)

	return resp
}

func (a *testApi) seedAvatar(t *testing.T, owner string, assetId uint64) {
	t.Helper()
	require.NoError(t, a.avatars.Mint(owner, assetId))
	a.avatars.Approve(owner, "market.escrow")
}

func decodeJson(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestCreateAndFetchListing(t *testing.T) {
	a := newTestApi()
	a.seedAvatar(t, "seller", 1)

	resp := a.do(t, "POST", "/listings", map[string]interface{}{
		"seller":    "seller",
		"assetId":   1,
		"assetKind": "avatar",
		"price":     100,
		"mode":      "fixed",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var created map[string]uint64
	decodeJson(t, resp, &created)
	assert.Equal(t, uint64(1), created["id"])

	resp = a.do(t, "GET", "/listings/1", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var listing entity.Listing
	decodeJson(t, resp, &listing)
	assert.Equal(t, "seller", listing.Seller)
	assert.Equal(t, entity.ListingActive, listing.Status)

	resp = a.do(t, "GET", "/listings", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var all []entity.Listing
	decodeJson(t, resp, &all)
	assert.Len(t, all, 1)
}

func TestBuyFlowOverHttp(t *testing.T) {
	a := newTestApi()
	a.seedAvatar(t, "seller", 1)

	resp := a.do(t, "POST", "/accounts/buyer/deposit", map[string]interface{}{"amount": 100})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "POST", "/listings", map[string]interface{}{
		"seller": "seller", "assetId": 1, "assetKind": "avatar", "price": 100, "mode": "fixed",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = a.do(t, "POST", "/listings/1/buy", map[string]interface{}{"buyer": "buyer", "amount": 100})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "GET", "/accounts/seller/balance", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var balance map[string]uint64
	decodeJson(t, resp, &balance)
	assert.Equal(t, uint64(100), balance["balance"])

	assert.Equal(t, uint64(1), a.avatars.BalanceOf(1, "buyer"))
}

func TestAuctionFlowOverHttp(t *testing.T) {
	a := newTestApi()
	a.seedAvatar(t, "seller", 1)
	a.ledger.Deposit("alice", 150)

	resp := a.do(t, "POST", "/listings", map[string]interface{}{
		"seller": "seller", "assetId": 1, "assetKind": "avatar", "price": 100, "mode": "auction",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = a.do(t, "POST", "/listings/1/bids", map[string]interface{}{"bidder": "alice", "amount": 150})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "POST", "/listings/1/finalize", map[string]interface{}{"caller": "seller"})
	require.Equal(t, http.StatusNoContent, resp.Code)

	assert.Equal(t, uint64(1), a.avatars.BalanceOf(1, "alice"))
	assert.Equal(t, uint64(150), a.ledger.Balance("seller"))
}

func TestValidationErrorsReturn400(t *testing.T) {
	a := newTestApi()
	a.seedAvatar(t, "seller", 1)

	resp := a.do(t, "POST", "/listings", map[string]interface{}{
		"seller": "seller", "assetId": 1, "assetKind": "avatar", "price": 0, "mode": "fixed",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]string
	decodeJson(t, resp, &body)
	assert.Equal(t, "PriceInvalid", body["error"])
	assert.Equal(t, "validation", body["class"])
}

func TestAuthorizationErrorsReturn403(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "PUT", "/royalties/avatar/1", map[string]interface{}{
		"caller": "mallory", "percentage": 10,
	})
	require.Equal(t, http.StatusForbidden, resp.Code)

	var body map[string]string
	decodeJson(t, resp, &body)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestStateConflictsReturn409(t *testing.T) {
	a := newTestApi()
	a.seedAvatar(t, "seller", 1)
	a.ledger.Deposit("buyer", 200)

	resp := a.do(t, "POST", "/listings", map[string]interface{}{
		"seller": "seller", "assetId": 1, "assetKind": "avatar", "price": 100, "mode": "fixed",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = a.do(t, "POST", "/listings/1/buy", map[string]interface{}{"buyer": "buyer", "amount": 100})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "POST", "/listings/1/buy", map[string]interface{}{"buyer": "buyer", "amount": 100})
	require.Equal(t, http.StatusConflict, resp.Code)

	var body map[string]string
	decodeJson(t, resp, &body)
	assert.Equal(t, "ListingInactive", body["error"])
}

func TestRejectedTransfersReturn422AndAreRecorded(t *testing.T) {
	a := newTestApi()
	// minted but never approved the escrow operator
	require.NoError(t, a.avatars.Mint("seller", 1))

	resp := a.do(t, "POST", "/listings", map[string]interface{}{
		"seller": "seller", "assetId": 1, "assetKind": "avatar", "price": 100, "mode": "fixed",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var body map[string]string
	decodeJson(t, resp, &body)
	assert.Equal(t, "TransferRejected", body["error"])
	assert.Equal(t, []string{"ListItem"}, a.audit.names())
}

func TestRoyaltyRoundTrip(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "PUT", "/royalties/avatar/1", map[string]interface{}{
		"caller": "admin", "percentage": 10,
	})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "GET", "/royalties/avatar/1", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var entry entity.RoyaltyEntry
	decodeJson(t, resp, &entry)
	assert.Equal(t, uint(10), entry.Percentage)
	assert.Equal(t, entity.AvatarAsset, entry.AssetKind)
}

func TestMintAndApproveEndpoints(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "POST", "/assets/avatar/mint", map[string]interface{}{
		"owner": "seller", "assetId": 1,
	})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "POST", "/assets/avatar/approve", map[string]interface{}{
		"holder": "seller", "operator": "market.escrow",
	})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "POST", "/listings", map[string]interface{}{
		"seller": "seller", "assetId": 1, "assetKind": "avatar", "price": 100, "mode": "fixed",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestMintDuplicateAvatarConflicts(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "POST", "/assets/avatar/mint", map[string]interface{}{"owner": "seller", "assetId": 1})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = a.do(t, "POST", "/assets/avatar/mint", map[string]interface{}{"owner": "seller", "assetId": 1})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestGetListingNotFound(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "GET", "/listings/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetListingInvalidId(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "GET", "/listings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRoyaltyUnknownAssetKind(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "GET", "/royalties/weapon/1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApi()

	resp := a.do(t, "GET", "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
