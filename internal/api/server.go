package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/openloot/marketplace/internal/audit"
	"github.com/openloot/marketplace/internal/entity"
	"github.com/openloot/marketplace/internal/funds"
	"github.com/openloot/marketplace/internal/market"
	"github.com/openloot/marketplace/internal/registry"
	"github.com/openloot/marketplace/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	engine      market.Engine
	listings    store.ListingStore
	royalties   store.RoyaltyTable
	ledger      funds.Ledger
	avatars     *registry.AvatarRegistry
	accessories *registry.AccessoryRegistry
	audit       audit.Indexer
}

func NewServer(
	engine market.Engine,
	listings store.ListingStore,
	royalties store.RoyaltyTable,
	ledger funds.Ledger,
	avatars *registry.AvatarRegistry,
	accessories *registry.AccessoryRegistry,
	auditIndexer audit.Indexer,
) Server {
	return Server{engine, listings, royalties, ledger, avatars, accessories, auditIndexer}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/listings", s.handleGetListings).Methods("GET")
	r.HandleFunc("/listings", s.handleCreateListing).Methods("POST")
	r.HandleFunc("/listings/{listingId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{listingId}/buy", s.handleBuy).Methods("POST")
	r.HandleFunc("/listings/{listingId}/bids", s.handleBid).Methods("POST")
	r.HandleFunc("/listings/{listingId}/finalize", s.handleFinalize).Methods("POST")
	r.HandleFunc("/royalties/{assetKind}/{assetId}", s.handleGetRoyalty).Methods("GET")
	r.HandleFunc("/royalties/{assetKind}/{assetId}", s.handleSetRoyalty).Methods("PUT")
	r.HandleFunc("/accounts/{account}/deposit", s.handleDeposit).Methods("POST")
	r.HandleFunc("/accounts/{account}/balance", s.handleBalance).Methods("GET")
	r.HandleFunc("/assets/{assetKind}/mint", s.handleMint).Methods("POST")
	r.HandleFunc("/assets/{assetKind}/approve", s.handleApprove).Methods("POST")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "Openloot Marketplace")
}

func (s Server) handleGetListings(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, s.listings.All())
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ListingIdInvalid")
		return
	}

	listing, err := s.listings.Get(listingId)
	if err != nil {
		writeError(w, http.StatusNotFound, "ListingNotFound")
		return
	}

	writeJson(w, http.StatusOK, listing)
}

func (s Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seller    string           `json:"seller"`
		AssetId   uint64           `json:"assetId"`
		AssetKind entity.AssetKind `json:"assetKind"`
		Price     uint64           `json:"price"`
		Currency  string           `json:"currency"`
		Mode      entity.SaleMode  `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}
	if req.Currency == "" {
		req.Currency = "native"
	}

	listingId, err := s.engine.ListItem(req.Seller, req.AssetId, req.AssetKind, req.Price, req.Currency, req.Mode)
	if err != nil {
		s.writeEngineError(w, "ListItem", err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]uint64{"id": listingId})
}

func (s Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ListingIdInvalid")
		return
	}

	var req struct {
		Buyer  string `json:"buyer"`
		Amount uint64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	if err := s.engine.BuyItem(req.Buyer, listingId, req.Amount); err != nil {
		s.writeEngineError(w, "BuyItem", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleBid(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ListingIdInvalid")
		return
	}

	var req struct {
		Bidder string `json:"bidder"`
		Amount uint64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	if err := s.engine.PlaceBid(req.Bidder, listingId, req.Amount); err != nil {
		s.writeEngineError(w, "PlaceBid", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ListingIdInvalid")
		return
	}

	var req struct {
		Caller string `json:"caller"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	if err := s.engine.FinalizeSale(req.Caller, listingId); err != nil {
		s.writeEngineError(w, "FinalizeSale", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleGetRoyalty(w http.ResponseWriter, r *http.Request) {
	kind, assetId, err := getAsset(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "AssetInvalid")
		return
	}

	writeJson(w, http.StatusOK, entity.RoyaltyEntry{
		AssetId:    assetId,
		AssetKind:  kind,
		Percentage: s.royalties.Get(kind, assetId),
	})
}

func (s Server) handleSetRoyalty(w http.ResponseWriter, r *http.Request) {
	kind, assetId, err := getAsset(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "AssetInvalid")
		return
	}

	var req struct {
		Caller     string `json:"caller"`
		Percentage uint   `json:"percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	if err := s.engine.SetRoyalty(req.Caller, kind, assetId, req.Percentage); err != nil {
		s.writeEngineError(w, "SetRoyalty", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	var req struct {
		Amount uint64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	s.ledger.Deposit(account, req.Amount)
	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	writeJson(w, http.StatusOK, map[string]uint64{"balance": s.ledger.Balance(account)})
}

func (s Server) handleMint(w http.ResponseWriter, r *http.Request) {
	kind := entity.AssetKind(mux.Vars(r)["assetKind"])

	var req struct {
		Owner    string `json:"owner"`
		AssetId  uint64 `json:"assetId"`
		Quantity uint64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	var err error
	switch kind {
	case entity.AvatarAsset:
		err = s.avatars.Mint(req.Owner, req.AssetId)
	case entity.AccessoryAsset:
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		err = s.accessories.Mint(req.Owner, req.AssetId, req.Quantity)
	default:
		writeError(w, http.StatusBadRequest, "AssetKindInvalid")
		return
	}

	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	kind := entity.AssetKind(mux.Vars(r)["assetKind"])

	var req struct {
		Holder   string `json:"holder"`
		Operator string `json:"operator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BodyInvalid")
		return
	}

	switch kind {
	case entity.AvatarAsset:
		s.avatars.Approve(req.Holder, req.Operator)
	case entity.AccessoryAsset:
		s.accessories.Approve(req.Holder, req.Operator)
	default:
		writeError(w, http.StatusBadRequest, "AssetKindInvalid")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) writeEngineError(w http.ResponseWriter, operation string, err error) {
	zap.L().With(zap.Error(err), zap.String("operation", operation)).Warn("Marketplace operation rejected")

	var engineErr *market.Error
	if !errors.As(err, &engineErr) {
		writeError(w, http.StatusInternalServerError, "Internal")
		return
	}

	if engineErr.Class == market.TransferRejectedError {
		s.audit.RecordError("api", operation, err, nil)
	}

	writeJson(w, statusFor(engineErr.Class), map[string]string{
		"error": engineErr.Reason,
		"class": string(engineErr.Class),
	})
}

func statusFor(class market.ErrorClass) int {
	switch class {
	case market.ValidationError:
		return http.StatusBadRequest
	case market.AuthorizationError:
		return http.StatusForbidden
	case market.StateConflictError:
		return http.StatusConflict
	case market.TransferRejectedError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func getListingId(r *http.Request) (uint64, error) {
	listingId, ok := mux.Vars(r)["listingId"]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(listingId, 10, 64)
}

func getAsset(r *http.Request) (entity.AssetKind, uint64, error) {
	kind := entity.AssetKind(mux.Vars(r)["assetKind"])
	if kind != entity.AvatarAsset && kind != entity.AccessoryAsset {
		return "", 0, errors.New("invalid asset kind")
	}

	assetId, err := strconv.ParseUint(mux.Vars(r)["assetId"], 10, 64)

	return kind, assetId, err
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJson(w, status, map[string]string{"error": reason})
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
