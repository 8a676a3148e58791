package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

type ContractHandler interface {
	ListAcceptedApplicants(w http.ResponseWriter, r *http.Request)
	CreateBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ResubmitBatch(w http.ResponseWriter, r *http.Request)
	ListWorkers(w http.ResponseWriter, r *http.Request)
	TerminateWorker(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)

	// Admin side.
	ListPendingBatches(w http.ResponseWriter, r *http.Request)
	CountPendingBatches(w http.ResponseWriter, r *http.Request)
	AdminGetBatch(w http.ResponseWriter, r *http.Request)
	DecideBatch(w http.ResponseWriter, r *http.Request)
}

type ContractHandlerImpl struct {
	contractService contract.ContractService
	profileService  *profilesvc.ProfileService
}

// ListAcceptedApplicants implements ContractHandler.
func (h *ContractHandlerImpl) ListAcceptedApplicants(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	applicants, err := h.contractService.ListAcceptedApplicants(r.Context(), companyID)
	if err != nil {
		slog.Error("ListAcceptedApplicants service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, applicants)
}

// CreateBatch implements ContractHandler.
func (h *ContractHandlerImpl) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var createReq contract.CreateBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	recruiterID, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	createReq.RecruiterID = recruiterID
	createReq.CompanyID = companyID

	batch, err := h.contractService.CreateBatch(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateBatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Contract batch submitted", "batch_id", batch.ID, "workers", len(batch.Workers))
	response.Created(w, "Contract batch submitted successfully", contract.NewBatchResponse(batch, time.Now()))
}

// ListBatches implements ContractHandler.
func (h *ContractHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var status *contract.BatchStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := contract.BatchStatus(raw)
		status = &s
	}

	batches, err := h.contractService.ListBatches(r.Context(), companyID, status)
	if err != nil {
		slog.Error("ListBatches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	resp := make([]contract.BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, contract.NewBatchResponse(b, now))
	}
	response.Success(w, resp)
}

// GetBatch implements ContractHandler.
func (h *ContractHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	batch, err := h.contractService.GetCompanyBatch(r.Context(), chi.URLParam(r, "id"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.NewBatchResponse(batch, time.Now()))
}

// AdminGetBatch implements ContractHandler.
func (h *ContractHandlerImpl) AdminGetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.contractService.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.NewBatchResponse(batch, time.Now()))
}

// ResubmitBatch implements ContractHandler.
func (h *ContractHandlerImpl) ResubmitBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	recruiterID, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	batch, err := h.contractService.ResubmitBatch(r.Context(), batchID, recruiterID, companyID)
	if err != nil {
		slog.Error("ResubmitBatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Contract batch resubmitted", "batch_id", batch.ID, "source_batch_id", batchID)
	response.Created(w, "Contract batch resubmitted successfully", contract.NewBatchResponse(batch, time.Now()))
}

// ListWorkers implements ContractHandler.
func (h *ContractHandlerImpl) ListWorkers(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	workers, err := h.contractService.ListRegisteredWorkers(r.Context(), companyID)
	if err != nil {
		slog.Error("ListWorkers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	resp := make([]contract.RegisteredWorkerResponse, 0, len(workers))
	for _, worker := range workers {
		resp = append(resp, contract.NewRegisteredWorkerResponse(worker, now))
	}
	response.Success(w, resp)
}

// TerminateWorker implements ContractHandler.
func (h *ContractHandlerImpl) TerminateWorker(w http.ResponseWriter, r *http.Request) {
	var terminateReq contract.TerminateWorkerRequest

	if err := json.NewDecoder(r.Body).Decode(&terminateReq); err != nil {
		slog.Error("TerminateWorker decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	terminateReq.WorkerID = chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	terminateReq.CompanyID = companyID

	worker, err := h.contractService.TerminateWorker(r.Context(), terminateReq)
	if err != nil {
		slog.Error("TerminateWorker service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Worker terminated", "worker_id", worker.ID)
	response.SuccessWithMessage(w, "Worker terminated successfully", contract.NewWorkerResponse(worker, "", time.Now()))
}

// Stats implements ContractHandler.
func (h *ContractHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.contractService.Stats(r.Context(), companyID)
	if err != nil {
		slog.Error("Stats service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract.NewStatsResponse(stats))
}

// ListPendingBatches implements ContractHandler.
func (h *ContractHandlerImpl) ListPendingBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.contractService.ListPendingBatches(r.Context())
	if err != nil {
		slog.Error("ListPendingBatches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	resp := make([]contract.BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, contract.NewBatchResponse(b, now))
	}
	response.Success(w, resp)
}

// CountPendingBatches implements ContractHandler.
func (h *ContractHandlerImpl) CountPendingBatches(w http.ResponseWriter, r *http.Request) {
	count, err := h.contractService.CountPendingBatches(r.Context())
	if err != nil {
		slog.Error("CountPendingBatches service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int{"pending": count})
}

// DecideBatch implements ContractHandler.
func (h *ContractHandlerImpl) DecideBatch(w http.ResponseWriter, r *http.Request) {
	var decideReq contract.DecideBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&decideReq); err != nil {
		slog.Error("DecideBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	decideReq.BatchID = chi.URLParam(r, "id")
	decideReq.AdminID = userIDFromContext(r)

	batch, err := h.contractService.DecideBatch(r.Context(), decideReq)
	if err != nil {
		slog.Error("DecideBatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Contract batch decided", "batch_id", batch.ID, "status", batch.Status)
	response.SuccessWithMessage(w, "Contract batch processed", contract.NewBatchResponse(batch, time.Now()))
}

func NewContractHandler(
	contractService contract.ContractService,
	profileService *profilesvc.ProfileService,
) ContractHandler {
	return &ContractHandlerImpl{
		contractService: contractService,
		profileService:  profileService,
	}
}
