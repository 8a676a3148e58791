package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkerEmploymentStatus(t *testing.T) {
	now := date("2025-01-01")

	t.Run("past end date derives completed", func(t *testing.T) {
		w := Worker{EndDate: date("2024-01-01")}
		assert.Equal(t, EmploymentCompleted, w.EmploymentStatus(now))
	})

	t.Run("termination wins over any end date", func(t *testing.T) {
		terminatedAt := date("2024-06-01")
		future := Worker{EndDate: date("2099-01-01"), TerminatedAt: &terminatedAt}
		past := Worker{EndDate: date("2024-01-01"), TerminatedAt: &terminatedAt}
		assert.Equal(t, EmploymentTerminated, future.EmploymentStatus(now))
		assert.Equal(t, EmploymentTerminated, past.EmploymentStatus(now))
	})

	t.Run("running contract is active", func(t *testing.T) {
		w := Worker{EndDate: date("2099-01-01")}
		assert.Equal(t, EmploymentActive, w.EmploymentStatus(now))
	})

	t.Run("end date equal to now is not yet completed", func(t *testing.T) {
		w := Worker{EndDate: now}
		assert.Equal(t, EmploymentActive, w.EmploymentStatus(now))
	})
}

func TestCreateBatchRequestValidate(t *testing.T) {
	validEntry := WorkerEntry{
		ApplicationID: "app-1",
		JobseekerID:   "js-1",
		JobTitle:      "Operator Produksi",
		StartDate:     "2025-01-01",
		EndDate:       "2025-12-31",
		Salary:        5000000,
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := CreateBatchRequest{Workers: []WorkerEntry{validEntry}}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty worker list fails", func(t *testing.T) {
		req := CreateBatchRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("missing dates fail", func(t *testing.T) {
		entry := validEntry
		entry.StartDate = ""
		req := CreateBatchRequest{Workers: []WorkerEntry{entry}}
		assert.Error(t, req.Validate())
	})

	t.Run("end before start fails", func(t *testing.T) {
		entry := validEntry
		entry.StartDate = "2025-12-31"
		entry.EndDate = "2025-01-01"
		req := CreateBatchRequest{Workers: []WorkerEntry{entry}}
		assert.Error(t, req.Validate())
	})

	t.Run("single day contract passes", func(t *testing.T) {
		entry := validEntry
		entry.StartDate = "2025-06-01"
		entry.EndDate = "2025-06-01"
		req := CreateBatchRequest{Workers: []WorkerEntry{entry}}
		assert.NoError(t, req.Validate())
	})

	t.Run("non-positive salary fails", func(t *testing.T) {
		for _, salary := range []int64{0, -1} {
			entry := validEntry
			entry.Salary = salary
			req := CreateBatchRequest{Workers: []WorkerEntry{entry}}
			assert.Error(t, req.Validate())
		}
	})

	t.Run("one bad entry fails the whole batch", func(t *testing.T) {
		bad := validEntry
		bad.Salary = 0
		req := CreateBatchRequest{Workers: []WorkerEntry{validEntry, bad}}
		assert.Error(t, req.Validate())
	})
}

func TestDecideBatchRequestValidate(t *testing.T) {
	t.Run("approve without notes passes", func(t *testing.T) {
		req := DecideBatchRequest{Decision: DecisionApprove}
		assert.NoError(t, req.Validate())
	})

	t.Run("reject requires notes", func(t *testing.T) {
		req := DecideBatchRequest{Decision: DecisionReject}
		assert.Error(t, req.Validate())

		req.AdminNotes = "   "
		assert.Error(t, req.Validate())

		req.AdminNotes = "incomplete documents"
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown decision fails", func(t *testing.T) {
		req := DecideBatchRequest{Decision: "MAYBE"}
		assert.Error(t, req.Validate())
	})
}
