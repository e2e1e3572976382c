package leave

import (
	"strings"
	"testing"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	longNotes := strings.Repeat("x", 2001)
	endBefore := "2025-06-01"
	endBad := "06/05/2025"
	endOK := "2025-06-05"

	tests := []struct {
		name      string
		req       CreateLeaveRequestRequest
		wantField string
	}{
		{
			name: "valid single day",
			req:  CreateLeaveRequestRequest{Type: "PTO", Date: "2025-06-02"},
		},
		{
			name: "valid range",
			req:  CreateLeaveRequestRequest{Type: "TRAVEL", Date: "2025-06-02", EndDate: &endOK},
		},
		{
			name:      "missing type",
			req:       CreateLeaveRequestRequest{Date: "2025-06-02"},
			wantField: "type",
		},
		{
			name:      "unknown type",
			req:       CreateLeaveRequestRequest{Type: "VACATION", Date: "2025-06-02"},
			wantField: "type",
		},
		{
			name:      "missing date",
			req:       CreateLeaveRequestRequest{Type: "PTO"},
			wantField: "date",
		},
		{
			name:      "malformed date",
			req:       CreateLeaveRequestRequest{Type: "PTO", Date: "02-06-2025"},
			wantField: "date",
		},
		{
			name:      "malformed end date",
			req:       CreateLeaveRequestRequest{Type: "PTO", Date: "2025-06-02", EndDate: &endBad},
			wantField: "end_date",
		},
		{
			name:      "end date before start",
			req:       CreateLeaveRequestRequest{Type: "PTO", Date: "2025-06-02", EndDate: &endBefore},
			wantField: "end_date",
		},
		{
			name:      "notes too long",
			req:       CreateLeaveRequestRequest{Type: "PTO", Date: "2025-06-02", Notes: &longNotes},
			wantField: "notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.wantField)
		})
	}
}

func TestDeleteLeaveFilter_Validate(t *testing.T) {
	id := "0197dfa2-1111-7abc-8def-123456789abc"
	badID := "leave-42"
	goodDate := "2025-06-02"
	badDate := "yesterday"

	assert.Error(t, (&DeleteLeaveFilter{}).Validate())
	assert.NoError(t, (&DeleteLeaveFilter{ID: &id}).Validate())
	assert.Error(t, (&DeleteLeaveFilter{ID: &badID}).Validate())
	assert.NoError(t, (&DeleteLeaveFilter{Date: &goodDate}).Validate())
	assert.Error(t, (&DeleteLeaveFilter{Date: &badDate}).Validate())
}

func TestSummarize(t *testing.T) {
	leaves := []LeaveRequest{
		{Type: LeaveTypePTO},
		{Type: LeaveTypePTO},
		{Type: LeaveTypeSick},
	}

	summary := Summarize(leaves)

	assert.Equal(t, 3, summary.TotalDays)
	assert.Equal(t, 2, summary.ByType[LeaveTypePTO])
	assert.Equal(t, 1, summary.ByType[LeaveTypeSick])
}

func TestToLeaveRequestResponse(t *testing.T) {
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	row := LeaveRequest{
		ID:      "leave-1",
		UserID:  "user-1",
		Type:    LeaveTypePTO,
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate: &end,
		Status:  LeaveRequestStatusApproved,
	}

	resp := ToLeaveRequestResponse(row)

	assert.Equal(t, "2025-06-02", resp.Date)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2025-06-05", *resp.EndDate)
	assert.Equal(t, "approved", resp.Status)
}
