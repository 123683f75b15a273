package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/crewtrack/crewtrack-backend-go/internal/domain/document"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/shift"
	"github.com/crewtrack/crewtrack-backend-go/internal/domain/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func testRenderInput(t *testing.T) document.RenderInput {
	t.Helper()

	img, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)

	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 14, 17, 0, 0, 0, time.UTC)
	clockOut1 := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	clockIn2 := time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC)

	jobName := "Warehouse Setup"
	clientName := "Acme Events"
	employeeName := "Jordan Reyes"

	return document.RenderInput{
		OrgName:     "CrewTrack Staffing",
		TimesheetID: "123e4567-e89b-12d3-a456-426614174000",
		Shift: shift.Shift{
			ID:         "223e4567-e89b-12d3-a456-426614174000",
			Date:       date,
			StartTime:  start,
			EndTime:    end,
			Status:     shift.StatusInProgress,
			JobName:    &jobName,
			ClientName: &clientName,
		},
		Personnel: []shift.AssignedPersonnel{
			{
				EmployeeID:   "323e4567-e89b-12d3-a456-426614174000",
				RoleCode:     "SH",
				EmployeeName: &employeeName,
				TimeEntries: []shift.TimeEntry{
					{EntryNumber: 1, ClockIn: start, ClockOut: &clockOut1},
					{EntryNumber: 2, ClockIn: clockIn2, ClockOut: &end},
				},
			},
		},
		ClientSignature: signature.Attestation{
			ApprovalType: signature.ApprovalTypeClient,
			ActorID:      "client-user",
			ActorRole:    "client",
			Image:        img,
			ContentType:  "image/png",
			CapturedAt:   time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		},
		ManagerSignature: signature.Attestation{
			ApprovalType: signature.ApprovalTypeManager,
			ActorID:      "manager-user",
			ActorRole:    "manager",
			Image:        img,
			ContentType:  "image/png",
			CapturedAt:   time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	renderer := NewMarotoRenderer()
	in := testRenderInput(t)

	first, err := renderer.Render(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// wait so a wall-clock creation date would differ between renders
	time.Sleep(1100 * time.Millisecond)

	second, err := renderer.Render(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical input must produce identical bytes")
}

func TestRenderStampsApprovalTime(t *testing.T) {
	renderer := NewMarotoRenderer()
	in := testRenderInput(t)

	out, err := renderer.Render(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte("/CreationDate (D:20250616093000)")),
		"creation date must come from the manager approval time, not the wall clock")
}

func TestRenderFailsOnCorruptSignatureImage(t *testing.T) {
	renderer := NewMarotoRenderer()
	in := testRenderInput(t)
	in.ClientSignature.Image = []byte("not an image")

	_, err := renderer.Render(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client Approval")
}

func TestRenderHonorsContextCancellation(t *testing.T) {
	renderer := NewMarotoRenderer()
	in := testRenderInput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderer.Render(ctx, in)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeCreationDate(t *testing.T) {
	raw := []byte("xx /CreationDate (D:20990101000000) yy")
	got := normalizeCreationDate(raw, time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, []byte("xx /CreationDate (D:20250616093000) yy"), got)
}
